package events

import (
	"time"

	"github.com/ReneKroon/ttlcache/v2"

	"github.com/nekrodarkmoon/zen/bot"
)

// Bot is the message activity tracker.
type Bot struct {
	*bot.Bot

	// throttles last-message writes per guild/user pair
	lastSeen *ttlcache.Cache
}

// Init registers the gateway event handlers.
func Init(b *bot.Bot) {
	bot := &Bot{
		Bot:      b,
		lastSeen: ttlcache.NewCache(),
	}
	bot.lastSeen.SetTTL(time.Minute)

	bot.Router.AddHandler(bot.messageCreate)
}
