package events

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/gateway"
)

func (bot *Bot) messageCreate(m *gateway.MessageCreateEvent) {
	// DMs and other bots don't count as activity
	if !m.GuildID.IsValid() || m.Author.Bot {
		return
	}

	key := fmt.Sprintf("%v/%v", m.GuildID, m.Author.ID)
	if _, err := bot.lastSeen.Get(key); err == nil {
		return
	}
	bot.lastSeen.Set(key, struct{}{})

	err := bot.DB.SetLastMessage(m.GuildID, m.Author.ID, m.ID.Time())
	if err != nil {
		bot.Sugar.Errorf("Error saving last message for %v in %v: %v", m.Author.ID, m.GuildID, err)
	}
}
