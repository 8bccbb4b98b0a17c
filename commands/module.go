// Package commands implements the bot's commands.
package commands

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/spf13/pflag"
	"github.com/starshine-sys/bcr"

	"github.com/nekrodarkmoon/zen/bot"
	"github.com/nekrodarkmoon/zen/moderation"
)

// DefaultFallbackColour is used for userinfo embeds of members without
// a coloured role, unless FALLBACK_COLOUR overrides it.
const DefaultFallbackColour discord.Color = 0xf2f6f7

// Bot ...
type Bot struct {
	*bot.Bot

	Start time.Time

	FallbackColour discord.Color
}

// Init ...
func Init(b *bot.Bot) {
	bot := &Bot{
		Bot:            b,
		Start:          time.Now().UTC(),
		FallbackColour: fallbackColour(),
	}

	bot.AddCommand(&bcr.Command{
		Name:    "kick",
		Summary: "Kick a member from the server.",
		Usage:   "<member> [reason...]",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: moderation.Kick.Permission(),
		Command:     bot.action(moderation.Kick),
	})

	bot.AddCommand(&bcr.Command{
		Name:    "ban",
		Summary: "Ban a member from the server.",
		Usage:   "<member> [reason...]",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: moderation.Ban.Permission(),
		Command:     bot.action(moderation.Ban),
	})

	bot.AddCommand(&bcr.Command{
		Name:    "unban",
		Summary: "Unban a user from the server.",
		Usage:   "<user> [reason...]",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: moderation.Unban.Permission(),
		Command:     bot.action(moderation.Unban),
	})

	bot.AddCommand(&bcr.Command{
		Name:    "userinfo",
		Aliases: []string{"whois"},
		Summary: "Show information about a user.",
		Usage:   "<member>",
		Args:    bcr.MinArgs(1),

		GuildOnly: true,
		// read-only, but still a moderation tool
		Permissions: discord.PermissionBanMembers,
		Command:     bot.userinfo,
	})

	bot.AddCommand(&bcr.Command{
		Name:    "ping",
		Summary: "Show the bot's latency.",

		Command: bot.ping,
	})

	bot.AddCommand(&bcr.Command{
		Name:    "source",
		Summary: "Get a link to the bot's source code.",
		Flags: func(fs *pflag.FlagSet) *pflag.FlagSet {
			fs.BoolP("trello", "t", false, "Also link the project's Trello board.")
			return fs
		},

		Command: bot.source,
	})

	bot.AddCommand(&bcr.Command{
		Name:    "help",
		Summary: "Show information about the bot, or a specific command.",
		Usage:   "[command]",

		Command: bot.help,
	})
}

func fallbackColour() discord.Color {
	v := strings.TrimPrefix(os.Getenv("FALLBACK_COLOUR"), "#")
	if v == "" {
		return DefaultFallbackColour
	}

	c, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return DefaultFallbackColour
	}
	return discord.Color(c)
}
