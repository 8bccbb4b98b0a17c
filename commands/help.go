package commands

import (
	"fmt"
	"os"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"
)

func (bot *Bot) help(ctx *bcr.Context) (err error) {
	bot.DB.Stats.IncCommand()

	// help for commands
	if len(ctx.Args) > 0 {
		return ctx.Help(ctx.Args)
	}

	e := discord.Embed{
		Title: "Help",
		Description: fmt.Sprintf(`%v is a small moderation and information bot.
It keeps track of member activity and handles the everyday kick/ban workflow.`, ctx.Bot.Username),
		Color: bcr.ColourPurple,

		Fields: []discord.EmbedField{
			{
				Name:  "Info commands",
				Value: "`help`: show this help\n\n`ping`: show the bot's latency\n\n`userinfo <user>`: show information about a member, or a user that left the server\n\n`source`: get a link to the bot's source code",
			},
			{
				Name:  "Moderation",
				Value: "`kick <member> [reason]`: kick a member\n\n`ban <member> [reason]`: ban a member\n\n`unban <user> [reason]`: remove a ban",
			},
			{
				Name:  "Source code",
				Value: sourceLink,
			},
		},
	}

	if os.Getenv("SUPPORT_SERVER") != "" {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Support",
			Value: fmt.Sprintf("Use this link to join the support server: %v", os.Getenv("SUPPORT_SERVER")),
		})
	}

	_, err = ctx.Send("", e)
	return
}
