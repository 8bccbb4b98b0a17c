package commands

import (
	"github.com/starshine-sys/bcr"
)

const (
	sourceLink = "https://github.com/NekroDarkmoon/Zen"
	trelloLink = "https://trello.com/b/3Ts9kjHJ/zen"
)

func (bot *Bot) source(ctx *bcr.Context) (err error) {
	bot.DB.Stats.IncCommand()

	trello, _ := ctx.Flags.GetBool("trello")
	if trello {
		_, err = ctx.Sendf("Source code: <%v>\nProject board: <%v>", sourceLink, trelloLink)
		return
	}

	_, err = ctx.Sendf("Source code: <%v>", sourceLink)
	return
}
