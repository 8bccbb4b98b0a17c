package commands

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"

	"github.com/nekrodarkmoon/zen/db"
	"github.com/nekrodarkmoon/zen/moderation"
)

const colourWhite discord.Color = 0xfffffe

// action returns the command handler for a moderation action. All three
// actions share this control flow; only the verb, the remote call, and
// the confirmation differ.
func (bot *Bot) action(a moderation.Action) func(*bcr.Context) error {
	return func(ctx *bcr.Context) error {
		return bot.runAction(ctx, a)
	}
}

func (bot *Bot) runAction(ctx *bcr.Context, a moderation.Action) (err error) {
	bot.DB.Stats.IncCommand()

	target, err := bot.parseTarget(ctx, a)
	if err != nil {
		_, err = ctx.Replyc(bcr.ColourRed, "User not found.")
		return err
	}

	res, err := moderation.Execute(ctx.State, a, moderation.Request{
		GuildID:   ctx.Message.GuildID,
		Actor:     ctx.Author,
		Target:    target,
		Reason:    reasonFrom(ctx.RawArgs, ctx.Args[0]),
		ChannelID: ctx.Message.ChannelID,
		MessageID: ctx.Message.ID,
	})
	if err != nil {
		return bot.operationError(ctx, err)
	}

	e := discord.Embed{
		Title:       fmt.Sprintf("%v %v", res.Action.Past(), res.Target.Tag()),
		Description: res.Reason,
		Color:       colourWhite,
	}
	// an unbanned user isn't around anymore, so no thumbnail there
	if a != moderation.Unban && res.Target.Avatar != "" {
		e.Thumbnail = &discord.EmbedThumbnail{URL: res.Target.AvatarURL()}
	}

	_, err = ctx.Send("", e)
	if err != nil {
		return bot.operationError(ctx, err)
	}
	return nil
}

// reasonFrom cuts the target argument off the raw argument string,
// keeping the moderator's reason verbatim, whitespace and all.
func reasonFrom(rawArgs, target string) string {
	return strings.TrimSpace(strings.TrimPrefix(rawArgs, target))
}

// parseTarget resolves the first argument to a user. Kick and ban act
// on current members; unban resolves a plain user, as its target is
// never in the guild.
func (bot *Bot) parseTarget(ctx *bcr.Context, a moderation.Action) (discord.User, error) {
	if a == moderation.Unban {
		u, err := ctx.ParseUser(ctx.Args[0])
		if err != nil {
			return discord.User{}, err
		}
		return *u, nil
	}

	m, err := ctx.ParseMember(ctx.Args[0])
	if err != nil {
		return discord.User{}, err
	}
	return m.User, nil
}

// operationError is the single failure path for all commands: the error
// is logged and reported, and the user gets an error embed with the raw
// error text and the report's correlation code. Failures never bubble
// up to the command router.
func (bot *Bot) operationError(ctx *bcr.Context, e error) error {
	bot.Sugar.Warnf("Error in %v: %v", strings.Join(ctx.FullCommandPath, " "), e)

	code := bot.DB.Report(db.ErrorContext{
		Command: strings.Join(ctx.FullCommandPath, " "),
		UserID:  ctx.Author.ID,
		GuildID: ctx.Message.GuildID,
	}, e)

	_, err := ctx.Send("", errorEmbed(e, code))
	return err
}

// errorEmbed renders a failed operation. The code in the footer matches
// the one logged and sent to Sentry.
func errorEmbed(e error, code string) discord.Embed {
	return discord.Embed{
		Title:       "Error",
		Description: e.Error(),
		Color:       bcr.ColourOrange,

		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("Error code: %v", code),
		},
		Timestamp: discord.NowTimestamp(),
	}
}
