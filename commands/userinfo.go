package commands

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"

	"github.com/nekrodarkmoon/zen/profile"
)

func (bot *Bot) userinfo(ctx *bcr.Context) (err error) {
	bot.DB.Stats.IncCommand()

	target, err := bot.resolveTarget(ctx)
	if err != nil {
		_, err = ctx.Replyc(bcr.ColourRed, "User not found.")
		return err
	}

	agg := &profile.Aggregator{
		State:    ctx.State.Cabinet,
		Store:    bot.DB,
		Fallback: bot.FallbackColour,
	}

	p, err := agg.Build(ctx.Message.GuildID, target)
	if err != nil {
		return bot.operationError(ctx, err)
	}

	_, err = ctx.Send("", userInfoEmbed(p))
	if err != nil {
		return bot.operationError(ctx, err)
	}
	return nil
}

// resolveTarget resolves the argument to a current member, falling back
// to a plain user for accounts that left or were banned.
func (bot *Bot) resolveTarget(ctx *bcr.Context) (profile.Target, error) {
	m, err := ctx.ParseMember(ctx.RawArgs)
	if err == nil {
		return profile.Target{User: m.User, Member: m}, nil
	}

	u, err := ctx.ParseUser(ctx.RawArgs)
	if err != nil {
		return profile.Target{}, err
	}
	return profile.Target{User: *u}, nil
}

// userInfoEmbed renders a profile. Fields without data are left out
// entirely rather than rendered empty.
func userInfoEmbed(p profile.Profile) discord.Embed {
	e := discord.Embed{
		Author: &discord.EmbedAuthor{Name: p.User.Tag()},
		Color:  p.Color,
		Fields: []discord.EmbedField{
			{Name: "ID", Value: p.User.ID.String(), Inline: true},
			{Name: "Servers", Value: fmt.Sprint(p.SharedGuilds), Inline: true},
		},
	}

	if p.InGuild {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Joined",
			Value: fmt.Sprintf("<t:%v:f>", p.Joined.Unix()),
		})
	}

	e.Fields = append(e.Fields, discord.EmbedField{
		Name:  "Created",
		Value: fmt.Sprintf("<t:%v:f>", p.Created.Unix()),
	})

	if p.Voice != "" {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Voice",
			Value: p.Voice,
		})
	}

	if len(p.Roles) > 0 {
		v := strings.Join(p.Roles, ", ")
		if len(p.Roles) >= 10 {
			v = fmt.Sprintf("%v roles", len(p.Roles))
		}
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Roles",
			Value: v,
		})
	}

	if !p.LastMessage.IsZero() {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Last message at",
			Value: fmt.Sprintf("<t:%v:f>", p.LastMessage.Unix()),
		})
	}

	if p.User.Avatar != "" {
		e.Thumbnail = &discord.EmbedThumbnail{URL: p.User.AvatarURL()}
	}

	if !p.InGuild {
		e.Footer = &discord.EmbedFooter{Text: "This member is not in this server."}
	}

	return e
}
