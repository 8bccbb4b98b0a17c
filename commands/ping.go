package commands

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/dustin/go-humanize"
	"github.com/starshine-sys/bcr"

	"github.com/nekrodarkmoon/zen/common"
)

func (bot *Bot) ping(ctx *bcr.Context) (err error) {
	bot.DB.Stats.IncCommand()

	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	t := time.Now()

	m, err := ctx.Send("...")
	if err != nil {
		return err
	}

	latency := time.Since(t).Round(time.Millisecond)

	t = time.Now()
	_, err = bot.DB.Exec(context.Background(), "select 1")
	dbLatency := time.Since(t).Round(time.Millisecond)
	if err != nil {
		dbLatency = 0
	}

	e := discord.Embed{
		Color: bcr.ColourGreen,
		Fields: []discord.EmbedField{
			{
				Name:   "Ping",
				Value:  fmt.Sprintf("Message: %v\nDatabase: %v", latency, dbLatency),
				Inline: true,
			},
			{
				Name:   "Memory usage",
				Value:  fmt.Sprintf("%v / %v", humanize.Bytes(stats.Alloc), humanize.Bytes(stats.Sys)),
				Inline: true,
			},
			{
				Name:   "Goroutines",
				Value:  fmt.Sprint(runtime.NumGoroutine()),
				Inline: true,
			},
			{
				Name: "Uptime",
				Value: fmt.Sprintf(
					"%v\n(Since %v)",
					bcr.HumanizeDuration(bcr.DurationPrecisionSeconds, time.Since(bot.Start)),
					bot.Start.Format("Jan _2 2006, 15:04:05 MST"),
				),
				Inline: true,
			},
		},
		Footer: &discord.EmbedFooter{
			Text: "Version " + common.Version(),
		},
	}

	_, err = ctx.State.EditMessageComplex(m.ChannelID, m.ID, api.EditMessageData{
		Content: option.NewNullableString(""),
		Embeds:  &[]discord.Embed{e},
	})
	return err
}
