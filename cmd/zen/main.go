package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nekrodarkmoon/zen/cmd/zen/bot"
	"github.com/nekrodarkmoon/zen/cmd/zen/migrate"
	"github.com/nekrodarkmoon/zen/common"
)

var app = &cli.App{
	Name:    "Zen",
	Usage:   "Discord moderation and information bot",
	Version: common.Version(),

	Commands: []*cli.Command{
		bot.Command,
		migrate.Command,
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
