// Package bot holds the state shared between all command and event modules.
package bot

import (
	"github.com/starshine-sys/bcr"
	"go.uber.org/zap"

	"github.com/nekrodarkmoon/zen/db"
)

// Bot is the base for all command and event modules.
type Bot struct {
	*bcr.Router

	DB    *db.DB
	Sugar *zap.SugaredLogger
}

// New creates a new Bot.
func New(r *bcr.Router, db *db.DB, sugar *zap.SugaredLogger) *Bot {
	return &Bot{
		Router: r,
		DB:     db,
		Sugar:  sugar,
	}
}
