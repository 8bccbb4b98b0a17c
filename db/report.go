package db

import (
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

// ErrorContext is the context for an error
type ErrorContext struct {
	Event   string
	Command string

	UserID  discord.UserID
	GuildID discord.GuildID
}

// Report reports an error and returns a correlation code for it.
// The error is logged with a stack trace, and forwarded to Sentry if
// that is configured; without Sentry, a random code is generated so the
// user-facing embed can still be matched to the log line.
func (db *DB) Report(ctx ErrorContext, err error) string {
	cs := ctx.Event
	if cs == "" {
		cs = ctx.Command
	}

	if db.Hub == nil {
		code := uuid.New().String()
		db.Sugar.Errorf("Error in %v (code %v): %v", cs, code, err)
		return code
	}

	db.Sugar.Errorf("Error in %v: %v", cs, err)

	hub := db.Hub.Clone()

	data := map[string]interface{}{}

	if ctx.Event != "" {
		data["event"] = ctx.Event
	}

	if ctx.Command != "" {
		data["command"] = ctx.Command
	}

	if ctx.GuildID.IsValid() {
		data["guild"] = ctx.GuildID
	}

	hub.ConfigureScope(func(scope *sentry.Scope) {
		if ctx.UserID.IsValid() {
			scope.SetUser(sentry.User{ID: ctx.UserID.String()})
			data["user"] = ctx.UserID
		}
	})

	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Data:      data,
		Level:     sentry.LevelError,
		Timestamp: time.Now().UTC(),
	}, nil)

	id := hub.CaptureException(err)
	if id == nil {
		return uuid.New().String()
	}
	return string(*id)
}
