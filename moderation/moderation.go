// Package moderation executes moderation actions against Discord.
package moderation

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
)

// Action is a moderation action.
type Action int

// All moderation actions.
const (
	Kick Action = iota
	Ban
	Unban
)

// String returns the action's verb, as used in command names.
func (a Action) String() string {
	switch a {
	case Kick:
		return "kick"
	case Ban:
		return "ban"
	case Unban:
		return "unban"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Past returns the action's past tense, as used in confirmations and
// audit log reasons.
func (a Action) Past() string {
	switch a {
	case Kick:
		return "Kicked"
	case Ban:
		return "Banned"
	case Unban:
		return "Unbanned"
	}
	return a.String()
}

// Permission returns the permission an actor needs to use the action.
func (a Action) Permission() discord.Permissions {
	if a == Kick {
		return discord.PermissionKickMembers
	}
	return discord.PermissionBanMembers
}

// Session is the slice of the Discord API needed to execute an action.
// *state.State satisfies it.
type Session interface {
	Kick(guildID discord.GuildID, userID discord.UserID, reason api.AuditLogReason) error
	Ban(guildID discord.GuildID, userID discord.UserID, data api.BanData) error
	Unban(guildID discord.GuildID, userID discord.UserID, reason api.AuditLogReason) error
	DeleteMessage(channelID discord.ChannelID, messageID discord.MessageID, reason api.AuditLogReason) error
}

// Request is a single action invocation.
type Request struct {
	GuildID discord.GuildID
	Actor   discord.User
	Target  discord.User
	Reason  string

	// the triggering command message, deleted after the action succeeds
	ChannelID discord.ChannelID
	MessageID discord.MessageID
}

// Result is a successfully executed action.
type Result struct {
	Action Action
	Target discord.User
	// Reason is the audit log reason actually used, after defaulting.
	Reason string
}

// DefaultReason synthesizes an audit log reason naming the responsible
// moderator, used when the actor doesn't give one.
func DefaultReason(a Action, actor discord.User) string {
	return fmt.Sprintf("%v by %v\nID: %v", a.Past(), actor.Tag(), actor.ID)
}

// Execute performs the given action. The remote call is made first;
// only if it succeeds is the triggering message deleted. Any error
// aborts the rest of the sequence.
func Execute(s Session, a Action, req Request) (Result, error) {
	reason := req.Reason
	if reason == "" {
		reason = DefaultReason(a, req.Actor)
	}

	var err error
	switch a {
	case Kick:
		err = s.Kick(req.GuildID, req.Target.ID, api.AuditLogReason(reason))
	case Ban:
		err = s.Ban(req.GuildID, req.Target.ID, api.BanData{
			AuditLogReason: api.AuditLogReason(reason),
		})
	case Unban:
		err = s.Unban(req.GuildID, req.Target.ID, api.AuditLogReason(reason))
	default:
		return Result{}, errors.Sentinel("unknown moderation action")
	}
	if err != nil {
		return Result{}, errors.Wrapf(err, "%v %v", a, req.Target.ID)
	}

	err = s.DeleteMessage(req.ChannelID, req.MessageID, "")
	if err != nil {
		return Result{}, errors.Wrap(err, "deleting trigger message")
	}

	return Result{
		Action: a,
		Target: req.Target,
		Reason: reason,
	}, nil
}
