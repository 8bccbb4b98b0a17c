// Package profile assembles member profiles from the gateway cache and
// the message store.
package profile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/state/store"
)

// State is the slice of the gateway cache needed to build a profile.
// *store.Cabinet satisfies it.
type State interface {
	Guilds() ([]discord.Guild, error)
	Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error)
	Roles(guildID discord.GuildID) ([]discord.Role, error)
	Channel(id discord.ChannelID) (*discord.Channel, error)
	VoiceState(guildID discord.GuildID, userID discord.UserID) (*discord.VoiceState, error)
	VoiceStates(guildID discord.GuildID) ([]discord.VoiceState, error)
}

// Store is the persisted message store.
type Store interface {
	LastMessage(guildID discord.GuildID, userID discord.UserID) (time.Time, error)
}

// Target is the subject of a profile lookup: either a current guild
// member, or a user only known historically (banned, left the guild).
type Target struct {
	User discord.User
	// Member is nil if the user is not currently in the guild.
	Member *discord.Member
}

// Profile is the composite view of a target.
type Profile struct {
	User    discord.User
	InGuild bool

	Created time.Time
	// Joined is the zero time if the target is not a current member.
	Joined time.Time

	// SharedGuilds is the number of the bot's guilds the target is a
	// member of, including the guild the lookup ran in.
	SharedGuilds int

	// Roles holds the target's role names, lowest first, with mention
	// triggers escaped. Empty for non-members and members with no roles.
	Roles []string

	// Voice describes the target's voice channel presence, or is empty.
	Voice string

	// LastMessage is the zero time if the store has no record.
	LastMessage time.Time

	Color discord.Color
}

// Aggregator builds profiles.
type Aggregator struct {
	State State
	Store Store

	// Fallback is used when the target has no coloured role.
	Fallback discord.Color
}

// Build assembles the target's profile. Aside from a missing
// last-message record, which is normal, any failure abandons the whole
// profile.
func (a *Aggregator) Build(guildID discord.GuildID, t Target) (Profile, error) {
	p := Profile{
		User:    t.User,
		InGuild: t.Member != nil,
		Created: t.User.ID.Time(),
		Color:   a.Fallback,
	}

	if t.Member != nil {
		p.Joined = t.Member.Joined.Time()

		roles, err := a.memberRoles(guildID, t.Member)
		if err != nil {
			return p, err
		}
		for _, r := range roles {
			p.Roles = append(p.Roles, SanitizeRole(r.Name))
		}
		if c := roleColor(roles); c != 0 {
			p.Color = c
		}

		p.Voice, err = a.voiceStatus(guildID, t.User.ID)
		if err != nil {
			return p, err
		}
	}

	shared, err := a.sharedGuilds(t.User.ID)
	if err != nil {
		return p, err
	}
	p.SharedGuilds = shared

	p.LastMessage, err = a.Store.LastMessage(guildID, t.User.ID)
	if err != nil {
		return p, errors.Wrap(err, "getting last message time")
	}

	return p, nil
}

// memberRoles resolves the member's roles, lowest position first.
func (a *Aggregator) memberRoles(guildID discord.GuildID, m *discord.Member) ([]discord.Role, error) {
	guildRoles, err := a.State.Roles(guildID)
	if err != nil {
		return nil, errors.Wrap(err, "getting guild roles")
	}

	byID := make(map[discord.RoleID]discord.Role, len(guildRoles))
	for _, r := range guildRoles {
		byID[r.ID] = r
	}

	var roles []discord.Role
	for _, id := range m.RoleIDs {
		if r, ok := byID[id]; ok {
			roles = append(roles, r)
		}
	}

	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Position < roles[j].Position
	})
	return roles, nil
}

// sharedGuilds counts the bot's guilds the user is a member of.
// This is a linear scan of the member cache, fine for an on-demand
// admin command.
func (a *Aggregator) sharedGuilds(userID discord.UserID) (count int, err error) {
	guilds, err := a.State.Guilds()
	if err != nil {
		return 0, errors.Wrap(err, "getting guilds")
	}

	for _, g := range guilds {
		if _, err := a.State.Member(g.ID, userID); err == nil {
			count++
		}
	}
	return count, nil
}

func (a *Aggregator) voiceStatus(guildID discord.GuildID, userID discord.UserID) (string, error) {
	vs, err := a.State.VoiceState(guildID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", errors.Wrap(err, "getting voice state")
	}
	if vs == nil || !vs.ChannelID.IsValid() {
		return "", nil
	}

	ch, err := a.State.Channel(vs.ChannelID)
	if err != nil {
		return "", errors.Wrap(err, "getting voice channel")
	}

	states, err := a.State.VoiceStates(guildID)
	if err != nil {
		return "", errors.Wrap(err, "getting voice states")
	}

	occupants := 0
	for _, s := range states {
		if s.ChannelID == vs.ChannelID {
			occupants++
		}
	}

	return VoiceStatus(ch.Name, occupants), nil
}

// VoiceStatus formats a voice channel presence.
func VoiceStatus(channel string, occupants int) string {
	if others := occupants - 1; others > 0 {
		return fmt.Sprintf("%v with %v others", channel, others)
	}
	return fmt.Sprintf("%v by themselves", channel)
}

// SanitizeRole escapes mention triggers in a role name so embedding it
// doesn't ping the role.
func SanitizeRole(name string) string {
	return strings.ReplaceAll(name, "@", "@\u200b")
}

// roleColor resolves the colour of the highest coloured role, matching
// how Discord colours member names.
func roleColor(roles []discord.Role) discord.Color {
	for i := len(roles) - 1; i >= 0; i-- {
		if roles[i].Color != 0 {
			return roles[i].Color
		}
	}
	return 0
}
