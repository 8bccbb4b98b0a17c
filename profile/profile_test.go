package profile

import (
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/state/store"
)

type memberKey struct {
	guild discord.GuildID
	user  discord.UserID
}

type fakeState struct {
	guilds      []discord.Guild
	members     map[memberKey]*discord.Member
	roles       map[discord.GuildID][]discord.Role
	channels    map[discord.ChannelID]*discord.Channel
	voiceStates map[discord.GuildID][]discord.VoiceState
}

func (s *fakeState) Guilds() ([]discord.Guild, error) { return s.guilds, nil }

func (s *fakeState) Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	if m, ok := s.members[memberKey{guildID, userID}]; ok {
		return m, nil
	}
	return nil, store.ErrNotFound
}

func (s *fakeState) Roles(guildID discord.GuildID) ([]discord.Role, error) {
	return s.roles[guildID], nil
}

func (s *fakeState) Channel(id discord.ChannelID) (*discord.Channel, error) {
	if ch, ok := s.channels[id]; ok {
		return ch, nil
	}
	return nil, store.ErrNotFound
}

func (s *fakeState) VoiceState(guildID discord.GuildID, userID discord.UserID) (*discord.VoiceState, error) {
	for _, vs := range s.voiceStates[guildID] {
		if vs.UserID == userID {
			state := vs
			return &state, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeState) VoiceStates(guildID discord.GuildID) ([]discord.VoiceState, error) {
	return s.voiceStates[guildID], nil
}

type fakeStore struct {
	times map[memberKey]time.Time
	err   error
}

func (s *fakeStore) LastMessage(guildID discord.GuildID, userID discord.UserID) (time.Time, error) {
	if s.err != nil {
		return time.Time{}, s.err
	}
	return s.times[memberKey{guildID, userID}], nil
}

const (
	guildID discord.GuildID = 100
	userID  discord.UserID  = 200
)

func member(roles ...discord.RoleID) *discord.Member {
	return &discord.Member{
		User:    discord.User{ID: userID, Username: "subject", Discriminator: "0001"},
		RoleIDs: roles,
		Joined:  discord.NewTimestamp(time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func newState() *fakeState {
	return &fakeState{
		guilds:      []discord.Guild{{ID: guildID}},
		members:     map[memberKey]*discord.Member{},
		roles:       map[discord.GuildID][]discord.Role{},
		channels:    map[discord.ChannelID]*discord.Channel{},
		voiceStates: map[discord.GuildID][]discord.VoiceState{},
	}
}

func TestSharedGuildCount(t *testing.T) {
	s := newState()
	s.guilds = []discord.Guild{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	for _, g := range []discord.GuildID{1, 3, 5} {
		s.members[memberKey{g, userID}] = member()
	}
	// another user's membership should not count
	s.members[memberKey{2, 999}] = &discord.Member{User: discord.User{ID: 999}}

	a := &Aggregator{State: s, Store: &fakeStore{}}

	p, err := a.Build(1, Target{User: discord.User{ID: userID}, Member: member()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.SharedGuilds != 3 {
		t.Errorf("SharedGuilds = %v, want 3", p.SharedGuilds)
	}
}

func TestVoiceStatus(t *testing.T) {
	tests := []struct {
		name      string
		occupants int
		want      string
	}{
		{"alone", 1, "General by themselves"},
		{"one other", 2, "General with 1 others"},
		{"several others", 5, "General with 4 others"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VoiceStatus("General", tt.occupants); got != tt.want {
				t.Errorf("VoiceStatus(%d) = %q, want %q", tt.occupants, got, tt.want)
			}
		})
	}
}

func TestBuildVoicePresence(t *testing.T) {
	s := newState()
	s.members[memberKey{guildID, userID}] = member()
	s.channels[300] = &discord.Channel{ID: 300, Name: "Voice Chat"}
	s.voiceStates[guildID] = []discord.VoiceState{
		{UserID: userID, ChannelID: 300},
		{UserID: 998, ChannelID: 300},
		{UserID: 999, ChannelID: 301},
	}

	a := &Aggregator{State: s, Store: &fakeStore{}}

	p, err := a.Build(guildID, Target{User: discord.User{ID: userID}, Member: member()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Voice != "Voice Chat with 1 others" {
		t.Errorf("Voice = %q, want %q", p.Voice, "Voice Chat with 1 others")
	}
}

func TestBuildNotInVoice(t *testing.T) {
	s := newState()
	s.members[memberKey{guildID, userID}] = member()

	a := &Aggregator{State: s, Store: &fakeStore{}}

	p, err := a.Build(guildID, Target{User: discord.User{ID: userID}, Member: member()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Voice != "" {
		t.Errorf("Voice = %q, want empty", p.Voice)
	}
}

func TestSanitizeRole(t *testing.T) {
	got := SanitizeRole("@everyone-ish")
	want := "@\u200beveryone-ish"
	if got != want {
		t.Errorf("SanitizeRole = %q, want %q", got, want)
	}
}

func TestBuildRolesAndColor(t *testing.T) {
	s := newState()
	s.members[memberKey{guildID, userID}] = member(10, 11, 12)
	s.roles[guildID] = []discord.Role{
		{ID: 12, Name: "@everyone-ish", Position: 3},
		{ID: 10, Name: "Member", Position: 1},
		{ID: 11, Name: "Moderator", Position: 2, Color: 0x1abc9c},
	}

	a := &Aggregator{State: s, Store: &fakeStore{}, Fallback: 0xf2f6f7}

	p, err := a.Build(guildID, Target{User: discord.User{ID: userID}, Member: member(10, 11, 12)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Member", "Moderator", "@\u200beveryone-ish"}
	if len(p.Roles) != len(want) {
		t.Fatalf("Roles = %v, want %v", p.Roles, want)
	}
	for i := range want {
		if p.Roles[i] != want[i] {
			t.Fatalf("Roles = %v, want %v", p.Roles, want)
		}
	}

	if p.Color != 0x1abc9c {
		t.Errorf("Color = %#x, want %#x", p.Color, 0x1abc9c)
	}
}

func TestBuildFallbackColor(t *testing.T) {
	s := newState()
	s.members[memberKey{guildID, userID}] = member(10)
	s.roles[guildID] = []discord.Role{{ID: 10, Name: "Member", Position: 1}}

	a := &Aggregator{State: s, Store: &fakeStore{}, Fallback: 0xf2f6f7}

	p, err := a.Build(guildID, Target{User: discord.User{ID: userID}, Member: member(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Color != 0xf2f6f7 {
		t.Errorf("Color = %#x, want fallback %#x", p.Color, 0xf2f6f7)
	}
}

func TestBuildNoLastMessage(t *testing.T) {
	s := newState()
	s.members[memberKey{guildID, userID}] = member()

	a := &Aggregator{State: s, Store: &fakeStore{}}

	p, err := a.Build(guildID, Target{User: discord.User{ID: userID}, Member: member()})
	if err != nil {
		t.Fatalf("no row should not be an error, got: %v", err)
	}

	if !p.LastMessage.IsZero() {
		t.Errorf("LastMessage = %v, want zero time", p.LastMessage)
	}
}

func TestBuildLastMessage(t *testing.T) {
	s := newState()
	s.members[memberKey{guildID, userID}] = member()

	ts := time.Date(2022, 8, 15, 18, 30, 0, 0, time.UTC)
	st := &fakeStore{times: map[memberKey]time.Time{{guildID, userID}: ts}}

	a := &Aggregator{State: s, Store: st}

	p, err := a.Build(guildID, Target{User: discord.User{ID: userID}, Member: member()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.LastMessage.Equal(ts) {
		t.Errorf("LastMessage = %v, want %v", p.LastMessage, ts)
	}
}

func TestBuildStoreFailure(t *testing.T) {
	s := newState()
	s.members[memberKey{guildID, userID}] = member()

	a := &Aggregator{State: s, Store: &fakeStore{err: errors.New("connection refused")}}

	_, err := a.Build(guildID, Target{User: discord.User{ID: userID}, Member: member()})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestBuildHistoricalUser(t *testing.T) {
	s := newState()

	a := &Aggregator{State: s, Store: &fakeStore{}}

	p, err := a.Build(guildID, Target{User: discord.User{ID: userID, Username: "gone"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.InGuild {
		t.Error("InGuild = true for a historical user")
	}
	if !p.Joined.IsZero() {
		t.Errorf("Joined = %v, want zero time", p.Joined)
	}
	if len(p.Roles) != 0 {
		t.Errorf("Roles = %v, want none", p.Roles)
	}
	if p.Voice != "" {
		t.Errorf("Voice = %q, want empty", p.Voice)
	}
}
