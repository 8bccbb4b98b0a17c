package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/nekrodarkmoon/zen/profile"
)

func findField(e discord.Embed, name string) (discord.EmbedField, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return discord.EmbedField{}, false
}

func baseProfile() profile.Profile {
	return profile.Profile{
		User: discord.User{
			ID:            123,
			Username:      "zen",
			Discriminator: "0001",
		},
		InGuild:      true,
		Created:      time.Unix(1500000000, 0),
		Joined:       time.Unix(1600000000, 0),
		SharedGuilds: 2,
		Color:        0x1abc9c,
	}
}

func TestUserInfoEmbedMemberFields(t *testing.T) {
	e := userInfoEmbed(baseProfile())

	if e.Footer != nil {
		t.Errorf("unexpected footer %q for current member", e.Footer.Text)
	}
	if _, ok := findField(e, "Joined"); !ok {
		t.Error("expected Joined field for current member")
	}
	if f, ok := findField(e, "Servers"); !ok || f.Value != "2" {
		t.Errorf("Servers field = %v, %v, want \"2\"", f.Value, ok)
	}
	if e.Color != 0x1abc9c {
		t.Errorf("colour = %#x, want %#x", e.Color, 0x1abc9c)
	}
}

func TestUserInfoEmbedHistoricalUser(t *testing.T) {
	p := baseProfile()
	p.InGuild = false
	p.Joined = time.Time{}

	e := userInfoEmbed(p)

	if e.Footer == nil || e.Footer.Text != "This member is not in this server." {
		t.Errorf("footer = %v, want not-in-server note", e.Footer)
	}
	if _, ok := findField(e, "Joined"); ok {
		t.Error("Joined field should be omitted for historical users")
	}
}

func TestUserInfoEmbedOmitsEmptyFields(t *testing.T) {
	e := userInfoEmbed(baseProfile())

	for _, name := range []string{"Voice", "Roles", "Last message at"} {
		if _, ok := findField(e, name); ok {
			t.Errorf("%v field should be omitted when empty", name)
		}
	}
}

func TestUserInfoEmbedRoles(t *testing.T) {
	p := baseProfile()
	p.Roles = []string{"mod", "member"}

	e := userInfoEmbed(p)
	if f, _ := findField(e, "Roles"); f.Value != "mod, member" {
		t.Errorf("Roles = %q, want joined list", f.Value)
	}

	p.Roles = nil
	for i := 0; i < 12; i++ {
		p.Roles = append(p.Roles, "r")
	}
	e = userInfoEmbed(p)
	if f, _ := findField(e, "Roles"); f.Value != "12 roles" {
		t.Errorf("Roles = %q, want count for long lists", f.Value)
	}
}

func TestUserInfoEmbedOptionalFields(t *testing.T) {
	p := baseProfile()
	p.Voice = "General with 2 others"
	p.LastMessage = time.Unix(1650000000, 0)

	e := userInfoEmbed(p)

	if f, _ := findField(e, "Voice"); f.Value != "General with 2 others" {
		t.Errorf("Voice = %q", f.Value)
	}
	if f, _ := findField(e, "Last message at"); !strings.Contains(f.Value, "1650000000") {
		t.Errorf("Last message at = %q, want timestamp markup", f.Value)
	}
}
