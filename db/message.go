package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
)

// SetLastMessage records t as the last time the given user sent a
// message in the given guild.
func (db *DB) SetLastMessage(guildID discord.GuildID, userID discord.UserID, t time.Time) error {
	db.Stats.IncQuery()

	sql, args, err := sq.Insert("last_messages").
		Columns("guild_id", "user_id", "time").
		Values(guildID, userID, t).
		Suffix("on conflict (guild_id, user_id) do update set time = excluded.time").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	_, err = db.Exec(context.Background(), sql, args...)
	if err != nil {
		return errors.Wrap(err, "executing query")
	}
	return nil
}

// LastMessage returns the last recorded message time for the given user
// in the given guild. A missing row is not an error: the zero time is
// returned for users the bot has never seen speak.
func (db *DB) LastMessage(guildID discord.GuildID, userID discord.UserID) (t time.Time, err error) {
	db.Stats.IncQuery()

	sql, args, err := sq.Select("time").From("last_messages").
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return t, errors.Wrap(err, "building sql")
	}

	err = pgxscan.Get(context.Background(), db, &t, sql, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return time.Time{}, nil
		}
		return t, errors.Wrap(err, "getting last message time")
	}
	return t, nil
}
