package storage

import (
	"slices"
	"time"
)

// CommandHistoryRecord is one executed command.
type CommandHistoryRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Command   string    `json:"command"`
	Failed    bool      `json:"failed,omitempty"`
	Datetime  time.Time `json:"datetime"`
}

// AppendCommandHistory appends a record, keeping the newest entries only.
func (s *Storage) AppendCommandHistory(guildID string, rec CommandHistoryRecord) error {
	return s.updateGuildRecord(guildID, func(r *GuildRecord) {
		r.CommandHistory = append(r.CommandHistory, rec)
		if len(r.CommandHistory) > commandHistoryLimit {
			r.CommandHistory = r.CommandHistory[len(r.CommandHistory)-commandHistoryLimit:]
		}
	})
}

// CommandHistory returns the guild's recent commands, oldest first.
func (s *Storage) CommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandHistory, nil
}

// DisableGroup turns a command group off for a guild.
func (s *Storage) DisableGroup(guildID, group string) error {
	return s.updateGuildRecord(guildID, func(r *GuildRecord) {
		if !slices.Contains(r.DisabledGroups, group) {
			r.DisabledGroups = append(r.DisabledGroups, group)
		}
	})
}

// EnableGroup turns a command group back on for a guild.
func (s *Storage) EnableGroup(guildID, group string) error {
	return s.updateGuildRecord(guildID, func(r *GuildRecord) {
		r.DisabledGroups = slices.DeleteFunc(r.DisabledGroups, func(g string) bool { return g == group })
	})
}

// IsGroupDisabled reports whether group is disabled in the guild.
func (s *Storage) IsGroupDisabled(guildID, group string) (bool, error) {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return false, err
	}
	return slices.Contains(record.DisabledGroups, group), nil
}

// DisabledGroups lists the disabled groups of a guild.
func (s *Storage) DisabledGroups(guildID string) ([]string, error) {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.DisabledGroups, nil
}
