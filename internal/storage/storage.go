package storage

import (
	"fmt"
	"sync"

	"github.com/keshon/commandsync/datastore"
	"github.com/keshon/commandsync/internal/logging"
)

const commandHistoryLimit int = 20

// Storage keeps per-guild records and sync reports in a datastore file.
type Storage struct {
	ds *datastore.DataStore
	mu sync.Mutex // serialises read-modify-write of guild records
}

// GuildRecord is everything stored for one guild.
type GuildRecord struct {
	CommandHistory []CommandHistoryRecord `json:"cmd_history"`
	DisabledGroups []string               `json:"disabled_groups"`
}

// New opens (or creates) the datastore at filePath.
func New(filePath string, log logging.Logger) (*Storage, error) {
	cfg := datastore.DefaultConfig(filePath)
	cfg.Logger = log
	ds, err := datastore.NewWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the datastore.
func (s *Storage) Close() error {
	return s.ds.Close()
}

// Flush writes pending changes to disk now.
func (s *Storage) Flush() error {
	return s.ds.SaveToFile()
}

func guildKey(guildID string) string { return "guild:" + guildID }

// getGuildRecord returns the stored record, or an empty one.
func (s *Storage) getGuildRecord(guildID string) (*GuildRecord, error) {
	var record GuildRecord
	if _, err := s.ds.Get(guildKey(guildID), &record); err != nil {
		return nil, err
	}
	if len(record.CommandHistory) > commandHistoryLimit {
		record.CommandHistory = record.CommandHistory[len(record.CommandHistory)-commandHistoryLimit:]
	}
	return &record, nil
}

// updateGuildRecord applies fn to the guild record and stores the result.
func (s *Storage) updateGuildRecord(guildID string, fn func(*GuildRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}
	fn(record)
	return s.ds.Put(guildKey(guildID), record)
}
