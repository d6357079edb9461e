package testutil

import (
	"fmt"
	"sync"
)

// Entry is one recorded log call.
type Entry struct {
	Level   string
	Msg     string
	KeyVals []any
}

// Logger records every call; safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	Entries []Entry
}

func (l *Logger) add(level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, Entry{Level: level, Msg: msg, KeyVals: kv})
}

func (l *Logger) Debug(msg string, kv ...any) { l.add("debug", msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.add("info", msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.add("warn", msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.add("error", msg, kv) }

// Messages returns the messages logged at level.
func (l *Logger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.Entries {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}
	return out
}

// Value returns the value logged under key for the first entry with msg.
func (l *Logger) Value(msg, key string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.Entries {
		if e.Msg != msg {
			continue
		}
		for i := 0; i+1 < len(e.KeyVals); i += 2 {
			if e.KeyVals[i] == key {
				return fmt.Sprint(e.KeyVals[i+1])
			}
		}
	}
	return ""
}
