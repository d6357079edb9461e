package storage

import "github.com/keshon/commandsync/internal/reconcile"

func syncKey(scope string) string { return "sync:" + scope }

// RecordSync stores report as the latest sync of its scope.
func (s *Storage) RecordSync(report *reconcile.Report) error {
	if err := s.ds.Put(syncKey(report.Scope), report); err != nil {
		return err
	}
	return s.ds.SaveToFile()
}

// LastSync returns the latest stored report for scope, or nil.
func (s *Storage) LastSync(scope string) (*reconcile.Report, error) {
	var report reconcile.Report
	found, err := s.ds.Get(syncKey(scope), &report)
	if err != nil || !found {
		return nil, err
	}
	return &report, nil
}
