package usecase

import (
	boarddomain "mailboard/internal/board/domain"

	"github.com/sirupsen/logrus"
)

// MigrationResult is the per-entry outcome of one bulk status rewrite.
type MigrationResult struct {
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	Matched   int64  `json:"matched"`
	Error     string `json:"error,omitempty"`
}

// MigrationReport collects the outcomes of one save's migration map.
type MigrationReport struct {
	Results []MigrationResult `json:"results"`
}

// Empty reports whether the save produced no migration work at all.
func (r *MigrationReport) Empty() bool {
	return r == nil || len(r.Results) == 0
}

// PartialFailure returns the soft-warning error when any entry failed,
// nil otherwise.
func (r *MigrationReport) PartialFailure() *boarddomain.MigrationPartialFailure {
	if r == nil {
		return nil
	}
	var failures []boarddomain.MigrationFailure
	for _, res := range r.Results {
		if res.Error != "" {
			failures = append(failures, boarddomain.MigrationFailure{
				OldStatus: res.OldStatus,
				NewStatus: res.NewStatus,
				Reason:    res.Error,
			})
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &boarddomain.MigrationPartialFailure{Failures: failures}
}

// planMigrations diffs the prior column set against the resolved incoming
// one, keyed by column id (the only key stable across a rename). Duplicate
// old-status keys should not occur under correct UI use; they collapse
// last-write-wins with a warning rather than failing the save.
func (u *boardUsecase) planMigrations(prev, next []boarddomain.Column) []boarddomain.StatusMigration {
	prevStatus := make(map[string]string, len(prev))
	for _, col := range prev {
		prevStatus[col.ID] = col.Status
	}

	var entries []boarddomain.StatusMigration
	seen := make(map[string]int)
	for _, col := range next {
		old, existed := prevStatus[col.ID]
		if !existed || old == "" || old == col.Status {
			continue
		}
		if i, dup := seen[old]; dup {
			u.log.WithFields(logrus.Fields{
				"oldStatus": old,
				"kept":      col.Status,
				"dropped":   entries[i].NewStatus,
			}).Warn("duplicate migration key, last write wins")
			entries[i].NewStatus = col.Status
			continue
		}
		seen[old] = len(entries)
		entries = append(entries, boarddomain.StatusMigration{OldStatus: old, NewStatus: col.Status})
	}
	return entries
}

// mergeClientMigrations appends client-supplied old→new rewrites. The
// planner's computed entries win on conflicting old keys: the server's
// prior-state snapshot is authoritative, the client map only re-homes
// statuses the planner cannot see (e.g. orphans).
func (u *boardUsecase) mergeClientMigrations(plan []boarddomain.StatusMigration, client map[string]string) []boarddomain.StatusMigration {
	if len(client) == 0 {
		return plan
	}
	planned := make(map[string]bool, len(plan))
	for _, e := range plan {
		planned[e.OldStatus] = true
	}
	for old, next := range client {
		if old == "" || next == "" || old == next {
			continue
		}
		if planned[old] {
			u.log.WithField("oldStatus", old).Warn("client migration shadowed by computed plan")
			continue
		}
		plan = append(plan, boarddomain.StatusMigration{OldStatus: old, NewStatus: next})
	}
	return plan
}

// executeMigrations applies the migration map entry by entry. Each entry is
// an independent idempotent bulk rewrite over a disjoint old status, so a
// failed entry never rolls back the ones already applied; it is recorded in
// the report and corrected by the next save.
func (u *boardUsecase) executeMigrations(ownerID string, plan []boarddomain.StatusMigration) *MigrationReport {
	report := &MigrationReport{}
	for _, entry := range plan {
		matched, err := u.mailStore.BulkRewriteStatus(ownerID, entry.OldStatus, entry.NewStatus)
		result := MigrationResult{
			OldStatus: entry.OldStatus,
			NewStatus: entry.NewStatus,
			Matched:   matched,
		}
		if err != nil {
			result.Error = err.Error()
			u.log.WithFields(logrus.Fields{
				"owner":     ownerID,
				"oldStatus": entry.OldStatus,
				"newStatus": entry.NewStatus,
			}).WithError(err).Warn("status migration entry failed")
		} else {
			u.log.WithFields(logrus.Fields{
				"owner":     ownerID,
				"oldStatus": entry.OldStatus,
				"newStatus": entry.NewStatus,
				"matched":   matched,
			}).Info("status migration entry applied")
		}
		report.Results = append(report.Results, result)
	}
	return report
}
