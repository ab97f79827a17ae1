package usecase

import (
	"sort"
	"time"

	boarddomain "mailboard/internal/board/domain"
)

// ProjectionOptions are per-request display policies. They never mutate
// persisted email records.
type ProjectionOptions struct {
	UnreadOnly     bool `json:"unread_only"`
	HasAttachments bool `json:"has_attachments"`
	SortAscending  bool `json:"sort_ascending"`
}

// ColumnBucket is one projected column: its emails after filtering plus the
// filtered and unfiltered counts.
type ColumnBucket struct {
	Column   boarddomain.Column   `json:"column"`
	Emails   []*boarddomain.Email `json:"emails"`
	Filtered int                  `json:"filtered"`
	Total    int                  `json:"total"`
}

// BoardSnapshot is a full projection of an owner's board at one instant.
type BoardSnapshot struct {
	Columns     []ColumnBucket `json:"columns"`
	RefreshedAt time.Time      `json:"refreshed_at"`
}

// Project groups emails into per-column buckets by status, applies the
// unread/attachment filters (ANDed) and one global timestamp sort. Columns
// with no emails stay in the result; emails with an orphaned status are
// displayed nowhere.
func Project(columns []boarddomain.Column, emails []*boarddomain.Email, opts ProjectionOptions, now time.Time) *BoardSnapshot {
	byStatus := make(map[string][]*boarddomain.Email, len(columns))
	for _, email := range emails {
		byStatus[email.Status] = append(byStatus[email.Status], email)
	}

	snapshot := &BoardSnapshot{
		Columns:     make([]ColumnBucket, 0, len(columns)),
		RefreshedAt: now,
	}
	for _, col := range columns {
		all := byStatus[col.Status]

		kept := make([]*boarddomain.Email, 0, len(all))
		for _, email := range all {
			if opts.UnreadOnly && email.IsRead {
				continue
			}
			if opts.HasAttachments && !email.HasAttachments() {
				continue
			}
			kept = append(kept, email)
		}

		sort.SliceStable(kept, func(i, j int) bool {
			if opts.SortAscending {
				return kept[i].ReceivedAt.Before(kept[j].ReceivedAt)
			}
			return kept[i].ReceivedAt.After(kept[j].ReceivedAt)
		})

		snapshot.Columns = append(snapshot.Columns, ColumnBucket{
			Column:   col,
			Emails:   kept,
			Filtered: len(kept),
			Total:    len(all),
		})
	}

	return snapshot
}

// Board projects the owner's current board from committed configuration and
// live email state.
func (u *boardUsecase) Board(ownerID string, opts ProjectionOptions) (*BoardSnapshot, error) {
	cfg, err := u.loadConfig(ownerID)
	if err != nil {
		return nil, err
	}
	emails, err := u.mailStore.FetchByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return Project(cfg.Columns, emails, opts, u.now()), nil
}
