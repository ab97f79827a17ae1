package usecase

import (
	"context"
	"io"
	"time"

	boarddomain "mailboard/internal/board/domain"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func cloneConfig(cfg *boarddomain.BoardConfig) *boarddomain.BoardConfig {
	if cfg == nil {
		return nil
	}
	out := *cfg
	out.Columns = append(boarddomain.ColumnList{}, cfg.Columns...)
	return &out
}

// fakeConfigRepo keeps one owner's configuration in memory. Reads hand out
// copies, mirroring a row-per-read database.
type fakeConfigRepo struct {
	cfg     *boarddomain.BoardConfig
	seeds   int
	saves   int
	saveErr error
}

func (f *fakeConfigRepo) GetByOwner(ownerID string) (*boarddomain.BoardConfig, error) {
	if f.cfg == nil || f.cfg.OwnerID != ownerID {
		return nil, nil
	}
	return cloneConfig(f.cfg), nil
}

func (f *fakeConfigRepo) Seed(cfg *boarddomain.BoardConfig) error {
	f.seeds++
	if f.cfg == nil {
		f.cfg = cloneConfig(cfg)
	}
	return nil
}

func (f *fakeConfigRepo) Save(cfg *boarddomain.BoardConfig) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.cfg = cloneConfig(cfg)
	return nil
}

type bulkRewrite struct {
	ownerID   string
	oldStatus string
	newStatus string
}

// fakeMailStore keeps emails in memory and records every write.
type fakeMailStore struct {
	emails    map[string]*boarddomain.Email
	rewrites  []bulkRewrite
	failOld   map[string]error // injected BulkRewriteStatus failures by old status
	updateErr error
	snoozeErr error
}

func newFakeMailStore(emails ...*boarddomain.Email) *fakeMailStore {
	store := &fakeMailStore{emails: make(map[string]*boarddomain.Email)}
	for _, e := range emails {
		store.emails[e.ID] = e
	}
	return store
}

func (f *fakeMailStore) GetEmail(ownerID, emailID string) (*boarddomain.Email, error) {
	e, ok := f.emails[emailID]
	if !ok || e.OwnerID != ownerID {
		return nil, nil
	}
	out := *e
	return &out, nil
}

func (f *fakeMailStore) FetchByOwner(ownerID string) ([]*boarddomain.Email, error) {
	var out []*boarddomain.Email
	for _, e := range f.emails {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMailStore) FetchByStatus(ownerID, status string) ([]*boarddomain.Email, error) {
	var out []*boarddomain.Email
	for _, e := range f.emails {
		if e.OwnerID == ownerID && e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMailStore) UpdateStatus(ownerID, emailID, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if e, ok := f.emails[emailID]; ok && e.OwnerID == ownerID {
		e.Status = status
	}
	return nil
}

func (f *fakeMailStore) Snooze(ownerID, emailID string, until *time.Time) error {
	if f.snoozeErr != nil {
		return f.snoozeErr
	}
	if e, ok := f.emails[emailID]; ok && e.OwnerID == ownerID {
		e.SnoozedUntil = until
	}
	return nil
}

func (f *fakeMailStore) BulkRewriteStatus(ownerID, oldStatus, newStatus string) (int64, error) {
	if err := f.failOld[oldStatus]; err != nil {
		return 0, err
	}
	f.rewrites = append(f.rewrites, bulkRewrite{ownerID: ownerID, oldStatus: oldStatus, newStatus: newStatus})
	var matched int64
	for _, e := range f.emails {
		if e.OwnerID == ownerID && e.Status == oldStatus {
			e.Status = newStatus
			matched++
		}
	}
	return matched, nil
}

func (f *fakeMailStore) FetchExpiredSnoozes(now time.Time) ([]*boarddomain.Email, error) {
	var out []*boarddomain.Email
	for _, e := range f.emails {
		if e.SnoozedUntil != nil && !e.SnoozedUntil.After(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

type labelCall struct {
	ownerID string
	emailID string
	add     []string
	remove  []string
}

// fakeLabelSyncer records provider label sync calls.
type fakeLabelSyncer struct {
	calls []labelCall
	err   error
}

func (f *fakeLabelSyncer) ModifyLabels(ctx context.Context, ownerID, emailID string, add, remove []string) error {
	f.calls = append(f.calls, labelCall{ownerID: ownerID, emailID: emailID, add: add, remove: remove})
	return f.err
}

// fakeLabelDirectory is a syncer that can also enumerate labels.
type fakeLabelDirectory struct {
	fakeLabelSyncer
	labels  map[string]string
	listErr error
}

func (f *fakeLabelDirectory) ListLabels(ctx context.Context, ownerID string) (map[string]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.labels, nil
}

func newTestUsecase(repo *fakeConfigRepo, store *fakeMailStore, labels LabelSyncer) *boardUsecase {
	return NewBoardUsecase(repo, store, labels, testLogger()).(*boardUsecase)
}
