package usecase

import (
	"fmt"
	"sort"
	"time"

	boarddomain "mailboard/internal/board/domain"
	"mailboard/internal/board/repository"
	"mailboard/pkg/slug"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// fallbackStatusBase is used when a title or label slugs down to nothing.
const fallbackStatusBase = "column"

// boardUsecase implements BoardUsecase interface
type boardUsecase struct {
	configRepo    repository.BoardConfigRepository
	mailStore     repository.MailStore
	labels        LabelSyncer
	log           *logrus.Logger
	now           func() time.Time
	snoozeDefault time.Duration
}

// NewBoardUsecase creates a new instance of boardUsecase. labels may be nil
// when no provider label sync is configured.
func NewBoardUsecase(configRepo repository.BoardConfigRepository, mailStore repository.MailStore, labels LabelSyncer, log *logrus.Logger) BoardUsecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &boardUsecase{
		configRepo:    configRepo,
		mailStore:     mailStore,
		labels:        labels,
		log:           log,
		now:           time.Now,
		snoozeDefault: time.Hour,
	}
}

// defaultConfig builds the seeded 4-column set for a new owner. Inbox and
// To Do come pre-mapped to provider labels.
func defaultConfig(ownerID string) *boarddomain.BoardConfig {
	snoozeID := uuid.New().String()
	return &boarddomain.BoardConfig{
		OwnerID:        ownerID,
		SnoozeColumnID: snoozeID,
		Columns: boarddomain.ColumnList{
			{ID: uuid.New().String(), Status: "inbox", Title: "Inbox", Color: "blue", Icon: "inbox", ProviderLabel: "INBOX", Order: 0},
			{ID: uuid.New().String(), Status: "todo", Title: "To Do", Color: "yellow", Icon: "list", ProviderLabel: "IMPORTANT", Order: 1},
			{ID: uuid.New().String(), Status: "done", Title: "Done", Color: "green", Icon: "check", Order: 2},
			{ID: snoozeID, Status: "snoozed", Title: "Snoozed", Color: "purple", Icon: "clock", Order: 3},
		},
	}
}

// loadConfig returns the owner's configuration, seeding defaults on first
// access and normalizing legacy records. Columns come back ordered.
func (u *boardUsecase) loadConfig(ownerID string) (*boarddomain.BoardConfig, error) {
	cfg, err := u.configRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		// Owner-keyed upsert: a concurrent first read that loses the race
		// simply reads back the winner's row.
		if err := u.configRepo.Seed(defaultConfig(ownerID)); err != nil {
			return nil, err
		}
		cfg, err = u.configRepo.GetByOwner(ownerID)
		if err != nil {
			return nil, err
		}
		if cfg == nil {
			return nil, fmt.Errorf("board config missing after seed for owner %s", ownerID)
		}
	}

	if normalizeLegacyColumns(cfg) {
		if err := u.configRepo.Save(cfg); err != nil {
			return nil, err
		}
	}

	sortColumns(cfg.Columns)
	return cfg, nil
}

// normalizeLegacyColumns upgrades records written before status existed:
// the old id becomes the status and a fresh id is minted. Returns whether
// anything changed so the caller can persist the normalized form once.
func normalizeLegacyColumns(cfg *boarddomain.BoardConfig) bool {
	changed := false
	for i := range cfg.Columns {
		if cfg.Columns[i].Status == "" && cfg.Columns[i].ID != "" {
			oldID := cfg.Columns[i].ID
			cfg.Columns[i].Status = oldID
			cfg.Columns[i].ID = uuid.New().String()
			if cfg.SnoozeColumnID == oldID {
				cfg.SnoozeColumnID = cfg.Columns[i].ID
			}
			changed = true
		}
	}
	return changed
}

func sortColumns(cols boarddomain.ColumnList) {
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Order < cols[j].Order })
}

// renumberColumns makes order values a dense 0..n-1 sequence matching
// array position.
func renumberColumns(cols []boarddomain.Column) {
	for i := range cols {
		cols[i].Order = i
	}
}

// resolveStatus returns base if unused, otherwise the first base-N suffix
// that is. Deterministic: ties break on the lowest suffix.
func resolveStatus(base string, taken map[string]bool) string {
	if base == "" {
		base = fallbackStatusBase
	}
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// statusBase derives the slug base for a column: provider-label slug when a
// label is declared, title slug otherwise.
func statusBase(col boarddomain.Column) string {
	if col.ProviderLabel != "" {
		return slug.Make(col.ProviderLabel)
	}
	return slug.Make(col.Title)
}

// deriveStatuses finalizes the status of every incoming column. A column
// whose title and provider label are unchanged keeps its prior status;
// everything else is re-derived and resolved against the statuses already
// claimed in this save. Two passes so a kept status can never be stolen by
// an earlier derived one.
func deriveStatuses(prev, incoming []boarddomain.Column) []boarddomain.Column {
	prevByID := make(map[string]boarddomain.Column, len(prev))
	for _, col := range prev {
		prevByID[col.ID] = col
	}

	out := make([]boarddomain.Column, len(incoming))
	copy(out, incoming)

	taken := make(map[string]bool, len(incoming))
	needsDerive := make([]int, 0, len(incoming))
	for i, col := range out {
		p, existed := prevByID[col.ID]
		if existed && p.Status != "" && p.Title == col.Title && p.ProviderLabel == col.ProviderLabel {
			out[i].Status = p.Status
			taken[p.Status] = true
			continue
		}
		needsDerive = append(needsDerive, i)
	}

	for _, i := range needsDerive {
		status := resolveStatus(statusBase(out[i]), taken)
		out[i].Status = status
		taken[status] = true
	}

	return out
}

// validateColumns enforces the column invariants: required fields, closed
// presentation enums, unique ids and pairwise-unique provider labels.
func validateColumns(cols []boarddomain.Column) error {
	if len(cols) == 0 {
		return boarddomain.NewValidationError("at least one column is required")
	}

	seenIDs := make(map[string]bool, len(cols))
	seenLabels := make(map[string]bool, len(cols))
	for _, col := range cols {
		if col.ID == "" {
			return boarddomain.NewValidationError("column %q is missing an id", col.Title)
		}
		if col.Title == "" {
			return boarddomain.NewValidationError("column %s is missing a title", col.ID)
		}
		if col.Color == "" || !boarddomain.ValidColor(col.Color) {
			return boarddomain.NewValidationError("column %q has invalid color %q", col.Title, col.Color)
		}
		if col.Icon == "" || !boarddomain.ValidIcon(col.Icon) {
			return boarddomain.NewValidationError("column %q has invalid icon %q", col.Title, col.Icon)
		}
		if seenIDs[col.ID] {
			return boarddomain.NewValidationError("duplicate column id %s", col.ID)
		}
		seenIDs[col.ID] = true
		if col.ProviderLabel != "" {
			if seenLabels[col.ProviderLabel] {
				return boarddomain.NewValidationError("provider label %q is claimed by more than one column", col.ProviderLabel)
			}
			seenLabels[col.ProviderLabel] = true
		}
	}
	return nil
}

// ListColumns gets the owner's columns, seeding the default set on first
// access
func (u *boardUsecase) ListColumns(ownerID string) ([]boarddomain.Column, error) {
	cfg, err := u.loadConfig(ownerID)
	if err != nil {
		return nil, err
	}
	return cfg.Columns, nil
}

// ReplaceColumns validates and commits a whole new column set, migrating
// emails whose status was renamed before the configuration is persisted.
func (u *boardUsecase) ReplaceColumns(ownerID string, incoming []boarddomain.Column, clientMigrations map[string]string) ([]boarddomain.Column, *MigrationReport, error) {
	if err := validateColumns(incoming); err != nil {
		return nil, nil, err
	}

	cfg, err := u.loadConfig(ownerID)
	if err != nil {
		return nil, nil, err
	}

	resolved := deriveStatuses(cfg.Columns, incoming)
	renumberColumns(resolved)

	plan := u.planMigrations(cfg.Columns, resolved)
	plan = u.mergeClientMigrations(plan, clientMigrations)

	// Emails first, columns second: a partially failed migration never
	// blocks the user's edit, a re-save corrects the stragglers.
	report := u.executeMigrations(ownerID, plan)

	cfg.Columns = resolved
	if cfg.SnoozeColumnID != "" && findColumnByID(resolved, cfg.SnoozeColumnID) == nil {
		cfg.SnoozeColumnID = ""
	}
	if err := u.configRepo.Save(cfg); err != nil {
		return nil, report, err
	}

	return resolved, report, nil
}

// AddColumn appends a single column, finalizing its status immediately.
func (u *boardUsecase) AddColumn(ownerID string, col boarddomain.Column) ([]boarddomain.Column, error) {
	cfg, err := u.loadConfig(ownerID)
	if err != nil {
		return nil, err
	}

	if col.ID == "" {
		col.ID = uuid.New().String()
	}

	taken := make(map[string]bool, len(cfg.Columns))
	for _, existing := range cfg.Columns {
		if existing.ID == col.ID {
			return nil, boarddomain.NewValidationError("duplicate column id %s", col.ID)
		}
		if col.ProviderLabel != "" && existing.ProviderLabel == col.ProviderLabel {
			return nil, boarddomain.NewValidationError("provider label %q is claimed by more than one column", col.ProviderLabel)
		}
		taken[existing.Status] = true
	}

	col.Status = resolveStatus(statusBase(col), taken)
	col.Order = len(cfg.Columns)

	next := append([]boarddomain.Column{}, cfg.Columns...)
	next = append(next, col)
	if err := validateColumns(next); err != nil {
		return nil, err
	}

	cfg.Columns = next
	if err := u.configRepo.Save(cfg); err != nil {
		return nil, err
	}
	return cfg.Columns, nil
}

// RemoveColumn deletes a column. No email rewrite happens: emails keep the
// orphaned status until a later rename or explicit migration re-adopts them.
func (u *boardUsecase) RemoveColumn(ownerID, columnID string) ([]boarddomain.Column, error) {
	cfg, err := u.loadConfig(ownerID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, col := range cfg.Columns {
		if col.ID == columnID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &boarddomain.NotFoundError{Resource: "column", ID: columnID}
	}
	if len(cfg.Columns) == 1 {
		return nil, boarddomain.NewValidationError("cannot delete the last remaining column")
	}

	cfg.Columns = append(cfg.Columns[:idx], cfg.Columns[idx+1:]...)
	renumberColumns(cfg.Columns)
	if cfg.SnoozeColumnID == columnID {
		cfg.SnoozeColumnID = ""
	}

	if err := u.configRepo.Save(cfg); err != nil {
		return nil, err
	}
	return cfg.Columns, nil
}

// PatchColumn merges a field-level update into one column. Status is
// re-derived only when title or provider label actually changed; color,
// icon and order edits leave it untouched.
func (u *boardUsecase) PatchColumn(ownerID, columnID string, patch ColumnPatch) (*boarddomain.Column, *MigrationReport, error) {
	cfg, err := u.loadConfig(ownerID)
	if err != nil {
		return nil, nil, err
	}

	idx := -1
	for i, col := range cfg.Columns {
		if col.ID == columnID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, &boarddomain.NotFoundError{Resource: "column", ID: columnID}
	}

	col := cfg.Columns[idx]
	identityChanged := false
	if patch.Title != nil && *patch.Title != col.Title {
		col.Title = *patch.Title
		identityChanged = true
	}
	if patch.ProviderLabel != nil && *patch.ProviderLabel != col.ProviderLabel {
		col.ProviderLabel = *patch.ProviderLabel
		identityChanged = true
	}
	if patch.Color != nil {
		col.Color = *patch.Color
	}
	if patch.Icon != nil {
		col.Icon = *patch.Icon
	}
	if patch.Order != nil {
		col.Order = *patch.Order
	}

	var report *MigrationReport
	priorStatus := cfg.Columns[idx].Status
	if identityChanged {
		taken := make(map[string]bool, len(cfg.Columns))
		for i, other := range cfg.Columns {
			if i != idx {
				taken[other.Status] = true
			}
		}
		col.Status = resolveStatus(statusBase(col), taken)
	}

	cfg.Columns[idx] = col
	if err := validateColumns(cfg.Columns); err != nil {
		return nil, nil, err
	}

	if identityChanged && col.Status != priorStatus {
		report = u.executeMigrations(ownerID, []boarddomain.StatusMigration{
			{OldStatus: priorStatus, NewStatus: col.Status},
		})
	}

	sortColumns(cfg.Columns)
	renumberColumns(cfg.Columns)
	if err := u.configRepo.Save(cfg); err != nil {
		return nil, report, err
	}

	for i := range cfg.Columns {
		if cfg.Columns[i].ID == columnID {
			saved := cfg.Columns[i]
			return &saved, report, nil
		}
	}
	return &col, report, nil
}
