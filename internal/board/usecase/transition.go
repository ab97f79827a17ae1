package usecase

import (
	"context"
	"time"

	boarddomain "mailboard/internal/board/domain"

	"github.com/sirupsen/logrus"
)

// findColumnByID returns the column with the given id, or nil.
func findColumnByID(cols []boarddomain.Column, id string) *boarddomain.Column {
	for i := range cols {
		if cols[i].ID == id {
			return &cols[i]
		}
	}
	return nil
}

// findColumnByStatus returns the column carrying the given status, or nil
// (the status may be orphaned).
func findColumnByStatus(cols []boarddomain.Column, status string) *boarddomain.Column {
	for i := range cols {
		if cols[i].Status == status {
			return &cols[i]
		}
	}
	return nil
}

// MoveEmail applies a drag-and-drop: the email takes the target column's
// status. Moving onto the snooze column also stamps the default snooze
// window; moving anywhere else clears it. Dropping an email on the column
// it is already in is a no-op. The move always applies to current
// authoritative state; a stale client simply sees last-write-wins and
// refreshes from the response.
func (u *boardUsecase) MoveEmail(ctx context.Context, ownerID, emailID, targetColumnID string) (*boarddomain.Email, error) {
	cfg, err := u.loadConfig(ownerID)
	if err != nil {
		return nil, err
	}

	target := findColumnByID(cfg.Columns, targetColumnID)
	if target == nil {
		return nil, &boarddomain.NotFoundError{Resource: "column", ID: targetColumnID}
	}

	email, err := u.mailStore.GetEmail(ownerID, emailID)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, &boarddomain.NotFoundError{Resource: "email", ID: emailID}
	}

	if email.Status == target.Status {
		return email, nil
	}

	source := findColumnByStatus(cfg.Columns, email.Status)

	var until *time.Time
	if target.ID == cfg.SnoozeColumnID {
		t := u.now().Add(u.snoozeDefault)
		until = &t
	}

	// Persist before reporting back; there is no optimistic server-side
	// state to roll back, the caller reverts on error.
	if err := u.mailStore.UpdateStatus(ownerID, emailID, target.Status); err != nil {
		return nil, err
	}
	if err := u.mailStore.Snooze(ownerID, emailID, until); err != nil {
		return nil, err
	}

	u.syncLabels(ctx, ownerID, emailID, source, target)

	email.Status = target.Status
	email.SnoozedUntil = until
	return email, nil
}

// SnoozeEmail defers an email for the given number of hours (default one
// hour). An email not already in the snooze column moves there; re-snoozing
// only moves the timestamp.
func (u *boardUsecase) SnoozeEmail(ctx context.Context, ownerID, emailID string, hours int) (*boarddomain.Email, error) {
	cfg, err := u.loadConfig(ownerID)
	if err != nil {
		return nil, err
	}

	snoozeCol := findColumnByID(cfg.Columns, cfg.SnoozeColumnID)
	if snoozeCol == nil {
		return nil, &boarddomain.NotFoundError{Resource: "snooze column", ID: cfg.SnoozeColumnID}
	}

	email, err := u.mailStore.GetEmail(ownerID, emailID)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, &boarddomain.NotFoundError{Resource: "email", ID: emailID}
	}

	window := u.snoozeDefault
	if hours > 0 {
		window = time.Duration(hours) * time.Hour
	}
	until := u.now().Add(window)

	if email.Status != snoozeCol.Status {
		source := findColumnByStatus(cfg.Columns, email.Status)
		if err := u.mailStore.UpdateStatus(ownerID, emailID, snoozeCol.Status); err != nil {
			return nil, err
		}
		u.syncLabels(ctx, ownerID, emailID, source, snoozeCol)
		email.Status = snoozeCol.Status
	}

	if err := u.mailStore.Snooze(ownerID, emailID, &until); err != nil {
		return nil, err
	}
	email.SnoozedUntil = &until
	return email, nil
}

// UnsnoozeEmail clears the snooze and returns the email to the owner's
// first column.
func (u *boardUsecase) UnsnoozeEmail(ctx context.Context, ownerID, emailID string) (*boarddomain.Email, error) {
	cfg, err := u.loadConfig(ownerID)
	if err != nil {
		return nil, err
	}
	if len(cfg.Columns) == 0 {
		return nil, &boarddomain.NotFoundError{Resource: "column", ID: "default"}
	}
	home := cfg.Columns[0]

	email, err := u.mailStore.GetEmail(ownerID, emailID)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, &boarddomain.NotFoundError{Resource: "email", ID: emailID}
	}

	source := findColumnByStatus(cfg.Columns, email.Status)
	if email.Status != home.Status {
		if err := u.mailStore.UpdateStatus(ownerID, emailID, home.Status); err != nil {
			return nil, err
		}
		u.syncLabels(ctx, ownerID, emailID, source, &home)
		email.Status = home.Status
	}
	if err := u.mailStore.Snooze(ownerID, emailID, nil); err != nil {
		return nil, err
	}
	email.SnoozedUntil = nil
	return email, nil
}

// ListProviderLabels enumerates the labels a column's providerLabel can
// bind to. Without a listing-capable provider the result is empty.
func (u *boardUsecase) ListProviderLabels(ctx context.Context, ownerID string) (map[string]string, error) {
	lister, ok := u.labels.(LabelLister)
	if !ok {
		return map[string]string{}, nil
	}
	return lister.ListLabels(ctx, ownerID)
}

// syncLabels mirrors a column move onto the provider: add the target's
// label, drop the source's. Labels present on both sides cancel out.
// Best effort: the local status write already happened and the next move
// corrects label drift.
func (u *boardUsecase) syncLabels(ctx context.Context, ownerID, emailID string, source, target *boarddomain.Column) {
	if u.labels == nil || target == nil {
		return
	}

	var add, remove []string
	if target.ProviderLabel != "" {
		add = append(add, target.ProviderLabel)
	}
	if source != nil && source.ProviderLabel != "" && source.ProviderLabel != target.ProviderLabel {
		remove = append(remove, source.ProviderLabel)
	}
	if len(add) == 0 && len(remove) == 0 {
		return
	}

	if err := u.labels.ModifyLabels(ctx, ownerID, emailID, add, remove); err != nil {
		u.log.WithFields(logrus.Fields{
			"owner": ownerID,
			"email": emailID,
		}).WithError(err).Warn("provider label sync failed")
	}
}
