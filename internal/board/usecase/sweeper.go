package usecase

import (
	"context"
	"time"

	boarddomain "mailboard/internal/board/domain"

	"github.com/sirupsen/logrus"
)

// WakeExpiredSnoozes returns every email whose snooze window has elapsed to
// its owner's first column and clears the timestamp. Failures on one email
// never stop the sweep.
func (u *boardUsecase) WakeExpiredSnoozes(ctx context.Context) error {
	expired, err := u.mailStore.FetchExpiredSnoozes(u.now())
	if err != nil {
		return err
	}

	configs := make(map[string]*boarddomain.BoardConfig)
	for _, email := range expired {
		cfg, ok := configs[email.OwnerID]
		if !ok {
			cfg, err = u.loadConfig(email.OwnerID)
			if err != nil {
				u.log.WithField("owner", email.OwnerID).WithError(err).Warn("snooze sweep: config load failed")
				continue
			}
			configs[email.OwnerID] = cfg
		}
		if len(cfg.Columns) == 0 {
			continue
		}
		home := cfg.Columns[0]
		source := findColumnByStatus(cfg.Columns, email.Status)

		if email.Status != home.Status {
			if err := u.mailStore.UpdateStatus(email.OwnerID, email.ID, home.Status); err != nil {
				u.log.WithField("email", email.ID).WithError(err).Warn("snooze sweep: status restore failed")
				continue
			}
		}
		if err := u.mailStore.Snooze(email.OwnerID, email.ID, nil); err != nil {
			u.log.WithField("email", email.ID).WithError(err).Warn("snooze sweep: clear failed")
			continue
		}
		u.syncLabels(ctx, email.OwnerID, email.ID, source, &home)

		u.log.WithFields(logrus.Fields{
			"owner":  email.OwnerID,
			"email":  email.ID,
			"status": home.Status,
		}).Info("email woken up from snooze")
	}

	return nil
}

// StartSnoozeSweeper runs WakeExpiredSnoozes on a fixed interval until the
// context is cancelled.
func StartSnoozeSweeper(ctx context.Context, u BoardUsecase, interval time.Duration, log *logrus.Logger) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := u.WakeExpiredSnoozes(ctx); err != nil {
					log.WithError(err).Warn("snooze sweep failed")
				}
			}
		}
	}()
}
