package repository

import (
	"time"

	boarddomain "mailboard/internal/board/domain"

	"gorm.io/gorm"
)

// mailStoreRepository implements MailStore on the local email mirror table
type mailStoreRepository struct {
	db *gorm.DB
}

// NewMailStoreRepository creates a new instance of mailStoreRepository
func NewMailStoreRepository(db *gorm.DB) MailStore {
	return &mailStoreRepository{
		db: db,
	}
}

// GetEmail gets a single email for an owner
func (r *mailStoreRepository) GetEmail(ownerID, emailID string) (*boarddomain.Email, error) {
	var email boarddomain.Email
	err := r.db.Where("owner_id = ? AND id = ?", ownerID, emailID).First(&email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

// FetchByOwner gets all emails for an owner
func (r *mailStoreRepository) FetchByOwner(ownerID string) ([]*boarddomain.Email, error) {
	var emails []*boarddomain.Email
	err := r.db.Where("owner_id = ?", ownerID).Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

// FetchByStatus gets all emails for an owner carrying the given status
func (r *mailStoreRepository) FetchByStatus(ownerID, status string) ([]*boarddomain.Email, error) {
	var emails []*boarddomain.Email
	err := r.db.Where("owner_id = ? AND status = ?", ownerID, status).Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

// UpdateStatus point-updates an email's status
func (r *mailStoreRepository) UpdateStatus(ownerID, emailID, status string) error {
	return r.db.Model(&boarddomain.Email{}).
		Where("owner_id = ? AND id = ?", ownerID, emailID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}

// Snooze point-updates an email's snooze timestamp; nil clears it
func (r *mailStoreRepository) Snooze(ownerID, emailID string, until *time.Time) error {
	return r.db.Model(&boarddomain.Email{}).
		Where("owner_id = ? AND id = ?", ownerID, emailID).
		Updates(map[string]interface{}{"snoozed_until": until, "updated_at": time.Now()}).Error
}

// BulkRewriteStatus rewrites every email of the owner whose status equals
// oldStatus to newStatus and returns the matched count
func (r *mailStoreRepository) BulkRewriteStatus(ownerID, oldStatus, newStatus string) (int64, error) {
	res := r.db.Model(&boarddomain.Email{}).
		Where("owner_id = ? AND status = ?", ownerID, oldStatus).
		Updates(map[string]interface{}{"status": newStatus, "updated_at": time.Now()})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// FetchExpiredSnoozes gets all emails whose snooze timestamp has elapsed
func (r *mailStoreRepository) FetchExpiredSnoozes(now time.Time) ([]*boarddomain.Email, error) {
	var emails []*boarddomain.Email
	err := r.db.Where("snoozed_until IS NOT NULL AND snoozed_until <= ?", now).Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
