package usecase

import (
	"testing"
	"time"

	boarddomain "mailboard/internal/board/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectionColumns() []boarddomain.Column {
	return []boarddomain.Column{
		{ID: "c1", Status: "inbox", Title: "Inbox", Color: "blue", Icon: "inbox", Order: 0},
		{ID: "c2", Status: "done", Title: "Done", Color: "green", Icon: "check", Order: 1},
		{ID: "c3", Status: "empty", Title: "Empty", Color: "gray", Icon: "tag", Order: 2},
	}
}

func projectionEmails(base time.Time) []*boarddomain.Email {
	return []*boarddomain.Email{
		{ID: "m1", Status: "inbox", IsRead: false, ReceivedAt: base.Add(3 * time.Hour)},
		{ID: "m2", Status: "inbox", IsRead: true, ReceivedAt: base.Add(1 * time.Hour)},
		{ID: "m3", Status: "inbox", IsRead: false, ReceivedAt: base.Add(2 * time.Hour),
			Attachments: boarddomain.AttachmentList{"att-1"}},
		{ID: "m4", Status: "done", IsRead: true, ReceivedAt: base.Add(4 * time.Hour)},
		{ID: "m5", Status: "orphaned", IsRead: false, ReceivedAt: base.Add(5 * time.Hour)},
	}
}

func bucketIDs(b ColumnBucket) []string {
	ids := make([]string, len(b.Emails))
	for i, e := range b.Emails {
		ids[i] = e.ID
	}
	return ids
}

func TestProjectGroupsByStatus(t *testing.T) {
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	snap := Project(projectionColumns(), projectionEmails(base), ProjectionOptions{}, base)

	require.Len(t, snap.Columns, 3)
	assert.Equal(t, base, snap.RefreshedAt)

	// Newest first by default.
	assert.Equal(t, []string{"m1", "m3", "m2"}, bucketIDs(snap.Columns[0]))
	assert.Equal(t, 3, snap.Columns[0].Total)
	assert.Equal(t, 3, snap.Columns[0].Filtered)

	assert.Equal(t, []string{"m4"}, bucketIDs(snap.Columns[1]))

	// Empty columns stay in the projection; orphaned statuses show nowhere.
	assert.Empty(t, snap.Columns[2].Emails)
	assert.Equal(t, 0, snap.Columns[2].Total)
}

func TestProjectFilters(t *testing.T) {
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	cols := projectionColumns()
	emails := projectionEmails(base)

	t.Run("unread-only", func(t *testing.T) {
		snap := Project(cols, emails, ProjectionOptions{UnreadOnly: true}, base)
		assert.Equal(t, []string{"m1", "m3"}, bucketIDs(snap.Columns[0]))
		assert.Equal(t, 2, snap.Columns[0].Filtered)
		// Total counts the unfiltered population.
		assert.Equal(t, 3, snap.Columns[0].Total)
		assert.Empty(t, snap.Columns[1].Emails)
	})

	t.Run("has-attachments", func(t *testing.T) {
		snap := Project(cols, emails, ProjectionOptions{HasAttachments: true}, base)
		assert.Equal(t, []string{"m3"}, bucketIDs(snap.Columns[0]))
	})

	t.Run("filters-are-anded", func(t *testing.T) {
		snap := Project(cols, emails, ProjectionOptions{UnreadOnly: true, HasAttachments: true}, base)
		assert.Equal(t, []string{"m3"}, bucketIDs(snap.Columns[0]))
	})
}

func TestProjectSortAscending(t *testing.T) {
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	snap := Project(projectionColumns(), projectionEmails(base), ProjectionOptions{SortAscending: true}, base)
	assert.Equal(t, []string{"m2", "m3", "m1"}, bucketIDs(snap.Columns[0]))
}

func TestProjectSortIsStable(t *testing.T) {
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	emails := []*boarddomain.Email{
		{ID: "m1", Status: "inbox", ReceivedAt: base},
		{ID: "m2", Status: "inbox", ReceivedAt: base},
		{ID: "m3", Status: "inbox", ReceivedAt: base},
	}
	snap := Project(projectionColumns(), emails, ProjectionOptions{}, base)
	assert.Equal(t, []string{"m1", "m2", "m3"}, bucketIDs(snap.Columns[0]))
}

func TestBoardProjectsLiveState(t *testing.T) {
	repo := &fakeConfigRepo{}
	store := newFakeMailStore(
		&boarddomain.Email{ID: "m1", OwnerID: testOwner, Status: "inbox"},
		&boarddomain.Email{ID: "m2", OwnerID: testOwner, Status: "done"},
		&boarddomain.Email{ID: "m3", OwnerID: "someone-else", Status: "inbox"},
	)
	u := newTestUsecase(repo, store, nil)

	snap, err := u.Board(testOwner, ProjectionOptions{})
	require.NoError(t, err)
	require.Len(t, snap.Columns, 4)

	var total int
	for _, bucket := range snap.Columns {
		total += bucket.Total
	}
	// Only the owner's emails are projected.
	assert.Equal(t, 2, total)
}
