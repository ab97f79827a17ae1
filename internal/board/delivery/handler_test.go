package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	boarddomain "mailboard/internal/board/domain"
	"mailboard/internal/board/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUsecase returns canned values and records what the handlers pass down.
type stubUsecase struct {
	columns []boarddomain.Column
	email   *boarddomain.Email
	err     error

	movedTo      string
	snoozedHours int
	boardOpts    usecase.ProjectionOptions
}

func (s *stubUsecase) ListColumns(ownerID string) ([]boarddomain.Column, error) {
	return s.columns, s.err
}

func (s *stubUsecase) ReplaceColumns(ownerID string, columns []boarddomain.Column, clientMigrations map[string]string) ([]boarddomain.Column, *usecase.MigrationReport, error) {
	return s.columns, nil, s.err
}

func (s *stubUsecase) AddColumn(ownerID string, column boarddomain.Column) ([]boarddomain.Column, error) {
	return s.columns, s.err
}

func (s *stubUsecase) RemoveColumn(ownerID, columnID string) ([]boarddomain.Column, error) {
	return s.columns, s.err
}

func (s *stubUsecase) PatchColumn(ownerID, columnID string, patch usecase.ColumnPatch) (*boarddomain.Column, *usecase.MigrationReport, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return &s.columns[0], nil, nil
}

func (s *stubUsecase) MoveEmail(ctx context.Context, ownerID, emailID, targetColumnID string) (*boarddomain.Email, error) {
	s.movedTo = targetColumnID
	return s.email, s.err
}

func (s *stubUsecase) SnoozeEmail(ctx context.Context, ownerID, emailID string, hours int) (*boarddomain.Email, error) {
	s.snoozedHours = hours
	return s.email, s.err
}

func (s *stubUsecase) UnsnoozeEmail(ctx context.Context, ownerID, emailID string) (*boarddomain.Email, error) {
	return s.email, s.err
}

func (s *stubUsecase) WakeExpiredSnoozes(ctx context.Context) error { return s.err }

func (s *stubUsecase) ListProviderLabels(ctx context.Context, ownerID string) (map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]string{"INBOX": "INBOX"}, nil
}

func (s *stubUsecase) Board(ownerID string, opts usecase.ProjectionOptions) (*usecase.BoardSnapshot, error) {
	s.boardOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.BoardSnapshot{RefreshedAt: time.Now()}, nil
}

func testHandlerRouter(stub *stubUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBoardHandler(stub, usecase.NewRefresher(stub, time.Minute, nil))

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("ownerID", "owner-1") })
	r.GET("/config", h.GetConfig)
	r.PUT("/config", h.ReplaceConfig)
	r.POST("/config/columns", h.AddColumn)
	r.DELETE("/config/columns/:id", h.DeleteColumn)
	r.PATCH("/config/columns/:id", h.PatchColumn)
	r.GET("/board", h.GetBoard)
	r.GET("/labels", h.GetLabels)
	r.PATCH("/emails/:id/move", h.MoveEmail)
	r.POST("/emails/:id/snooze", h.SnoozeEmail)
	r.POST("/emails/:id/unsnooze", h.UnsnoozeEmail)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetConfig(t *testing.T) {
	stub := &stubUsecase{columns: []boarddomain.Column{
		{ID: "c1", Status: "inbox", Title: "Inbox", Color: "blue", Icon: "inbox"},
	}}
	r := testHandlerRouter(stub)

	w := serve(r, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Columns []boarddomain.Column `json:"columns"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Columns, 1)
	assert.Equal(t, "inbox", resp.Data.Columns[0].Status)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: boarddomain.NewValidationError("bad column"), want: http.StatusBadRequest},
		{name: "not-found", err: &boarddomain.NotFoundError{Resource: "column", ID: "x"}, want: http.StatusNotFound},
		{name: "internal", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			r := testHandlerRouter(&stubUsecase{err: tc.err})
			w := serve(r, http.MethodGet, "/config", "")
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestReplaceConfigRequiresColumns(t *testing.T) {
	r := testHandlerRouter(&stubUsecase{})

	w := serve(r, http.MethodPut, "/config", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddColumnCreated(t *testing.T) {
	stub := &stubUsecase{columns: []boarddomain.Column{
		{ID: "c1", Status: "waiting", Title: "Waiting", Color: "gray", Icon: "tag"},
	}}
	r := testHandlerRouter(stub)

	w := serve(r, http.MethodPost, "/config/columns", `{"title":"Waiting","color":"gray","icon":"tag"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetBoardParsesQuery(t *testing.T) {
	stub := &stubUsecase{}
	r := testHandlerRouter(stub)

	w := serve(r, http.MethodGet, "/board?unread=true&attachments=true&sort=asc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.boardOpts.UnreadOnly)
	assert.True(t, stub.boardOpts.HasAttachments)
	assert.True(t, stub.boardOpts.SortAscending)

	w = serve(r, http.MethodGet, "/board", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, stub.boardOpts.UnreadOnly)
	assert.False(t, stub.boardOpts.HasAttachments)
	assert.False(t, stub.boardOpts.SortAscending)
}

func TestGetLabels(t *testing.T) {
	r := testHandlerRouter(&stubUsecase{})

	w := serve(r, http.MethodGet, "/labels", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "INBOX", resp.Data["INBOX"])
}

func TestMoveEmail(t *testing.T) {
	stub := &stubUsecase{email: &boarddomain.Email{ID: "m1", Status: "done"}}
	r := testHandlerRouter(stub)

	w := serve(r, http.MethodPatch, "/emails/m1/move", `{"columnId":"c2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c2", stub.movedTo)

	// The target column id is required.
	w = serve(r, http.MethodPatch, "/emails/m1/move", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnoozeEmailBodyOptional(t *testing.T) {
	stub := &stubUsecase{email: &boarddomain.Email{ID: "m1", Status: "snoozed"}}
	r := testHandlerRouter(stub)

	// No body at all defaults the window.
	w := serve(r, http.MethodPost, "/emails/m1/snooze", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, stub.snoozedHours)

	w = serve(r, http.MethodPost, "/emails/m1/snooze", `{"hours":24}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 24, stub.snoozedHours)
}

func TestUnsnoozeEmail(t *testing.T) {
	stub := &stubUsecase{email: &boarddomain.Email{ID: "m1", Status: "inbox"}}
	r := testHandlerRouter(stub)

	w := serve(r, http.MethodPost, "/emails/m1/unsnooze", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    *boarddomain.Email `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "inbox", resp.Data.Status)
}
