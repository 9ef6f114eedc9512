package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/payment_probability/internal/domain"
	"github.com/locvowork/payment_probability/internal/handler"
	"github.com/locvowork/payment_probability/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	calls   int
	summary *domain.Summary
	err     error
}

func (f *fakeService) Run(context.Context) (*domain.Summary, error) {
	f.calls++
	return f.summary, f.err
}

type fakeHistory struct {
	runs      []domain.RunRecord
	lastLimit int
	getErr    error
}

func (h *fakeHistory) Record(context.Context, domain.RunRecord) error { return nil }

func (h *fakeHistory) Get(_ context.Context, id string) (*domain.RunRecord, error) {
	if h.getErr != nil {
		return nil, h.getErr
	}
	for i := range h.runs {
		if h.runs[i].ID == id {
			return &h.runs[i], nil
		}
	}
	return nil, history.ErrRunNotFound
}

func (h *fakeHistory) Recent(_ context.Context, limit int) ([]domain.RunRecord, error) {
	h.lastLimit = limit
	return h.runs, nil
}

func (h *fakeHistory) Close() error { return nil }

type response struct {
	Success bool
	Message string
	Data    json.RawMessage
	Error   string
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var r response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	return r
}

func TestTriggerHandler(t *testing.T) {
	e := echo.New()

	t.Run("Waiting without trigger", func(t *testing.T) {
		svc := &fakeService{}
		h := handler.NewPredictionHandler(svc, nil, true)

		req := httptest.NewRequest(http.MethodGet, "/?foo=bar", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.TriggerHandler(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0, svc.calls)
		r := decode(t, rec)
		assert.True(t, r.Success)
		assert.JSONEq(t, `{"foo":"bar"}`, string(r.Data))
	})

	t.Run("Runs with trigger=true", func(t *testing.T) {
		svc := &fakeService{summary: &domain.Summary{RunID: "r1", Processed: 2, Written: true, WriteRange: "Página1!A1:G3"}}
		h := handler.NewPredictionHandler(svc, nil, true)

		req := httptest.NewRequest(http.MethodGet, "/?trigger=true", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.TriggerHandler(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, svc.calls)
		r := decode(t, rec)
		assert.Equal(t, "Spreadsheet updated", r.Message)
		assert.Contains(t, string(r.Data), `"write_range":"Página1!A1:G3"`)
	})

	t.Run("Unconditional when trigger not required", func(t *testing.T) {
		svc := &fakeService{summary: &domain.Summary{RunID: "r2"}}
		h := handler.NewPredictionHandler(svc, nil, false)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.TriggerHandler(e.NewContext(req, rec)))

		assert.Equal(t, 1, svc.calls)
		assert.Equal(t, "No data found, nothing written", decode(t, rec).Message)
	})

	t.Run("Header error maps to 422", func(t *testing.T) {
		svc := &fakeService{summary: &domain.Summary{}, err: &domain.HeaderError{Missing: "Idade"}}
		h := handler.NewPredictionHandler(svc, nil, true)

		req := httptest.NewRequest(http.MethodPost, "/run", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.RunHandler(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		r := decode(t, rec)
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, "Idade")
	})

	t.Run("Other failures map to 500", func(t *testing.T) {
		svc := &fakeService{summary: &domain.Summary{}, err: errors.New("boom")}
		h := handler.NewPredictionHandler(svc, nil, true)

		req := httptest.NewRequest(http.MethodPost, "/run", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.RunHandler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestListRunsHandler(t *testing.T) {
	e := echo.New()
	hist := &fakeHistory{runs: []domain.RunRecord{{ID: "r1", Status: domain.RunStatusSucceeded}}}
	h := handler.NewPredictionHandler(&fakeService{}, hist, true)

	req := httptest.NewRequest(http.MethodGet, "/runs?limit=5", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListRunsHandler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, hist.lastLimit)
	assert.Contains(t, string(decode(t, rec).Data), `"id":"r1"`)

	req = httptest.NewRequest(http.MethodGet, "/runs?limit=zero", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, h.ListRunsHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRunHandler(t *testing.T) {
	e := echo.New()
	hist := &fakeHistory{runs: []domain.RunRecord{{ID: "r1", Status: domain.RunStatusSucceeded}}}
	h := handler.NewPredictionHandler(&fakeService{}, hist, true)

	get := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/runs/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/runs/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, h.GetRunHandler(c))
		return rec
	}

	t.Run("Found", func(t *testing.T) {
		rec := get("r1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(decode(t, rec).Data), `"status":"succeeded"`)
	})

	t.Run("NotFound", func(t *testing.T) {
		rec := get("missing")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, decode(t, rec).Success)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		hist.getErr = errors.New("database is locked")
		defer func() { hist.getErr = nil }()
		rec := get("r1")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
