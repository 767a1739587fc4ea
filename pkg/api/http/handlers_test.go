package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aescanero/shortcast/internal/application/orchestrator"
	"github.com/aescanero/shortcast/internal/application/trigger"
	"github.com/aescanero/shortcast/pkg/adapters/storage/memory"
	"github.com/aescanero/shortcast/pkg/domain"
)

type fakeTrigger struct {
	record  *domain.RunRecord
	err     error
	sources []trigger.Source
	ctxErr  error
}

func (f *fakeTrigger) Trigger(ctx context.Context, source trigger.Source) (*domain.RunRecord, error) {
	f.sources = append(f.sources, source)
	f.ctxErr = ctx.Err()
	return f.record, f.err
}

func (f *fakeTrigger) GetStatus() trigger.Status {
	return trigger.Status{}
}

func newTestServer(t *testing.T, trg *fakeTrigger) (*Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore(domain.DefaultHistoryLimit)
	srv := NewServer(&Config{
		Port:           0,
		Trigger:        trg,
		Configs:        store,
		Runs:           store,
		Validator:      orchestrator.NewValidator(),
		Logger:         zap.NewNop(),
		MetricsHandler: http.NotFoundHandler(),
	})
	return srv, store
}

func do(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleTriggerRun_Success(t *testing.T) {
	trg := &fakeTrigger{record: &domain.RunRecord{ID: "run-1", Status: domain.RunStatusSuccess}}
	srv, _ := newTestServer(t, trg)

	rec := do(t, srv, http.MethodPost, "/api/v1/runs", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "run-1", resp.Result.ID)
	assert.Equal(t, []trigger.Source{trigger.SourceHTTP}, trg.sources)
	assert.NoError(t, trg.ctxErr)
}

func TestHandleTriggerRun_Failure(t *testing.T) {
	trg := &fakeTrigger{
		record: &domain.RunRecord{ID: "run-2", Status: domain.RunStatusFailed, Error: "boom"},
		err:    errors.New("boom"),
	}
	srv, _ := newTestServer(t, trg)

	rec := do(t, srv, http.MethodPost, "/api/v1/runs", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "boom", resp.Error)
	require.NotNil(t, resp.Result)
	assert.Equal(t, domain.RunStatusFailed, resp.Result.Status)
}

func TestHandleTriggerRun_InProgress(t *testing.T) {
	srv, _ := newTestServer(t, &fakeTrigger{err: domain.ErrRunInProgress})

	rec := do(t, srv, http.MethodPost, "/api/v1/runs", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "RUN_IN_PROGRESS", resp.Error.Code)
}

func TestHandleListRuns(t *testing.T) {
	srv, store := newTestServer(t, &fakeTrigger{})
	ctx := context.Background()

	rec := do(t, srv, http.MethodGet, "/api/v1/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"latest":null,"history":[]}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/v1/runs/latest", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.Append(ctx, &domain.RunRecord{ID: "a", StartedAt: started, Status: domain.RunStatusFailed}))
	require.NoError(t, store.Append(ctx, &domain.RunRecord{ID: "b", StartedAt: started, Status: domain.RunStatusSuccess}))

	rec = do(t, srv, http.MethodGet, "/api/v1/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Latest)
	assert.Equal(t, "b", resp.Latest.ID)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "b", resp.History[0].ID)
	assert.Equal(t, "a", resp.History[1].ID)

	rec = do(t, srv, http.MethodGet, "/api/v1/runs/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var latest domain.RunRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Equal(t, "b", latest.ID)
}

func TestHandleConfig_GetBeforeSave(t *testing.T) {
	srv, _ := newTestServer(t, &fakeTrigger{})

	rec := do(t, srv, http.MethodGet, "/api/v1/config", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"config":null}`, rec.Body.String())
}

func TestHandleConfig_SaveMergesDefaults(t *testing.T) {
	srv, store := newTestServer(t, &fakeTrigger{})

	rec := do(t, srv, http.MethodPut, "/api/v1/config", map[string]interface{}{
		"channel_name": "Quantum Bytes",
		"tone":         "playful",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ConfigResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Config)
	assert.Equal(t, "Quantum Bytes", resp.Config.ChannelName)
	assert.Equal(t, domain.TonePlayful, resp.Config.Tone)
	assert.Equal(t, domain.DefaultBrandConfig().BrandColor, resp.Config.BrandColor)

	saved, err := store.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Quantum Bytes", saved.ChannelName)

	// A second partial save keeps the first one's fields
	rec = do(t, srv, http.MethodPost, "/api/v1/config", map[string]interface{}{"tagline": "Fresh"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Quantum Bytes", resp.Config.ChannelName)
	assert.Equal(t, "Fresh", resp.Config.Tagline)
}

func TestHandleConfig_RejectsInvalid(t *testing.T) {
	srv, store := newTestServer(t, &fakeTrigger{})

	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "bad color", body: `{"brand_color":"teal"}`, code: "INVALID_CONFIG"},
		{name: "bad tone", body: `{"tone":"angry"}`, code: "INVALID_CONFIG"},
		{name: "bad hashtag", body: `{"hashtags":["no hash"]}`, code: "INVALID_CONFIG"},
		{name: "malformed json", body: `{"tone":`, code: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/config", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}

	saved, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeTrigger{})

	rec := do(t, srv, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["run_in_progress"])
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, &fakeTrigger{})

	rec := do(t, srv, http.MethodOptions, "/api/v1/config", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	srv, _ := newTestServer(t, &fakeTrigger{})

	rec := do(t, srv, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
