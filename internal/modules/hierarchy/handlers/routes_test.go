package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/coherence/internal/clients/synthetic"
	"github.com/aristath/coherence/internal/config"
	"github.com/aristath/coherence/internal/modules/coherence"
	"github.com/aristath/coherence/internal/modules/hierarchy"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	universe := config.DefaultUniverse()
	source := synthetic.New(nil, zerolog.Nop())
	analyzer := coherence.NewAnalyzer(1.0, universe.Bands, zerolog.Nop())
	service := hierarchy.NewService(universe, source, analyzer, 128, zerolog.Nop())

	r := chi.NewRouter()
	NewHandler(service, zerolog.Nop()).RegisterRoutes(r)
	return r
}

func TestCoherenceReportEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/coherence/report", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report hierarchy.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.NotEmpty(t, report.ReportID)
	assert.NotEmpty(t, report.Timestamp)
	assert.NotEmpty(t, report.Levels.Macro)
	assert.NotEmpty(t, report.Levels.Meso)
	assert.NotEmpty(t, report.Levels.Micro)
	assert.NotEmpty(t, report.FaradayResonance)
}

func TestCoherenceReportEndpoint_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/coherence/report", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
