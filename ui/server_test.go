package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"incosedss/app"
	"incosedss/internal"
	"incosedss/internal/config"
	"incosedss/internal/metrics"
	"incosedss/internal/session"
	"incosedss/internal/testkit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestServer(t *testing.T) (*client, *session.MemoryStore, *metrics.Metrics) {
	t.Helper()
	cfg := &config.Config{
		Upload: config.UploadConfig{MaxBytes: 1 << 20, MaxConcurrentParses: 2},
		Session: config.SessionConfig{
			TTL:        time.Hour,
			MaxEntries: 10,
			CookieName: "dss_session",
		},
		Report: config.DefaultReportConfig(),
	}
	m := metrics.New()
	store := session.NewMemoryStore(cfg.Session.TTL, cfg.Session.MaxEntries)
	svc := app.NewReportService(cfg, m, internal.NewLogger(internal.LogLevelError))

	srv, err := NewServer(cfg, svc, store)
	require.NoError(t, err)
	return &client{t: t, handler: srv.Handler()}, store, m
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return w
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) upload(name string, content []byte) *httptest.ResponseRecorder {
	c.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(c.t, err)
	_, err = part.Write(content)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func scenarioWorkbook(t *testing.T) []byte {
	t.Helper()
	data, err := testkit.WorkbookBytes(testkit.ScenarioHeaders, testkit.ScenarioRows())
	require.NoError(t, err)
	return data
}

func TestIndex_PromptsForUpload(t *testing.T) {
	c, _, _ := newTestServer(t)

	w := c.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<div class="alert alert-info">Please upload the INCOSE India survey Excel file to proceed.</div>`)
	assert.Contains(t, body, "INCOSE India – Survey Decision Support System")
	assert.NotContains(t, body, "<svg")
	require.Len(t, c.cookies, 1)
	assert.Equal(t, "dss_session", c.cookies[0].Name)
}

func TestUpload_RendersReport(t *testing.T) {
	c, store, _ := newTestServer(t)

	w := c.upload("survey.xlsx", scenarioWorkbook(t))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, 1, store.Len())

	w = c.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<div class="alert alert-success">Survey data loaded successfully</div>`)
	assert.Contains(t, body, `<span class="tile-value">12</span>`)
	assert.Contains(t, body, `<span class="tile-value">11</span>`)
	assert.Contains(t, body, `<span class="tile-value">4</span>`)
	assert.Equal(t, 3, strings.Count(body, "<svg"))
	assert.Contains(t, body, "What Members Expect from INCOSE (2026)")
	assert.Contains(t, body, `<option value="Healthcare">Healthcare</option>`)
	assert.NotContains(t, body, "<textarea")
}

func TestIndex_DomainFilter(t *testing.T) {
	c, _, _ := newTestServer(t)
	require.Equal(t, http.StatusSeeOther, c.upload("survey.xlsx", scenarioWorkbook(t)).Code)

	body := c.get("/?domain=Healthcare").Body.String()
	assert.Contains(t, body, `<span class="tile-value">5</span>`)
	assert.Contains(t, body, `<option value="Healthcare" selected>Healthcare</option>`)
}

func TestIndex_EmptyFilterWarns(t *testing.T) {
	c, _, _ := newTestServer(t)
	require.Equal(t, http.StatusSeeOther, c.upload("survey.xlsx", scenarioWorkbook(t)).Code)

	w := c.get("/?domain=Space")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "No responses available for the selected domain.")
	assert.Contains(t, body, "alert-warning")
	assert.Contains(t, body, "<select")
	assert.NotContains(t, body, "<svg")
	assert.NotContains(t, body, "Total Responses")
}

func TestIndex_ExecutiveSummary(t *testing.T) {
	c, _, _ := newTestServer(t)
	require.Equal(t, http.StatusSeeOther, c.upload("survey.xlsx", scenarioWorkbook(t)).Code)

	body := c.get("/?domain=All&summary=1").Body.String()
	assert.Contains(t, body, "<textarea")
	assert.Contains(t, body, "Healthcare")
	assert.Contains(t, body, "Certification guidance")
}

func TestUpload_Failures(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content []byte
		want    string
	}{
		{"unsupported extension", "notes.txt", []byte("hello"), "Only .xlsx and .csv files are supported"},
		{"corrupt workbook", "survey.xlsx", []byte("not a workbook"), "Failed to read the Excel file."},
		{"header only", "survey.csv", []byte("Domain,Member\n"), "The uploaded file contains no data."},
		{"missing columns", "survey.csv", []byte("Name,Age\nAsha,31\n"), "Required columns not found:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestServer(t)

			w := c.upload(tt.file, tt.content)
			require.Equal(t, http.StatusBadRequest, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, tt.want)
			assert.Equal(t, 1, strings.Count(body, `class="alert alert-error"`))
			assert.NotContains(t, body, "<svg")
		})
	}
}

func TestUpload_FailureClearsPreviousDataset(t *testing.T) {
	c, store, _ := newTestServer(t)
	require.Equal(t, http.StatusSeeOther, c.upload("survey.xlsx", scenarioWorkbook(t)).Code)
	require.Equal(t, 1, store.Len())

	require.Equal(t, http.StatusBadRequest, c.upload("survey.xlsx", []byte("garbage")).Code)
	assert.Equal(t, 0, store.Len())
	assert.Contains(t, c.get("/").Body.String(), "Please upload the INCOSE India survey Excel file to proceed.")
}

func TestReset(t *testing.T) {
	c, store, _ := newTestServer(t)
	require.Equal(t, http.StatusSeeOther, c.upload("survey.xlsx", scenarioWorkbook(t)).Code)

	w := c.do(httptest.NewRequest(http.MethodPost, "/reset", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 0, store.Len())
}

func TestStatic_ServesStylesheet(t *testing.T) {
	c, _, _ := newTestServer(t)

	w := c.get("/static/css/report.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".tiles")
}

func TestOpsRouter(t *testing.T) {
	m := metrics.New()
	store := session.NewMemoryStore(time.Hour, 10)
	store.Put(session.NewID(), session.Entry{FileName: "survey.xlsx"})
	ops := NewOpsRouter(m, store)

	w := httptest.NewRecorder()
	ops.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var health HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 1, health.Sessions)

	w = httptest.NewRecorder()
	ops.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dss_active_sessions")
}
