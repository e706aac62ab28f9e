package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// The handlers below are constructed with nil stores on purpose: every
// request in these tests must be rejected (or short-circuited) before a
// store is touched, and a nil dereference would fail the test loudly if
// that guarantee broke.
func newValidationOnlyAnalyticsHandlers() *AnalyticsHandlers {
	return NewAnalyticsHandlers(nil, nil, nil)
}

func performRequest(handler gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func TestTrackEventRejectsInvalidBody(t *testing.T) {
	h := newValidationOnlyAnalyticsHandlers()
	w := performRequest(h.TrackEvent, http.MethodPost, "/api/track", `{"not":"an array"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackEventRejectsInvalidSessionID(t *testing.T) {
	h := newValidationOnlyAnalyticsHandlers()
	body := `[{"sessionId":"not-a-uuid","eventType":"page_view"}]`
	w := performRequest(h.TrackEvent, http.MethodPost, "/api/track", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid session id")
}

func TestTrackEventEmptyBatchIsAccepted(t *testing.T) {
	h := newValidationOnlyAnalyticsHandlers()
	w := performRequest(h.TrackEvent, http.MethodPost, "/api/track", `[]`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrackEventSkipsEventsWithoutType(t *testing.T) {
	h := newValidationOnlyAnalyticsHandlers()
	// Every event lacks a type, so the whole batch drops out before any
	// insert; a store call would panic on the nil stores.
	body := `[{"sessionId":"c7f2a1fe-4a0b-4b55-9a48-6a2e8f2a3171"},{"sessionId":"c7f2a1fe-4a0b-4b55-9a48-6a2e8f2a3171"}]`
	w := performRequest(h.TrackEvent, http.MethodPost, "/api/track", body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetEventCountsRequiresInterval(t *testing.T) {
	h := newValidationOnlyAnalyticsHandlers()
	w := performRequest(h.GetEventCountsOverTime, http.MethodGet, "/api/stats/event-counts", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "interval")
}

func TestGetEventCountsRejectsBadTimestamps(t *testing.T) {
	h := newValidationOnlyAnalyticsHandlers()
	w := performRequest(h.GetEventCountsOverTime, http.MethodGet,
		"/api/stats/event-counts?interval=Day&start=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "RFC3339")
}

func TestGetAverageCustomEventParameterRequiresParams(t *testing.T) {
	h := newValidationOnlyAnalyticsHandlers()

	w := performRequest(h.GetAverageCustomEventParameter, http.MethodGet,
		"/api/stats/custom-parameter?paramName=revenue", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "eventType")

	w = performRequest(h.GetAverageCustomEventParameter, http.MethodGet,
		"/api/stats/custom-parameter?eventType=purchase", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "paramName")
}

func TestGetTopNPagePathsRejectsBadLimit(t *testing.T) {
	h := newValidationOnlyAnalyticsHandlers()

	for _, limit := range []string{"0", "-5", "ten"} {
		w := performRequest(h.GetTopNPagePaths, http.MethodGet, "/api/stats/top-paths?limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)
	}
}
