package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddlewareCountsRequests(t *testing.T) {
	h := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/teapot", "418"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/teapot", "418")))
}

func TestRecordHelpers(t *testing.T) {
	beforeInq := testutil.ToFloat64(inquiriesTotal.WithLabelValues("general"))
	RecordInquiry("general")
	assert.Equal(t, beforeInq+1, testutil.ToFloat64(inquiriesTotal.WithLabelValues("general")))

	beforeNotif := testutil.ToFloat64(notificationsTotal.WithLabelValues("investor", "failed"))
	RecordNotification("investor", "failed")
	assert.Equal(t, beforeNotif+1, testutil.ToFloat64(notificationsTotal.WithLabelValues("investor", "failed")))

	beforeErr := testutil.ToFloat64(dbQueriesTotal.WithLabelValues("memory", "save_general_inquiry", "error"))
	RecordDBQuery("memory", "save_general_inquiry", time.Millisecond, errors.New("down"))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(dbQueriesTotal.WithLabelValues("memory", "save_general_inquiry", "error")))

	UpdateDBConnections(3, 2)
	assert.Equal(t, 3.0, testutil.ToFloat64(dbConnectionsActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(dbConnectionsIdle))
}
