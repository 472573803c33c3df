package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTx_CountsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(txTotal.WithLabelValues("test.op", OutcomeRollback))

	ObserveTx("test.op", OutcomeRollback, 3*time.Millisecond)
	ObserveTx("test.op", OutcomeRollback, time.Millisecond)

	after := testutil.ToFloat64(txTotal.WithLabelValues("test.op", OutcomeRollback))
	assert.Equal(t, before+2, after)
}

func TestObserveHTTP_EmptyRouteIsBucketed(t *testing.T) {
	ObserveHTTP("get", "", http.StatusNotFound, time.Millisecond)

	got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", unmatchedRouteName, "404"))
	assert.GreaterOrEqual(t, got, 1.0)
}

func TestRequestStarted_Balances(t *testing.T) {
	before := testutil.ToFloat64(httpInFlight)
	done := RequestStarted()
	assert.Equal(t, before+1, testutil.ToFloat64(httpInFlight))
	done()
	assert.Equal(t, before, testutil.ToFloat64(httpInFlight))
}

func TestHandler_ExposesTxCounter(t *testing.T) {
	ObserveTx("user.create", OutcomeCommit, time.Millisecond)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `habitrack_tx_total{operation="user.create",outcome="commit"}`))
}
