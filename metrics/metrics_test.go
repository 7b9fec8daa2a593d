package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, h http.Handler, path string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func newCollector(t *testing.T, cfg *Config) *StoreCollector {
	t.Helper()
	c, err := NewMetrics(cfg)
	require.NoError(t, err)
	return c
}

func TestNewMetrics_NilConfig(t *testing.T) {
	c, err := NewMetrics(nil)

	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestNewMetrics_Success(t *testing.T) {
	c, err := NewMetrics(&Config{Namespace: "test", Path: "/metrics"})

	require.NoError(t, err)
	assert.IsType(t, &StoreCollector{}, c)
	assert.NotNil(t, c.Registry())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/metrics", cfg.Path)
	assert.Equal(t, "rankstore", cfg.Namespace)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/metrics", newCollector(t, &Config{}).Path())
	assert.Equal(t, "/stats", newCollector(t, &Config{Path: "/stats"}).Path())
}

func TestStoreMetrics(t *testing.T) {
	c := newCollector(t, &Config{Namespace: "test"})

	c.RecordInsert(ResultOK, 3)
	c.RecordInsert(ResultOK, 4)
	c.RecordInsert(ResultDuplicate, 2)
	c.RecordLookup(ResultNotFound, 5)
	c.SetNodes(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.insertsTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.insertsTotal.WithLabelValues(ResultDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.lookupsTotal.WithLabelValues(ResultNotFound)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.nodes))

	body := scrape(t, c.Handler(), "/metrics")
	assert.Contains(t, body, `test_store_depth_count{op="insert"} 3`)
	assert.Contains(t, body, `test_store_depth_sum{op="insert"} 9`)
	assert.Contains(t, body, `test_store_depth_count{op="find"} 1`)
}

func TestRankMetrics(t *testing.T) {
	c := newCollector(t, &Config{Namespace: "test"})

	c.RecordRebuild("head", 100)
	c.RecordRebuild("read", 100)
	c.RecordRebuild("head", 10)
	c.RecordAdmissions(3)
	c.RecordAdmissions(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.rebuildsTotal.WithLabelValues("head")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rebuildsTotal.WithLabelValues("read")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.admissionsTotal))

	body := scrape(t, c.Handler(), "/metrics")
	assert.Contains(t, body, "test_rank_rebuild_visited_nodes_count 3")
}

func TestCommandMetrics(t *testing.T) {
	c := newCollector(t, &Config{Namespace: "test"})

	c.RecordCommand("I", ResultOK, time.Millisecond)
	c.RecordCommand("P", ResultNotFound, time.Microsecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("I", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("P", ResultNotFound)))
}

func TestNewServer(t *testing.T) {
	c := newCollector(t, &Config{Namespace: "test", Path: "/stats"})
	c.SetNodes(7)

	srv := NewServer(&Config{Addr: ":0"}, c)
	assert.Equal(t, ":0", srv.Addr)

	body := scrape(t, srv.Handler, "/stats")
	assert.Contains(t, body, "test_store_nodes 7")

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
