package prompush

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"listingsetl/internal/metrics"
)

func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{name: "missing gateway URL", jobName: "x", wantErr: true},
		{name: "default job name", gatewayURL: "http://pushgateway:9091", wantJobName: "listings"},
		{name: "explicit job name", jobName: "nyc", gatewayURL: "http://pushgateway:9091", wantJobName: "nyc"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL, nil)
			if tt.wantErr {
				if err == nil || b != nil {
					t.Fatalf("NewBackend = %v, %v; want nil, error", b, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend: %v", err)
			}
			if b.jobName != tt.wantJobName {
				t.Fatalf("jobName = %q, want %q", b.jobName, tt.wantJobName)
			}
		})
	}
}

func TestIncCounterAndObserve(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("listings", "http://unused", nil)
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": metrics.StepAdmit, "status": "success"})
	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": metrics.StepAdmit, "status": "success"})
	b.IncCounter(metrics.RowsTotal, 7, metrics.Labels{"kind": metrics.RowsRejected})
	b.IncCounter(metrics.BatchesTotal, 3, nil)
	b.IncCounter("unknown_metric", 100, nil)
	b.ObserveHistogram(metrics.StepDuration, 0.25, metrics.Labels{"step": metrics.StepAdmit, "status": "success"})
	b.ObserveHistogram("unknown_metric", 1, nil)

	if got := testutil.ToFloat64(b.stepCounter.WithLabelValues(metrics.StepAdmit, "success")); got != 2 {
		t.Errorf("step counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(b.rowCounter.WithLabelValues(metrics.RowsRejected)); got != 7 {
		t.Errorf("row counter = %v, want 7", got)
	}
	if got := testutil.ToFloat64(b.batchCounter); got != 3 {
		t.Errorf("batch counter = %v, want 3", got)
	}
	if n := testutil.CollectAndCount(b.stepDuration); n != 1 {
		t.Errorf("summary series = %d, want 1", n)
	}
}

func TestFlush_PushesToGateway(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		path.Store(r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b, err := NewBackend("listings", srv.URL, map[string]string{"run": "abc"})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	b.IncCounter(metrics.RowsTotal, 1, metrics.Labels{"kind": metrics.RowsRaw})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("gateway hits = %d, want 1", hits.Load())
	}
	p, _ := path.Load().(string)
	if !strings.Contains(p, "/job/listings") || !strings.Contains(p, "/run/abc") {
		t.Fatalf("push path = %q", p)
	}
}

func TestFlush_GatewayError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	b, err := NewBackend("listings", srv.URL, nil)
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if err := b.Flush(); err == nil {
		t.Fatal("Flush error = nil, want non-nil")
	}
}
