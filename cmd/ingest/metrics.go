package main

import (
	"log"

	"listingsetl/internal/metrics"
	"listingsetl/internal/metrics/datadog"
	"listingsetl/internal/metrics/prompush"
)

type metricsSettings struct {
	Backend        string
	PushgatewayURL string
	DatadogAddr    string
	Job            string
	Verbose        bool
}

// Constructors used to introduce test seams.
var (
	newPushBackend = func(job, url string) (metrics.Backend, error) {
		return prompush.NewBackend(job, url, nil)
	}
	newDatadogBackend = func(addr, job string) (metrics.Backend, error) {
		return datadog.NewBackend(datadog.Config{
			Addr:       addr,
			Namespace:  "listings.",
			GlobalTags: []string{"job:" + job},
		})
	}
	setBackend = metrics.SetBackend
)

// setupMetrics installs the configured backend and returns a func that
// flushes it. Backend failures only disable metrics; a run never fails on
// them.
func setupMetrics(s metricsSettings) (flush func()) {
	noop := func() {}

	var (
		b   metrics.Backend
		err error
	)
	switch s.Backend {
	case "pushgateway":
		b, err = newPushBackend(s.Job, s.PushgatewayURL)
		if err == nil {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", s.PushgatewayURL, s.Backend, s.Job)
		}

	case "datadog":
		b, err = newDatadogBackend(s.DatadogAddr, s.Job)
		if err == nil {
			log.Printf("metrics: addr=%v, backend=%v, job_name=%v", s.DatadogAddr, s.Backend, s.Job)
		}

	case "", "none":
		// metrics disabled; nop backend remains
		if s.Verbose {
			log.Printf("metrics: disabled (backend=%q)", s.Backend)
		}
		return noop

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", s.Backend)
		return noop
	}

	if err != nil {
		log.Printf("metrics: failed to init %s backend: %v; using nop", s.Backend, err)
		return noop
	}
	setBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}
