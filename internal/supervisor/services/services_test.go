// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/ratingrec/internal/logging"
	"github.com/tomtom215/ratingrec/internal/recommend"
)

// mockHTTPServer is a test double for HTTPServer.
type mockHTTPServer struct {
	listenErr   error
	block       bool
	shutdownErr error

	listenCount   atomic.Int32
	shutdownCount atomic.Int32
	started       chan struct{}
	stopCh        chan struct{}
	stopOnce      sync.Once
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		started: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	m.listenCount.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}

	if m.listenErr != nil {
		return m.listenErr
	}
	if m.block {
		<-m.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdownCount.Add(1)
	m.stopOnce.Do(func() { close(m.stopCh) })
	return m.shutdownErr
}

var _ suture.Service = (*HTTPServerService)(nil)
var _ suture.Service = (*StatsReporter)(nil)
var _ HTTPServer = (*http.Server)(nil)

func TestNewHTTPServerService(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"explicit", 5 * time.Second, 5 * time.Second},
		{"zero uses default", 0, 10 * time.Second},
		{"negative uses default", -time.Second, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewHTTPServerService(newMockHTTPServer(), tt.timeout)
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
			if svc.String() != "http-server" {
				t.Errorf("String() = %q, want http-server", svc.String())
			}
		})
	}
}

func TestHTTPServerServiceServe(t *testing.T) {
	t.Run("shuts down on context cancellation", func(t *testing.T) {
		server := newMockHTTPServer()
		server.block = true
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		select {
		case <-server.started:
		case <-time.After(time.Second):
			t.Fatal("server did not start")
		}
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() error = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after cancellation")
		}
		if got := server.shutdownCount.Load(); got != 1 {
			t.Errorf("Shutdown calls = %d, want 1", got)
		}
	})

	t.Run("startup failure is returned", func(t *testing.T) {
		bindErr := errors.New("bind: address already in use")
		server := newMockHTTPServer()
		server.listenErr = bindErr

		err := NewHTTPServerService(server, time.Second).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("Serve() error = %v, want %v", err, bindErr)
		}
	})

	t.Run("shutdown failure is returned", func(t *testing.T) {
		shutdownErr := errors.New("shutdown timeout")
		server := newMockHTTPServer()
		server.block = true
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		<-server.started
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, shutdownErr) {
				t.Errorf("Serve() error = %v, want %v", err, shutdownErr)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
	})
}

func TestHTTPServerServiceUnderSupervisor(t *testing.T) {
	server := newMockHTTPServer()
	server.block = true

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-server.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}

	cancel()
	<-errCh

	if server.shutdownCount.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}

type fixedStats struct {
	mu    sync.Mutex
	stats recommend.Stats
}

func (f *fixedStats) Stats() recommend.Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

func (f *fixedStats) set(s recommend.Stats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats = s
}

func TestStatsReporterReport(t *testing.T) {
	var buf bytes.Buffer
	src := &fixedStats{}
	reporter := NewStatsReporter(src, time.Hour, logging.NewTestLogger(&buf))

	if reporter.report() {
		t.Error("report() with no traffic = true, want false")
	}

	src.set(recommend.Stats{Requests: 4, EmptyResults: 1, InvalidInputs: 1})
	if !reporter.report() {
		t.Fatal("report() after traffic = false, want true")
	}
	out := buf.String()
	for _, want := range []string{`"requests":4`, `"empty_results":1`, `"service":"stats-reporter"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %s missing %s", out, want)
		}
	}

	buf.Reset()
	src.set(recommend.Stats{Requests: 6, EmptyResults: 1, InvalidInputs: 1})
	reporter.report()
	if !strings.Contains(buf.String(), `"requests":2`) {
		t.Errorf("second report %s should carry the delta of 2 requests", buf.String())
	}

	if reporter.report() {
		t.Error("report() without new traffic = true, want false")
	}
}

func TestStatsReporterServe(t *testing.T) {
	src := &fixedStats{}
	src.set(recommend.Stats{Requests: 1})
	reporter := NewStatsReporter(src, 5*time.Millisecond, logging.NewTestLogger(&bytes.Buffer{}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := reporter.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want DeadlineExceeded", err)
	}
	if reporter.last.Requests != 1 {
		t.Errorf("last.Requests = %d, want 1", reporter.last.Requests)
	}
}

func TestNewStatsReporterDefaultInterval(t *testing.T) {
	reporter := NewStatsReporter(&fixedStats{}, 0, logging.NewTestLogger(&bytes.Buffer{}))
	if reporter.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", reporter.interval)
	}
	if reporter.String() != "stats-reporter" {
		t.Errorf("String() = %q", reporter.String())
	}
}
