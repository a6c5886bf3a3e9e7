package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	config := DefaultConfig(handler)
	config.Address = "127.0.0.1:0"

	srv, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return srv
}

func TestGracefulShutdownRunsHooks(t *testing.T) {
	srv := newTestServer(t)
	gs := NewGracefulShutdown(srv, &ShutdownConfig{
		Timeout: 2 * time.Second,
		Logger:  zap.NewNop(),
	})

	var hooksRun []int
	gs.RegisterHook(func(ctx context.Context) error {
		hooksRun = append(hooksRun, 1)
		return nil
	})
	gs.RegisterHook(func(ctx context.Context) error {
		hooksRun = append(hooksRun, 2)
		return errors.New("hook failure")
	})
	gs.RegisterHook(func(ctx context.Context) error {
		hooksRun = append(hooksRun, 3)
		return nil
	})

	go srv.Start()
	time.Sleep(20 * time.Millisecond)

	if err := gs.Shutdown(); err != nil {
		t.Errorf("shutdown error: %v", err)
	}

	// A failing hook must not stop the ones after it.
	if len(hooksRun) != 3 {
		t.Errorf("hooks run = %v, want all three", hooksRun)
	}
}

func TestGracefulShutdownIdempotent(t *testing.T) {
	srv := newTestServer(t)
	gs := NewGracefulShutdown(srv, nil)

	var hookCalls int
	gs.RegisterHook(func(ctx context.Context) error {
		hookCalls++
		return nil
	})

	go srv.Start()
	time.Sleep(20 * time.Millisecond)

	if err := gs.Shutdown(); err != nil {
		t.Errorf("first shutdown error: %v", err)
	}
	if err := gs.Shutdown(); err != nil {
		t.Errorf("second shutdown error: %v", err)
	}

	if hookCalls != 1 {
		t.Errorf("hook calls = %d, want 1", hookCalls)
	}
}

func TestGracefulShutdownWait(t *testing.T) {
	srv := newTestServer(t)
	gs := NewGracefulShutdown(srv, nil)

	go srv.Start()
	time.Sleep(20 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- gs.Wait()
	}()

	if err := gs.Shutdown(); err != nil {
		t.Errorf("shutdown error: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Wait returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Wait did not return after shutdown")
	}
}
