package http

import (
	"context"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected 30s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestNewServer_Addr(t *testing.T) {
	server := NewServer(Config{Host: "127.0.0.1", Port: 9090}, Services{}, nil, nil, nil)

	if server.Addr() != "127.0.0.1:9090" {
		t.Errorf("expected 127.0.0.1:9090, got %s", server.Addr())
	}
	if server.shutdownTimeout != 30*time.Second {
		t.Errorf("expected default shutdown timeout, got %v", server.shutdownTimeout)
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	server := NewServer(Config{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second}, Services{}, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
