package main

import (
	"testing"

	"github.com/napolitain/microciv/internal/config"
	"github.com/napolitain/microciv/internal/service"
)

func TestNewServerRegistersGameService(t *testing.T) {
	s, err := newServer(config.Default(), service.DefaultRateLimit, service.DefaultRateBurst)
	if err != nil {
		t.Fatalf("newServer() error: %v", err)
	}
	defer s.Stop()

	info, ok := s.GetServiceInfo()[service.ServiceName]
	if !ok {
		t.Fatalf("%s not registered", service.ServiceName)
	}
	if len(info.Methods) != 10 {
		t.Errorf("methods = %d, want 10", len(info.Methods))
	}
}

func TestNewServerRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain = "swamp"
	if _, err := newServer(cfg, service.DefaultRateLimit, service.DefaultRateBurst); err == nil {
		t.Error("expected error for unknown terrain")
	}
}
