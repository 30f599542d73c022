package app

import (
	"path/filepath"
	"testing"
)

func TestBuildServiceDefaults(t *testing.T) {
	svc, closeFn, err := BuildService(Config{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestBuildServiceWithDatabase(t *testing.T) {
	cfg := Config{DBPath: filepath.Join(t.TempDir(), "attempts.db")}
	svc, closeFn, err := BuildService(cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
