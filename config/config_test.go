package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]byte(`{}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Capacity != 1 || cfg.TimeoutNs != 1e9 || cfg.Semantics != "default" || cfg.TriggerName != "any" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesFields(t *testing.T) {
	buf := []byte(`{"capacity": 4, "timeout_ns": 500000, "semantics": "let", "trigger": "all"}`)
	cfg, err := Load(buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Capacity != 4 {
		t.Fatalf("expected capacity=4, got %d", cfg.Capacity)
	}
	if cfg.TimeoutNs != 500000 {
		t.Fatalf("expected timeout_ns=500000, got %d", cfg.TimeoutNs)
	}
	if cfg.Semantics != "let" {
		t.Fatalf("expected semantics=let, got %q", cfg.Semantics)
	}
	if cfg.TriggerName != "all" {
		t.Fatalf("expected trigger=all, got %q", cfg.TriggerName)
	}
}

func TestLoadRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := Load([]byte(`{"capacity": 0}`)); err == nil {
		t.Fatalf("expected an error for capacity=0")
	}
	if _, err := Load([]byte(`{"capacity": -1}`)); err == nil {
		t.Fatalf("expected an error for a negative capacity")
	}
}

func TestLoadRejectsWrongFieldType(t *testing.T) {
	if _, err := Load([]byte(`{"semantics": 3}`)); err == nil {
		t.Fatalf("expected an error when semantics is not a string")
	}
	if _, err := Load([]byte(`{"capacity": "four"}`)); err == nil {
		t.Fatalf("expected an error when capacity cannot be parsed as an integer")
	}
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	cfg, err := Load([]byte(`{"capacity": 2, "unknown_field": "whatever"}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Capacity != 2 {
		t.Fatalf("expected capacity=2, got %d", cfg.Capacity)
	}
}
