// Package config loads an Executor's init-time configuration from a JSON
// buffer (capacity, wait timeout, scheduling semantics, trigger choice).
// Parsed with buger/jsonparser's direct field-walking API rather than
// encoding/json, the same way rosgo's dynamic_message_json.go decodes
// wire JSON without building an intermediate map[string]interface{} —
// appropriate here too, since config.Load runs at executor init, the one
// place allocation is tolerated, and there's no reason to pull in
// reflection-based unmarshaling for four scalar fields.
package config

import (
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// ExecutorConfig is the subset of Executor state that's reasonable to
// externalize as config rather than set in code.
type ExecutorConfig struct {
	Capacity    int
	TimeoutNs   int64
	Semantics   string // "default" or "let"
	TriggerName string // "any", "all", "always", or "one"
}

// defaults mirror Executor's own construction defaults (New, scheduler.go).
func defaults() ExecutorConfig {
	return ExecutorConfig{
		Capacity:    1,
		TimeoutNs:   1e9,
		Semantics:   "default",
		TriggerName: "any",
	}
}

// Load parses buf as a JSON object with optional "capacity",
// "timeout_ns", "semantics", and "trigger" fields, filling in the
// executor's usual construction defaults for anything absent.
func Load(buf []byte) (*ExecutorConfig, error) {
	cfg := defaults()

	err := jsonparser.ObjectEach(buf, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		switch string(key) {
		case "capacity":
			n, err := jsonparser.ParseInt(value)
			if err != nil {
				return errors.Wrap(err, "config: capacity")
			}
			cfg.Capacity = int(n)

		case "timeout_ns":
			n, err := jsonparser.ParseInt(value)
			if err != nil {
				return errors.Wrap(err, "config: timeout_ns")
			}
			cfg.TimeoutNs = n

		case "semantics":
			if dataType != jsonparser.String {
				return errors.New("config: semantics must be a string")
			}
			cfg.Semantics = string(value)

		case "trigger":
			if dataType != jsonparser.String {
				return errors.New("config: trigger must be a string")
			}
			cfg.TriggerName = string(value)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "config: parse")
	}

	if cfg.Capacity <= 0 {
		return nil, errors.New("config: capacity must be positive")
	}
	return &cfg, nil
}
