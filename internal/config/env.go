package config

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "CROSSPLAY_"

// LookupFunc reads one environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// envMapping maps environment variables to setting paths.
var envMapping = map[string]string{
	EnvPrefix + "KEYBIND":               "input.keybind",
	EnvPrefix + "SYNC_TYPING":           "input.sync_typing",
	EnvPrefix + "THROTTLE_INTERVAL":     "input.throttle_interval",
	EnvPrefix + "REBUS_CAP":             "input.rebus_cap",
	EnvPrefix + "MAX_SCAN_STEPS":        "input.max_scan_steps",
	EnvPrefix + "ADVANCE_TO_NEXT_CLUE":  "input.advance_to_next_clue",
	EnvPrefix + "RETRY_UNMATCHED_CHORD": "input.retry_unmatched_chord",
	EnvPrefix + "EDIT_MODE":             "input.edit_mode",
	EnvPrefix + "LOG_LEVEL":             "logging.level",
}

// EnvVars returns the recognized environment variables, sorted.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv overrides s with any set environment variables. Empty values
// are treated as set. A nil lookup does nothing.
func ApplyEnv(s *Settings, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	for _, name := range EnvVars() {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.set(envMapping[name], val); err != nil {
			return err
		}
	}
	return nil
}

// set assigns a string value to the setting at path.
func (s *Settings) set(path, val string) error {
	val = strings.TrimSpace(val)
	switch path {
	case "input.keybind":
		s.Input.Keybind = val
	case "logging.level":
		s.Logging.Level = val
	case "input.throttle_interval":
		d, err := time.ParseDuration(val)
		if err != nil {
			return &ValidationError{Path: path, Message: "not a duration", Value: val}
		}
		s.Input.ThrottleInterval = Duration(d)
	case "input.rebus_cap", "input.max_scan_steps":
		n, err := strconv.Atoi(val)
		if err != nil {
			return &ValidationError{Path: path, Message: "not an integer", Value: val}
		}
		if path == "input.rebus_cap" {
			s.Input.RebusCap = n
		} else {
			s.Input.MaxScanSteps = n
		}
	default:
		b, ok := parseBool(val)
		if !ok {
			return &ValidationError{Path: path, Message: "not a boolean", Value: val}
		}
		switch path {
		case "input.sync_typing":
			s.Input.SyncTyping = b
		case "input.advance_to_next_clue":
			s.Input.AdvanceToNextClue = b
		case "input.retry_unmatched_chord":
			s.Input.RetryUnmatchedChord = b
		case "input.edit_mode":
			s.Input.EditMode = b
		}
	}
	return nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}
