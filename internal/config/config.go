package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/crossplay/internal/input"
	"github.com/dshills/crossplay/internal/input/mode"
	"github.com/dshills/crossplay/internal/logging"
)

// Settings is the full crossplay configuration.
type Settings struct {
	Input   InputSettings   `toml:"input"`
	Logging LoggingSettings `toml:"logging"`
}

// InputSettings configures the input engine and the host's edit flag.
type InputSettings struct {
	Keybind             string            `toml:"keybind"`
	SyncTyping          bool              `toml:"sync_typing"`
	ThrottleInterval    Duration          `toml:"throttle_interval"`
	RebusCap            int               `toml:"rebus_cap"`
	MaxScanSteps        int               `toml:"max_scan_steps"`
	AdvanceToNextClue   bool              `toml:"advance_to_next_clue"`
	RetryUnmatchedChord bool              `toml:"retry_unmatched_chord"`
	EditMode            bool              `toml:"edit_mode"`
	Bindings            map[string]string `toml:"bindings,omitempty"`
}

// LoggingSettings configures the logger.
type LoggingSettings struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("30ms").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Default returns the built-in settings.
func Default() Settings {
	in := input.DefaultConfig()
	return Settings{
		Input: InputSettings{
			Keybind:          in.Keybind.String(),
			SyncTyping:       in.SyncTyping,
			ThrottleInterval: Duration(in.ThrottleInterval),
			RebusCap:         in.RebusCap,
			MaxScanSteps:     in.MaxScanSteps,
		},
		Logging: LoggingSettings{Level: "info"},
	}
}

// Validate checks every setting and returns all problems joined.
func (s Settings) Validate() error {
	var errs []error
	if _, err := mode.ParseKeybind(s.Input.Keybind); err != nil {
		errs = append(errs, &ValidationError{Path: "input.keybind", Message: "must be standard or vim", Value: s.Input.Keybind})
	}
	if s.Input.ThrottleInterval <= 0 {
		errs = append(errs, &ValidationError{Path: "input.throttle_interval", Message: "must be positive", Value: s.Input.ThrottleInterval.Std()})
	}
	if s.Input.RebusCap <= 0 {
		errs = append(errs, &ValidationError{Path: "input.rebus_cap", Message: "must be positive", Value: s.Input.RebusCap})
	}
	if s.Input.MaxScanSteps <= 0 {
		errs = append(errs, &ValidationError{Path: "input.max_scan_steps", Message: "must be positive", Value: s.Input.MaxScanSteps})
	}

	keys := make([]string, 0, len(s.Input.Bindings))
	for k := range s.Input.Bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		action := s.Input.Bindings[k]
		if action != "" && !input.IsAction(action) {
			errs = append(errs, &ValidationError{Path: "input.bindings." + k, Message: "unknown action", Value: action})
		}
	}

	if !slices.Contains(logLevels, strings.ToLower(strings.TrimSpace(s.Logging.Level))) {
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "must be one of " + strings.Join(logLevels, ", "), Value: s.Logging.Level})
	}
	return errors.Join(errs...)
}

// InputConfig converts the input section to an engine configuration.
// Call Validate first; an invalid keybind falls back to standard.
func (s Settings) InputConfig() input.Config {
	kb, _ := mode.ParseKeybind(s.Input.Keybind)
	var bindings map[string]string
	if len(s.Input.Bindings) > 0 {
		bindings = make(map[string]string, len(s.Input.Bindings))
		for k, v := range s.Input.Bindings {
			bindings[k] = v
		}
	}
	return input.Config{
		Keybind:             kb,
		SyncTyping:          s.Input.SyncTyping,
		ThrottleInterval:    s.Input.ThrottleInterval.Std(),
		RebusCap:            s.Input.RebusCap,
		MaxScanSteps:        s.Input.MaxScanSteps,
		AdvanceToNextClue:   s.Input.AdvanceToNextClue,
		RetryUnmatchedChord: s.Input.RetryUnmatchedChord,
		Bindings:            bindings,
	}
}

// LogLevel returns the configured logging level.
func (s Settings) LogLevel() logging.Level {
	return logging.ParseLevel(s.Logging.Level)
}

// Decode reads TOML settings from r on top of the defaults. source names
// the input in errors.
func Decode(r io.Reader, source string) (Settings, error) {
	s := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Settings{}, newParseError(source, err)
	}
	return s, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decErr):
		pe.Line, pe.Column = decErr.Position()
	case errors.As(err, &strictErr) && len(strictErr.Errors) > 0:
		first := strictErr.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown setting " + strings.Join(first.Key(), ".")
	}
	return pe
}

// LoadFile reads settings from path. A missing file yields the defaults.
func LoadFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, path)
}

// Load reads path, applies CROSSPLAY_* environment overrides and validates
// the result. An empty path skips the file.
func Load(path string) (Settings, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup LookupFunc) (Settings, error) {
	s := Default()
	if path != "" {
		var err error
		if s, err = LoadFile(path); err != nil {
			return Settings{}, err
		}
	}
	if err := ApplyEnv(&s, lookup); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Encode writes s as TOML.
func (s Settings) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(s)
}
