package input

import (
	"fmt"
	"time"

	"github.com/dshills/crossplay/internal/input/mode"
	"github.com/dshills/crossplay/internal/input/nav"
	"github.com/dshills/crossplay/internal/input/queue"
)

// DefaultRebusCap is how many characters of an existing rebus are kept
// before a new letter is appended.
const DefaultRebusCap = 10

// Config configures an Engine.
type Config struct {
	// Keybind selects standard or vim key handling.
	Keybind mode.Keybind

	// SyncTyping commits typed letters inline instead of through the
	// throttled queue.
	SyncTyping bool

	// ThrottleInterval is the minimum spacing between two letter commits.
	// Default: 30ms
	ThrottleInterval time.Duration

	// RebusCap bounds the existing value kept when appending to a rebus.
	RebusCap int

	// MaxScanSteps bounds every navigation scan.
	MaxScanSteps int

	// AdvanceToNextClue jumps to the next clue after typing into the last
	// cell of a filled run.
	AdvanceToNextClue bool

	// RetryUnmatchedChord re-feeds a key that broke a pending chord from
	// the root of the command trie.
	RetryUnmatchedChord bool

	// Bindings overrides the default NORMAL-mode command bindings. Keys
	// are space-separated key sequences; an empty action removes a binding.
	Bindings map[string]string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Keybind:          mode.Standard,
		ThrottleInterval: queue.DefaultInterval,
		RebusCap:         DefaultRebusCap,
		MaxScanSteps:     nav.DefaultMaxSteps,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Keybind != mode.Standard && c.Keybind != mode.Vim:
		return fmt.Errorf("keybind %d: %w", c.Keybind, mode.ErrUnknownKeybind)
	case c.ThrottleInterval < 0:
		return fmt.Errorf("throttle interval %v must not be negative", c.ThrottleInterval)
	case c.RebusCap <= 0:
		return fmt.Errorf("rebus cap %d must be positive", c.RebusCap)
	case c.MaxScanSteps <= 0:
		return fmt.Errorf("max scan steps %d must be positive", c.MaxScanSteps)
	}
	return nil
}

// queueMode maps SyncTyping to a queue mode.
func (c Config) queueMode() queue.Mode {
	if c.SyncTyping {
		return queue.Sync
	}
	return queue.Throttled
}

// rebusCap returns RebusCap, falling back to the default.
func (c Config) rebusCap() int {
	if c.RebusCap <= 0 {
		return DefaultRebusCap
	}
	return c.RebusCap
}
