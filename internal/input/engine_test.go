package input

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/crossplay/internal/grid"
	"github.com/dshills/crossplay/internal/input/key"
	"github.com/dshills/crossplay/internal/input/mode"
)

// fakeHost is a Host over a real grid that records what the engine asked
// for.
type fakeHost struct {
	g        *grid.Grid
	sel      grid.Position
	dir      grid.Direction
	clues    grid.Clues
	editMode bool
	frozen   bool

	// lockDirection makes CanSetDirection refuse every change.
	lockDirection bool

	vimMode mode.VimMode
	cmdline string
	updates int

	enter, period, escape int
}

func newFakeHost(rows ...string) *fakeHost {
	cells := make([][]grid.Cell, len(rows))
	for r, row := range rows {
		for _, ch := range row {
			switch ch {
			case '#':
				cells[r] = append(cells[r], grid.Cell{Black: true})
			case '_':
				cells[r] = append(cells[r], grid.Cell{})
			default:
				cells[r] = append(cells[r], grid.Cell{Value: string(ch)})
			}
		}
	}
	return &fakeHost{g: grid.MustNew(cells), dir: grid.Across}
}

func (h *fakeHost) Geometry() grid.Geometry            { return h.g }
func (h *fakeHost) Selected() grid.Position            { return h.sel }
func (h *fakeHost) Direction() grid.Direction          { return h.dir }
func (h *fakeHost) Clues() grid.Clues                  { return h.clues }
func (h *fakeHost) EditMode() bool                     { return h.editMode }
func (h *fakeHost) Frozen() bool                       { return h.frozen }
func (h *fakeHost) SetSelected(p grid.Position)        { h.sel = p }
func (h *fakeHost) SetDirection(d grid.Direction)      { h.dir = d }
func (h *fakeHost) CanSetDirection(grid.Direction) bool { return !h.lockDirection }
func (h *fakeHost) SetVimMode(m mode.VimMode)          { h.vimMode = m }
func (h *fakeHost) SetCmdline(text string)             { h.cmdline = text }
func (h *fakeHost) OnPressEnter()                      { h.enter++ }
func (h *fakeHost) OnPressPeriod()                     { h.period++ }
func (h *fakeHost) OnPressEscape()                     { h.escape++ }

func (h *fakeHost) UpdateGrid(r, c int, value string) {
	h.updates++
	h.g.Set(r, c, value)
}

func (h *fakeHost) value(r, c int) string {
	return h.g.Cell(r, c).Value
}

func pos(r, c int) grid.Position {
	return grid.Position{R: r, C: c}
}

// newEngine starts a sync-typing engine; configure may adjust the config.
func newEngine(t *testing.T, h Host, configure func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.SyncTyping = true
	if configure != nil {
		configure(&cfg)
	}
	e, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func vim(cfg *Config) {
	cfg.Keybind = mode.Vim
}

// press sends keys without modifiers and fails if one is not handled.
func press(t *testing.T, e *Engine, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if !e.HandleKeyEvent(k, false, false, false) {
			t.Fatalf("key %q not handled", k)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(nil, DefaultConfig()); !errors.Is(err, ErrNoHost) {
		t.Errorf("New(nil) error = %v, want ErrNoHost", err)
	}

	cfg := DefaultConfig()
	cfg.RebusCap = 0
	if _, err := New(newFakeHost("__"), cfg); err == nil {
		t.Error("New with zero rebus cap should fail")
	}

	cfg = DefaultConfig()
	cfg.Bindings = map[string]string{"z": "explode"}
	if _, err := New(newFakeHost("__"), cfg); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("New with unknown bound action error = %v, want ErrUnknownAction", err)
	}
}

func TestStandardTyping(t *testing.T) {
	h := newFakeHost("___", "___")
	e := newEngine(t, h, nil)

	press(t, e, "a", "b")

	if got := h.value(0, 0) + h.value(0, 1); got != "AB" {
		t.Errorf("row 0 = %q, want AB", got)
	}
	if h.sel != pos(0, 2) {
		t.Errorf("selection = %v, want (0,2)", h.sel)
	}
}

func TestTypingSkipsFilledCells(t *testing.T) {
	h := newFakeHost("_X_")
	e := newEngine(t, h, nil)

	press(t, e, "q")
	if h.value(0, 0) != "Q" || h.sel != pos(0, 2) {
		t.Errorf("value %q selection %v; want Q at (0,0), cursor (0,2)", h.value(0, 0), h.sel)
	}

	// End of a full run: the cursor stays.
	press(t, e, "z")
	if h.value(0, 2) != "Z" || h.sel != pos(0, 2) {
		t.Errorf("value %q selection %v; want Z, cursor (0,2)", h.value(0, 2), h.sel)
	}
}

func TestAdvanceToNextClue(t *testing.T) {
	h := newFakeHost("__", "__")
	h.sel = pos(0, 1)
	e := newEngine(t, h, func(cfg *Config) { cfg.AdvanceToNextClue = true })

	press(t, e, "a")
	if h.value(0, 1) != "A" {
		t.Errorf("value = %q, want A", h.value(0, 1))
	}
	if h.sel != pos(1, 0) || h.dir != grid.Across {
		t.Errorf("selection %v %v, want (1,0) across", h.sel, h.dir)
	}
}

func TestForwardSkipsBlackSquare(t *testing.T) {
	h := newFakeHost("_#_")
	e := newEngine(t, h, nil)

	press(t, e, "]")
	if h.sel != pos(0, 2) {
		t.Errorf("selection = %v, want (0,2)", h.sel)
	}
	press(t, e, "[")
	if h.sel != pos(0, 0) {
		t.Errorf("selection = %v, want (0,0)", h.sel)
	}
}

func TestRebusTrigger(t *testing.T) {
	h := newFakeHost("___")
	e := newEngine(t, h, nil)

	press(t, e, "/", "a", "b")
	if got := h.value(0, 0); got != "AB" {
		t.Errorf("rebus value = %q, want AB", got)
	}
	if h.sel != pos(0, 0) {
		t.Errorf("selection moved during rebus entry: %v", h.sel)
	}

	press(t, e, "/")
	if h.sel != pos(0, 1) {
		t.Errorf("selection after rebus end = %v, want (0,1)", h.sel)
	}

	press(t, e, "c")
	if h.value(0, 1) != "C" {
		t.Errorf("letter after rebus = %q, want C", h.value(0, 1))
	}
}

func TestRebusEndsOnNavigation(t *testing.T) {
	h := newFakeHost("___")
	e := newEngine(t, h, nil)

	press(t, e, "/", "a", key.ArrowRight, "b")
	if h.value(0, 0) != "A" || h.value(0, 1) != "B" {
		t.Errorf("cells = %q %q, want A B", h.value(0, 0), h.value(0, 1))
	}
}

func TestRebusCap(t *testing.T) {
	h := newFakeHost("___")
	e := newEngine(t, h, nil)

	press(t, e, "/")
	letters := strings.Split("abcdefghijk", "")
	press(t, e, letters...)
	if got := h.value(0, 0); got != "ABCDEFGHIJK" {
		t.Errorf("after 11 letters = %q, want ABCDEFGHIJK", got)
	}

	press(t, e, "l")
	if got := h.value(0, 0); got != "ABCDEFGHIJL" {
		t.Errorf("after 12 letters = %q, want ABCDEFGHIJL", got)
	}
}

func TestShiftLetterIsRebus(t *testing.T) {
	h := newFakeHost("X__")
	e := newEngine(t, h, nil)

	if !e.HandleKeyEvent("b", true, false, false) {
		t.Fatal("shift+b not handled")
	}
	if h.value(0, 0) != "XB" || h.sel != pos(0, 0) {
		t.Errorf("value %q selection %v; want XB at (0,0)", h.value(0, 0), h.sel)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name  string
		value string
		good  bool
		want  string
	}{
		{"filled", "A", false, ""},
		{"good", "A", true, "A"},
		{"empty", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFakeHost("__")
			h.g.Set(0, 1, tt.value)
			h.g.SetGood(0, 1, tt.good)
			h.sel = pos(0, 1)
			e := newEngine(t, h, nil)

			press(t, e, key.Delete)
			if got := h.value(0, 1); got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
			if h.sel != pos(0, 1) {
				t.Errorf("delete moved the selection to %v", h.sel)
			}
		})
	}
}

func TestDeleteGoodCellWritesNothing(t *testing.T) {
	h := newFakeHost("A_")
	h.g.SetGood(0, 0, true)
	e := newEngine(t, h, nil)

	press(t, e, key.Delete)
	if h.updates != 0 {
		t.Errorf("UpdateGrid called %d times, want 0", h.updates)
	}
}

func TestBackspace(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		good    *grid.Position
		from    grid.Position
		dir     grid.Direction
		shift   bool
		wantSel grid.Position
		cell    grid.Position
		want    string
	}{
		{
			name: "clears filled cell in place",
			rows: []string{"AB"}, from: pos(0, 1), dir: grid.Across,
			wantSel: pos(0, 1), cell: pos(0, 1), want: "",
		},
		{
			name: "empty cell steps back and clears",
			rows: []string{"A_"}, from: pos(0, 1), dir: grid.Across,
			wantSel: pos(0, 0), cell: pos(0, 0), want: "",
		},
		{
			name: "shift stays",
			rows: []string{"A_"}, from: pos(0, 1), dir: grid.Across, shift: true,
			wantSel: pos(0, 1), cell: pos(0, 0), want: "A",
		},
		{
			name: "wraps to previous row",
			rows: []string{"_Z", "__"}, from: pos(1, 0), dir: grid.Across,
			wantSel: pos(0, 1), cell: pos(0, 1), want: "",
		},
		{
			name: "wraps to previous column",
			rows: []string{"__", "Z_"}, from: pos(0, 1), dir: grid.Down,
			wantSel: pos(1, 0), cell: pos(1, 0), want: "",
		},
		{
			name: "previous good cell is kept",
			rows: []string{"A_"}, good: &grid.Position{}, from: pos(0, 1), dir: grid.Across,
			wantSel: pos(0, 0), cell: pos(0, 0), want: "A",
		},
		{
			name: "good cell reached by wrapping is kept",
			rows: []string{"_Z", "__"}, good: &grid.Position{R: 0, C: 1}, from: pos(1, 0), dir: grid.Across,
			wantSel: pos(0, 1), cell: pos(0, 1), want: "Z",
		},
		{
			name: "first cell stays",
			rows: []string{"__"}, from: pos(0, 0), dir: grid.Across,
			wantSel: pos(0, 0), cell: pos(0, 0), want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFakeHost(tt.rows...)
			if tt.good != nil {
				h.g.SetGood(tt.good.R, tt.good.C, true)
			}
			h.sel, h.dir = tt.from, tt.dir
			e := newEngine(t, h, nil)

			if !e.HandleKeyEvent(key.Backspace, tt.shift, false, false) {
				t.Fatal("backspace not handled")
			}
			if h.sel != tt.wantSel {
				t.Errorf("selection = %v, want %v", h.sel, tt.wantSel)
			}
			if got := h.value(tt.cell.R, tt.cell.C); got != tt.want {
				t.Errorf("cell %v = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestVirtualDeleteIsBackspace(t *testing.T) {
	h := newFakeHost("AB")
	h.sel = pos(0, 1)
	e := newEngine(t, h, nil)

	press(t, e, key.VirtualDelete)
	if h.value(0, 1) != "" {
		t.Errorf("value = %q, want empty", h.value(0, 1))
	}
}

func TestArrowReorientsThenMoves(t *testing.T) {
	h := newFakeHost("__", "__")
	e := newEngine(t, h, nil)

	press(t, e, key.ArrowDown)
	if h.dir != grid.Down || h.sel != pos(0, 0) {
		t.Fatalf("first ArrowDown: %v %v, want down at (0,0)", h.dir, h.sel)
	}
	press(t, e, key.ArrowDown)
	if h.sel != pos(1, 0) {
		t.Errorf("second ArrowDown: selection %v, want (1,0)", h.sel)
	}
	press(t, e, key.ArrowDown)
	if h.sel != pos(1, 0) {
		t.Errorf("ArrowDown at the edge moved to %v", h.sel)
	}

	h.lockDirection = true
	press(t, e, key.ArrowRight)
	if h.dir != grid.Down || h.sel != pos(1, 1) {
		t.Errorf("locked ArrowRight: %v %v, want down at (1,1)", h.dir, h.sel)
	}
}

func TestArrowSkipsBlackUnlessEditing(t *testing.T) {
	h := newFakeHost("_#_")
	e := newEngine(t, h, nil)

	press(t, e, key.ArrowRight)
	if h.sel != pos(0, 2) {
		t.Errorf("selection = %v, want (0,2)", h.sel)
	}

	h.editMode = true
	press(t, e, key.ArrowLeft)
	if h.sel != pos(0, 1) {
		t.Errorf("edit-mode selection = %v, want (0,1)", h.sel)
	}
}

func TestSpaceFlipsDirection(t *testing.T) {
	h := newFakeHost("__", "__")
	e := newEngine(t, h, nil)

	press(t, e, key.Space)
	if h.dir != grid.Down {
		t.Errorf("direction = %v, want down", h.dir)
	}

	h.lockDirection = true
	press(t, e, key.Space)
	if h.dir != grid.Down {
		t.Errorf("locked direction changed to %v", h.dir)
	}
}

func TestTabWalksClues(t *testing.T) {
	// across 1, 3; down 1, 2
	h := newFakeHost("__", "__")
	e := newEngine(t, h, nil)

	press(t, e, key.Tab)
	if h.sel != pos(1, 0) || h.dir != grid.Across {
		t.Errorf("Tab: %v %v, want (1,0) across", h.sel, h.dir)
	}

	if !e.HandleKeyEvent(key.Tab, true, false, false) {
		t.Fatal("shift+Tab not handled")
	}
	if h.sel != pos(0, 0) || h.dir != grid.Across {
		t.Errorf("shift+Tab: %v %v, want (0,0) across", h.sel, h.dir)
	}

	if !e.HandleKeyEvent(key.Tab, true, false, false) {
		t.Fatal("shift+Tab not handled")
	}
	if h.sel != pos(0, 1) || h.dir != grid.Down {
		t.Errorf("shift+Tab wrap: %v %v, want (0,1) down", h.sel, h.dir)
	}
}

func TestStandardNotifications(t *testing.T) {
	h := newFakeHost("__")
	e := newEngine(t, h, nil)

	press(t, e, key.Enter, key.Period, key.Escape)
	if h.enter != 1 || h.period != 1 || h.escape != 1 {
		t.Errorf("enter=%d period=%d escape=%d, want 1 each", h.enter, h.period, h.escape)
	}
}

func TestLetterValidity(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"a", true},
		{"Z", true},
		{"7", true},
		{"/", true},
		{"\\", true},
		{"?", true},
		{"{", false},
		{"é", false},
		{"ab", false},
		{"F1", false},
		{"", false},
	}
	for _, tt := range tests {
		h := newFakeHost("__")
		e := newEngine(t, h, nil)
		if got := e.HandleKeyEvent(tt.key, false, false, false); got != tt.want {
			t.Errorf("HandleKeyEvent(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestFrozenBlocksTypingOnly(t *testing.T) {
	h := newFakeHost("__")
	h.frozen = true
	e := newEngine(t, h, nil)

	if e.HandleKeyEvent("a", false, false, false) {
		t.Error("letter handled while frozen")
	}
	if h.value(0, 0) != "" {
		t.Errorf("frozen grid changed: %q", h.value(0, 0))
	}
	press(t, e, key.ArrowRight)
	if h.sel != pos(0, 1) {
		t.Errorf("navigation blocked while frozen: %v", h.sel)
	}
}

func TestIgnoredEvents(t *testing.T) {
	h := newFakeHost("__")
	e := newEngine(t, h, nil)

	if e.HandleKeyEvent("a", false, true, false) {
		t.Error("event from a text input was handled")
	}
	if e.HandleKeyEvent("a", false, false, true) {
		t.Error("event with a platform modifier was handled")
	}
	if e.HandleEvent(key.Event{Key: key.ArrowRight, Modifiers: key.ModMeta}) {
		t.Error("meta+ArrowRight was handled")
	}
	if h.value(0, 0) != "" || h.sel != pos(0, 0) {
		t.Error("ignored events changed the grid")
	}
	if got := e.Metrics().Snapshot().IgnoredEvents; got != 3 {
		t.Errorf("IgnoredEvents = %d, want 3", got)
	}
}

func TestHandleAction(t *testing.T) {
	h := newFakeHost("___")
	e := newEngine(t, h, nil)

	if !e.HandleAction(ActionRight, false) {
		t.Error("HandleAction(right) = false")
	}
	if h.sel != pos(0, 1) {
		t.Errorf("selection = %v, want (0,1)", h.sel)
	}
	if e.HandleAction("teleport", false) {
		t.Error("unknown action reported as handled")
	}
	if got := e.Metrics().Snapshot().UnknownActions; got != 1 {
		t.Errorf("UnknownActions = %d, want 1", got)
	}
}

func TestDeleteWordKeepsGoodCells(t *testing.T) {
	h := newFakeHost("#ABC#D")
	h.g.SetGood(0, 2, true)
	h.sel = pos(0, 3)
	e := newEngine(t, h, nil)

	e.HandleAction(ActionDeleteWord, false)
	if got := h.value(0, 1) + h.value(0, 2) + h.value(0, 3); got != "B" {
		t.Errorf("run after delete word = %q, want B", got)
	}
	if h.value(0, 5) != "D" {
		t.Error("delete word touched another run")
	}
	if h.sel != pos(0, 1) {
		t.Errorf("selection = %v, want run start (0,1)", h.sel)
	}
}

func TestThrottledTypingCommitsInOrder(t *testing.T) {
	h := newFakeHost("____")
	e := newEngine(t, h, func(cfg *Config) {
		cfg.SyncTyping = false
		cfg.ThrottleInterval = time.Millisecond
	})

	press(t, e, "w", "o", "r", "d")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	e.mu.Lock()
	got := h.value(0, 0) + h.value(0, 1) + h.value(0, 2) + h.value(0, 3)
	e.mu.Unlock()
	if got != "WORD" {
		t.Errorf("grid = %q, want WORD", got)
	}
	if !e.GridFilled() {
		t.Error("GridFilled() = false after typing every cell")
	}
}

func TestCloseCommitsPendingLetters(t *testing.T) {
	h := newFakeHost("___")
	cfg := DefaultConfig()
	cfg.ThrottleInterval = time.Hour
	e, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	press(t, e, "a", "b", "c")
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := h.value(0, 0) + h.value(0, 1) + h.value(0, 2); got != "ABC" {
		t.Errorf("grid after Close = %q, want ABC", got)
	}

	if err := e.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close error = %v, want ErrClosed", err)
	}
	if e.HandleKeyEvent(key.ArrowRight, false, false, false) {
		t.Error("closed engine handled a key")
	}
}

func TestHooks(t *testing.T) {
	h := newFakeHost("__")
	e := newEngine(t, h, nil)

	var seen []string
	e.Hooks().Register(FuncHook{
		PreKeyEventFunc: func(ev *key.Event, _ State) bool {
			return ev.Key == "x"
		},
		PostKeyEventFunc: func(ev key.Event, handled bool, st State) {
			seen = append(seen, ev.Key+"@"+st.Selected.String())
		},
	}, "test", HookPriorityNormal)

	press(t, e, "x")
	if h.value(0, 0) != "" {
		t.Error("consumed key still typed a letter")
	}
	press(t, e, key.ArrowRight)
	if len(seen) != 1 || seen[0] != key.ArrowRight+"@"+pos(0, 1).String() {
		t.Errorf("post hook saw %v", seen)
	}
}

func TestHookPriorityOrder(t *testing.T) {
	m := NewHookManager()
	m.Register(BaseHook{}, "low", HookPriorityLow)
	id := m.Register(BaseHook{}, "high", HookPriorityHigh)
	m.Register(BaseHook{}, "normal", HookPriorityNormal)

	if got := strings.Join(m.Names(), ","); got != "high,normal,low" {
		t.Errorf("Names() = %s", got)
	}
	if !m.Unregister(id) || m.Unregister(id) {
		t.Error("Unregister should succeed once")
	}
}
