package trie

import (
	"errors"
	"reflect"
	"testing"
)

func testBindings() []Binding {
	return []Binding{
		{Keys: "h", Action: "left"},
		{Keys: "j", Action: "down"},
		{Keys: "x", Action: "delete"},
		{Keys: ":", Action: "mode.command"},
		{Keys: "d d", Action: "word.delete"},
		{Keys: "g g", Action: "clue.first"},
	}
}

func TestBuildConflicts(t *testing.T) {
	tests := []struct {
		name     string
		bindings []Binding
		wantErr  error
	}{
		{"empty keys", []Binding{{Keys: "  ", Action: "x"}}, ErrEmptySequence},
		{"empty action", []Binding{{Keys: "x"}}, ErrEmptyAction},
		{"duplicate", []Binding{{Keys: "x", Action: "a"}, {Keys: "x", Action: "b"}}, ErrConflict},
		{"leaf then chord", []Binding{{Keys: "d", Action: "a"}, {Keys: "d d", Action: "b"}}, ErrConflict},
		{"chord then leaf", []Binding{{Keys: "d d", Action: "b"}, {Keys: "d", Action: "a"}}, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.bindings)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tr := MustBuild(testBindings())

	node, ok := tr.Lookup("d")
	if !ok || node.IsCommand() {
		t.Fatal("d should be an interior node")
	}
	if got := node.Keys(); !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("Keys() = %v", got)
	}

	node, ok = tr.Lookup("d", "d")
	if !ok || node.Action() != "word.delete" {
		t.Errorf("Lookup(d d) = %v, %v", node, ok)
	}

	if _, ok := tr.Lookup("q"); ok {
		t.Error("Lookup(q) should fail")
	}
}

func TestCursorSingleKeyStaysAtRoot(t *testing.T) {
	c := NewCursor(MustBuild(testBindings()))

	for _, k := range []string{"h", "j"} {
		res := c.Feed(k)
		if res.Status != Matched {
			t.Fatalf("Feed(%q) status = %v, want matched", k, res.Status)
		}
		if c.Pending() {
			t.Errorf("cursor pending after single-key command %q", k)
		}
	}
}

func TestCursorChord(t *testing.T) {
	c := NewCursor(MustBuild(testBindings()))

	if res := c.Feed("d"); res.Status != Pending {
		t.Fatalf("first d status = %v, want pending", res.Status)
	}
	if !c.Pending() {
		t.Fatal("cursor should be pending after d")
	}

	res := c.Feed("d")
	if res.Status != Matched || res.Action != "word.delete" {
		t.Fatalf("second d = %+v", res)
	}
	if c.Pending() {
		t.Error("cursor should reset after a chord executes")
	}
}

func TestCursorUnmatchedResetsWithoutAction(t *testing.T) {
	c := NewCursor(MustBuild(testBindings()))

	c.Feed("d")
	res := c.Feed("h")
	if res.Status != Unmatched || res.Action != "" {
		t.Fatalf("Feed(h) mid-chord = %+v, want unmatched with no action", res)
	}
	if !res.Abandoned {
		t.Error("expected Abandoned for a broken chord")
	}
	if c.Pending() {
		t.Error("cursor should be at root after an unmatched key")
	}

	res = c.Feed("q")
	if res.Status != Unmatched || res.Abandoned {
		t.Errorf("Feed(q) at root = %+v", res)
	}
}

func TestCursorRetry(t *testing.T) {
	c := NewCursor(MustBuild(testBindings()))
	c.SetRetry(true)

	c.Feed("d")
	res := c.Feed("h")
	if res.Status != Matched || res.Action != "left" || !res.Abandoned {
		t.Errorf("retry Feed(h) = %+v, want matched left", res)
	}

	// A chord prefix breaking another chord starts the new chord.
	c.Feed("d")
	if res := c.Feed("g"); res.Status != Pending {
		t.Errorf("retry Feed(g) = %+v, want pending", res)
	}
	if res := c.Feed("g"); res.Action != "clue.first" {
		t.Errorf("Feed(g) = %+v, want clue.first", res)
	}
}

func TestParseKeys(t *testing.T) {
	got := ParseKeys(" d  Space x ")
	want := []string{"d", " ", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseKeys = %q, want %q", got, want)
	}
}

func TestMerge(t *testing.T) {
	base := []Binding{
		{Keys: "h", Action: "left"},
		{Keys: "x", Action: "delete"},
		{Keys: "d d", Action: "word.delete"},
	}
	got := Merge(base, map[string]string{
		"x":    "",
		"d  d": "word.clear",
		"g g":  "clue.first",
		"z":    "",
	})
	want := []Binding{
		{Keys: "h", Action: "left"},
		{Keys: "d d", Action: "word.clear"},
		{Keys: "g g", Action: "clue.first"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}

	if got := Merge(base, nil); !reflect.DeepEqual(got, base) {
		t.Error("Merge with no overrides should return base")
	}
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{Unmatched: "unmatched", Pending: "pending", Matched: "matched", Status(9): "unknown"} {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}
