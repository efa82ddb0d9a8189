package trie

// Status is the outcome of feeding one key to a Cursor.
type Status uint8

const (
	// Unmatched means the key has no edge from the current node. The
	// cursor is back at the root.
	Unmatched Status = iota

	// Pending means the key advanced into a chord that needs more keys.
	Pending

	// Matched means the key completed a command. The cursor is back at
	// the root.
	Matched
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case Unmatched:
		return "unmatched"
	case Pending:
		return "pending"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Result describes what a key did.
type Result struct {
	Status Status

	// Action is set when Status is Matched.
	Action string

	// Abandoned is true when the key broke off a chord in progress.
	Abandoned bool
}

// Cursor tracks progress through a Trie.
type Cursor struct {
	trie *Trie
	node *Node

	// retry re-feeds a key that abandoned a chord against the root.
	retry bool
}

// NewCursor returns a cursor at the root of t.
func NewCursor(t *Trie) *Cursor {
	return &Cursor{trie: t, node: t.root}
}

// SetRetry controls whether a key that breaks a chord is tried again from
// the root. Off by default: the key is discarded.
func (c *Cursor) SetRetry(retry bool) {
	c.retry = retry
}

// Feed advances the cursor by one key.
func (c *Cursor) Feed(key string) Result {
	res := c.step(key)
	if res.Status == Unmatched && res.Abandoned && c.retry {
		res = c.step(key)
		res.Abandoned = true
	}
	return res
}

func (c *Cursor) step(key string) Result {
	wasPending := c.Pending()

	child, ok := c.node.Child(key)
	if !ok {
		c.Reset()
		return Result{Status: Unmatched, Abandoned: wasPending}
	}

	if child.IsCommand() {
		c.Reset()
		return Result{Status: Matched, Action: child.action}
	}

	c.node = child
	return Result{Status: Pending}
}

// Reset returns the cursor to the root.
func (c *Cursor) Reset() {
	c.node = c.trie.root
}

// Pending reports whether a chord is in progress.
func (c *Cursor) Pending() bool {
	return c.node != c.trie.root
}

// Node returns the node the cursor points at.
func (c *Cursor) Node() *Node {
	return c.node
}
