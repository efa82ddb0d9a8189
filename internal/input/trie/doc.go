// Package trie resolves multi-key command sequences one keystroke at a time.
//
// A Trie is built once from a set of bindings and never changes. Progress
// through a chord lives in a separate Cursor, so many cursors can walk the
// same trie and resetting one is just pointing it back at the root.
//
//	t := trie.MustBuild([]trie.Binding{
//	    {Keys: "x", Action: "delete"},
//	    {Keys: "d d", Action: "word.delete"},
//	})
//	c := trie.NewCursor(t)
//	c.Feed("d") // Pending
//	c.Feed("d") // Matched, Action "word.delete", cursor back at root
package trie
