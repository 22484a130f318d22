package archon

import "sync"

// walkToken tracks one walk's subtree. Its pending count covers the walk
// itself plus every directly submitted child walk; a token releases its
// parent only once its own subtree has fully completed.
type walkToken struct {
	path    string
	parent  *walkToken
	pending int
}

// inflightTracker is the in-flight set keyed by destination directory path.
// A destination directory stays in the set from the moment its walk is
// submitted until the walk of its entire subtree has completed, which is
// what lets the pruner distinguish "stray directory" from "directory still
// being mirrored".
type inflightTracker struct {
	mu     sync.Mutex
	active map[string]*walkToken
}

func newInflightTracker() *inflightTracker {
	return &inflightTracker{active: make(map[string]*walkToken)}
}

// begin registers a walk for path, chained under parent (nil for the root).
func (t *inflightTracker) begin(path string, parent *walkToken) *walkToken {
	t.mu.Lock()
	defer t.mu.Unlock()

	tok := &walkToken{path: path, parent: parent, pending: 1}
	if parent != nil {
		parent.pending++
	}
	t.active[path] = tok
	return tok
}

// finish marks the walk's own body complete. The token leaves the set when
// its child walks have finished too, cascading up to ancestors.
func (t *inflightTracker) finish(tok *walkToken) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.release(tok)
}

func (t *inflightTracker) release(tok *walkToken) {
	tok.pending--
	if tok.pending > 0 {
		return
	}
	delete(t.active, tok.path)
	if tok.parent != nil {
		t.release(tok.parent)
	}
}

// walking reports whether path has a walk in flight.
func (t *inflightTracker) walking(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.active[path]
	return ok
}
