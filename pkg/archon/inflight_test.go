package archon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInflightTracker(t *testing.T) {
	tr := newInflightTracker()

	root := tr.begin("/dst", nil)
	child := tr.begin("/dst/a", root)
	grandchild := tr.begin("/dst/a/b", child)

	assert.True(t, tr.walking("/dst"))
	assert.True(t, tr.walking("/dst/a"))
	assert.True(t, tr.walking("/dst/a/b"))
	assert.False(t, tr.walking("/dst/other"))

	// a parent's own body finishing does not release it while a child walk
	// is still in flight
	tr.finish(root)
	tr.finish(child)
	assert.True(t, tr.walking("/dst"))
	assert.True(t, tr.walking("/dst/a"))

	tr.finish(grandchild)
	assert.False(t, tr.walking("/dst/a/b"))
	assert.False(t, tr.walking("/dst/a"))
	assert.False(t, tr.walking("/dst"))
}

func TestInflightTrackerSiblings(t *testing.T) {
	tr := newInflightTracker()

	root := tr.begin("/dst", nil)
	a := tr.begin("/dst/a", root)
	b := tr.begin("/dst/b", root)
	tr.finish(root)

	tr.finish(a)
	assert.False(t, tr.walking("/dst/a"))
	assert.True(t, tr.walking("/dst"), "root must stay in flight while a sibling walk remains")

	tr.finish(b)
	assert.False(t, tr.walking("/dst"))
}
