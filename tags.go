package scenic

import (
	"sort"
)

// Tags is an unordered set of string labels attached to an entity, used for
// scene-wide lookups such as Scene.FindByTag.
type Tags struct {
	set map[string]struct{}
}

func newTags() *Tags {
	return &Tags{set: make(map[string]struct{})}
}

// Add adds the given tags to the set.
func (t *Tags) Add(tags ...string) {
	for _, tag := range tags {
		t.set[tag] = struct{}{}
	}
}

// Remove removes the given tags from the set.
func (t *Tags) Remove(tags ...string) {
	for _, tag := range tags {
		delete(t.set, tag)
	}
}

// Has reports whether all of the given tags are present.
func (t *Tags) Has(tags ...string) bool {
	for _, tag := range tags {
		if _, ok := t.set[tag]; !ok {
			return false
		}
	}
	return true
}

// All returns the tags in sorted order.
func (t *Tags) All() []string {
	out := make([]string, 0, len(t.set))
	for tag := range t.set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Clear removes every tag.
func (t *Tags) Clear() {
	t.set = make(map[string]struct{})
}

// Len returns the number of tags.
func (t *Tags) Len() int {
	return len(t.set)
}
