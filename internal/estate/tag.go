package estate

import (
	"sort"
	"strings"
)

// Tag is a named label shared across listings and property preferences.
// Identity is case-insensitive: two names naming the same tag normalize
// to the same uppercase key. A Tag carries back-references (as ID sets)
// to every listing and preference using it, maintained by the registry
// attach/detach operations.
type Tag struct {
	name        string
	listings    map[ListingID]struct{}
	preferences map[PreferenceID]struct{}
}

// NormalizeTagName returns the canonical identity key for a tag name.
func NormalizeTagName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func newTag(name string) *Tag {
	return &Tag{
		name:        strings.TrimSpace(name),
		listings:    make(map[ListingID]struct{}),
		preferences: make(map[PreferenceID]struct{}),
	}
}

// Name returns the tag name as first registered.
func (t *Tag) Name() string {
	return t.name
}

// Key returns the normalized identity key.
func (t *Tag) Key() string {
	return NormalizeTagName(t.name)
}

// Equal reports whether both tags share the same normalized name.
func (t *Tag) Equal(other *Tag) bool {
	return other != nil && t.Key() == other.Key()
}

// AttachListing records that the listing uses this tag. No-op when the
// relation already exists, so command retries stay safe.
func (t *Tag) AttachListing(id ListingID) {
	t.listings[id] = struct{}{}
}

// DetachListing removes the listing back-reference. No-op when absent.
func (t *Tag) DetachListing(id ListingID) {
	delete(t.listings, id)
}

// AttachPreference records that the preference uses this tag. Idempotent.
func (t *Tag) AttachPreference(id PreferenceID) {
	t.preferences[id] = struct{}{}
}

// DetachPreference removes the preference back-reference. No-op when absent.
func (t *Tag) DetachPreference(id PreferenceID) {
	delete(t.preferences, id)
}

// ListingIDs returns the IDs of listings using this tag, sorted.
func (t *Tag) ListingIDs() []ListingID {
	ids := make([]ListingID, 0, len(t.listings))
	for id := range t.listings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// PreferenceIDs returns the IDs of preferences using this tag, sorted.
func (t *Tag) PreferenceIDs() []PreferenceID {
	ids := make([]PreferenceID, 0, len(t.preferences))
	for id := range t.preferences {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// UsageCount returns how many listings and preferences reference the tag.
func (t *Tag) UsageCount() int {
	return len(t.listings) + len(t.preferences)
}

// TagSet is a set of normalized tag names, used for the tag side of
// listings and preferences.
type TagSet map[string]struct{}

// NewTagSet builds a set from raw names, normalizing each.
func NewTagSet(names ...string) TagSet {
	s := make(TagSet, len(names))
	for _, n := range names {
		s[NormalizeTagName(n)] = struct{}{}
	}
	return s
}

// Has reports membership of the normalized form of name.
func (s TagSet) Has(name string) bool {
	_, ok := s[NormalizeTagName(name)]
	return ok
}

// Add inserts the normalized form of name.
func (s TagSet) Add(name string) {
	s[NormalizeTagName(name)] = struct{}{}
}

// Remove deletes the normalized form of name. No-op when absent.
func (s TagSet) Remove(name string) {
	delete(s, NormalizeTagName(name))
}

// OverlapCount returns the size of the intersection with other.
func (s TagSet) OverlapCount(other TagSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for name := range small {
		if _, ok := large[name]; ok {
			n++
		}
	}
	return n
}

// Names returns the normalized names, sorted.
func (s TagSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the set.
func (s TagSet) Clone() TagSet {
	c := make(TagSet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}
