package estate

import "sort"

// Registry is the single authority mapping normalized tag names to their
// canonical Tag instance. At most one Tag exists per name; every entity
// that carries a tag name resolves it here, so a shared mutation (an
// attach, a detach, a removal) is visible everywhere at once. The
// registry is a plain value owned by the application wiring; there is
// no hidden global, and tests construct their own.
type Registry struct {
	entries map[string]*Tag
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Tag)}
}

// RegisterNew creates one empty tag per name. It fails with
// DuplicateTagError listing every name already present, and registers
// nothing when any name clashes.
func (r *Registry) RegisterNew(names ...string) error {
	var dup []string
	for _, name := range names {
		if _, ok := r.entries[NormalizeTagName(name)]; ok {
			dup = append(dup, name)
		}
	}
	if len(dup) > 0 {
		sort.Strings(dup)
		return &DuplicateTagError{Names: dup}
	}
	for _, name := range names {
		r.entries[NormalizeTagName(name)] = newTag(name)
	}
	return nil
}

// Exists reports whether every given name is registered. True for an
// empty name list.
func (r *Registry) Exists(names ...string) bool {
	for _, name := range names {
		if _, ok := r.entries[NormalizeTagName(name)]; !ok {
			return false
		}
	}
	return true
}

// Get returns the canonical tag for name, failing with TagNotFoundError
// when absent.
func (r *Registry) Get(name string) (*Tag, error) {
	tag, ok := r.entries[NormalizeTagName(name)]
	if !ok {
		return nil, &TagNotFoundError{Name: name}
	}
	return tag, nil
}

// Resolve returns the canonical tag for name, creating and registering
// an empty one when absent. Used when rehydrating persisted data so that
// reloaded entities land on the single shared instance.
func (r *Registry) Resolve(name string) *Tag {
	key := NormalizeTagName(name)
	if tag, ok := r.entries[key]; ok {
		return tag
	}
	tag := newTag(name)
	r.entries[key] = tag
	return tag
}

// Remove deletes the tag and returns it so the caller can detach it from
// the listings and preferences it still references (the registry only
// holds their IDs). Fails with TagNotFoundError when absent.
func (r *Registry) Remove(name string) (*Tag, error) {
	key := NormalizeTagName(name)
	tag, ok := r.entries[key]
	if !ok {
		return nil, &TagNotFoundError{Name: name}
	}
	delete(r.entries, key)
	return tag, nil
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Tags returns all registered tags sorted by normalized name.
func (r *Registry) Tags() []*Tag {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tags := make([]*Tag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, r.entries[k])
	}
	return tags
}

// Reset drops every entry. Used by tests and full reloads.
func (r *Registry) Reset() {
	r.entries = make(map[string]*Tag)
}
