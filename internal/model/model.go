// Package model owns the raw entity collections and derives the
// filtered/sorted views the presentation layer renders. Views are plain
// functions of (raw collection, predicate, comparator), recomputed on
// read; nothing is patched incrementally.
package model

import (
	"sort"
	"strconv"

	"matchbook/internal/estate"
	"matchbook/internal/pubsub"
)

// SearchTarget names which collection an active search was aimed at.
type SearchTarget int

const (
	SearchNone SearchTarget = iota
	SearchPersons
	SearchListings
)

func (t SearchTarget) String() string {
	switch t {
	case SearchPersons:
		return "persons"
	case SearchListings:
		return "listings"
	default:
		return "none"
	}
}

// ActiveSearch records what the most recent match or search command
// looked for, so subsequent list renders can reflect it until reset.
type ActiveSearch struct {
	Tags   estate.TagSet
	Range  estate.PriceRange
	Target SearchTarget
}

// Predicates and comparators for the derived views. A nil predicate
// accepts everything; a nil comparator keeps insertion order.
type (
	PersonPredicate  func(*estate.Person) bool
	ListingPredicate func(*estate.Listing) bool
	TagPredicate     func(*estate.Tag) bool
	PersonLess       func(a, b *estate.Person) bool
	ListingLess      func(a, b *estate.Listing) bool
)

// Change is the payload of model-change events.
type Change struct {
	Entity string // "person", "listing", "tag", "preference", "views", "all"
}

// Model is the view coordinator: raw persons and listings in insertion
// order, the tag registry, and the current predicate/comparator/search
// state. It is single-writer: one command mutates it to completion
// before the next runs, and readers only run between commands.
type Model struct {
	registry *estate.Registry
	persons  []*estate.Person
	listings []*estate.Listing

	personFilter  PersonPredicate
	listingFilter ListingPredicate
	tagFilter     TagPredicate
	personSort    PersonLess
	listingSort   ListingLess
	search        *ActiveSearch

	events     *pubsub.Broker[Change]
	generation uint64
}

// New returns an empty model with a fresh registry.
func New() *Model {
	return &Model{
		registry: estate.NewRegistry(),
		events:   pubsub.NewBroker[Change](),
	}
}

// Registry exposes the canonical tag registry.
func (m *Model) Registry() *estate.Registry {
	return m.registry
}

// Events exposes the model-change broker for UI refresh.
func (m *Model) Events() *pubsub.Broker[Change] {
	return m.events
}

// Generation returns a counter bumped on every entity mutation.
// Derived-result caches key on it so stale entries die with the state
// that produced them. View-state changes (filters, comparators, the
// active search) do not advance it: match results depend only on the
// raw collections.
func (m *Model) Generation() uint64 {
	return m.generation
}

func (m *Model) bump(eventType pubsub.EventType, entity string) {
	m.generation++
	m.events.Publish(eventType, Change{Entity: entity})
}

// touchViews publishes a view-state change without advancing the
// generation.
func (m *Model) touchViews(entity string) {
	m.events.Publish(pubsub.UpdatedEvent, Change{Entity: entity})
}

// --- person CRUD ---

// HasPerson reports whether a person with the phone exists.
func (m *Model) HasPerson(phone estate.PersonID) bool {
	return m.personByPhone(phone) != nil
}

// PersonByPhone resolves a person by identity key.
func (m *Model) PersonByPhone(phone estate.PersonID) (*estate.Person, error) {
	if p := m.personByPhone(phone); p != nil {
		return p, nil
	}
	return nil, &estate.EntityNotFoundError{Kind: "person", Key: string(phone)}
}

func (m *Model) personByPhone(phone estate.PersonID) *estate.Person {
	for _, p := range m.persons {
		if p.Phone == phone {
			return p
		}
	}
	return nil
}

// AddPerson appends the person. Caller guarantees the phone is unique
// (validate with HasPerson first).
func (m *Model) AddPerson(p *estate.Person) {
	m.persons = append(m.persons, p)
	m.bump(pubsub.CreatedEvent, "person")
}

// SetPerson splices the replacement in at the position of the person
// with the same phone. Caller guarantees the target exists.
func (m *Model) SetPerson(edited *estate.Person) {
	for i, p := range m.persons {
		if p.Phone == edited.Phone {
			m.persons[i] = edited
			break
		}
	}
	m.bump(pubsub.UpdatedEvent, "person")
}

// RemovePerson deletes the person, detaching their preferences from all
// tags and dropping them from every owned listing's owner list.
func (m *Model) RemovePerson(phone estate.PersonID) error {
	p := m.personByPhone(phone)
	if p == nil {
		return &estate.EntityNotFoundError{Kind: "person", Key: string(phone)}
	}
	for _, pref := range p.Preferences {
		m.detachPreferenceTags(pref)
	}
	for _, id := range p.ListingIDs {
		if l := m.listingByID(id); l != nil {
			l.RemoveOwner(phone)
		}
	}
	for i, q := range m.persons {
		if q == p {
			m.persons = append(m.persons[:i], m.persons[i+1:]...)
			break
		}
	}
	m.bump(pubsub.DeletedEvent, "person")
	return nil
}

// --- listing CRUD ---

// HasListing reports whether a listing with the same identity exists.
func (m *Model) HasListing(id estate.ListingID) bool {
	return m.listingByID(id) != nil
}

// ListingByID resolves a listing by identity.
func (m *Model) ListingByID(id estate.ListingID) (*estate.Listing, error) {
	if l := m.listingByID(id); l != nil {
		return l, nil
	}
	return nil, &estate.EntityNotFoundError{Kind: "listing", Key: string(id)}
}

func (m *Model) listingByID(id estate.ListingID) *estate.Listing {
	for _, l := range m.listings {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

// AddListing appends the listing. Caller guarantees identity uniqueness.
func (m *Model) AddListing(l *estate.Listing) {
	m.listings = append(m.listings, l)
	m.bump(pubsub.CreatedEvent, "listing")
}

// SetListing splices the replacement in by identity. Caller guarantees
// the target exists.
func (m *Model) SetListing(edited *estate.Listing) {
	for i, l := range m.listings {
		if l.ID() == edited.ID() {
			m.listings[i] = edited
			break
		}
	}
	m.bump(pubsub.UpdatedEvent, "listing")
}

// RemoveListing deletes the listing, detaching it from every tag's
// back-reference set and every owner's listing list.
func (m *Model) RemoveListing(id estate.ListingID) error {
	l := m.listingByID(id)
	if l == nil {
		return &estate.EntityNotFoundError{Kind: "listing", Key: string(id)}
	}
	for name := range l.Tags {
		if tag, err := m.registry.Get(name); err == nil {
			tag.DetachListing(id)
		}
	}
	for _, phone := range l.OwnerPhones {
		if p := m.personByPhone(phone); p != nil {
			p.RemoveListing(id)
		}
	}
	for i, q := range m.listings {
		if q == l {
			m.listings = append(m.listings[:i], m.listings[i+1:]...)
			break
		}
	}
	m.bump(pubsub.DeletedEvent, "listing")
	return nil
}

// --- tag operations ---

// AddTags registers new tag names, failing with DuplicateTagError when
// any already exists (nothing registered in that case).
func (m *Model) AddTags(names ...string) error {
	if err := m.registry.RegisterNew(names...); err != nil {
		return err
	}
	m.bump(pubsub.CreatedEvent, "tag")
	return nil
}

// RemoveTag deletes the tag from the registry after detaching it from
// every listing and preference that referenced it.
func (m *Model) RemoveTag(name string) error {
	tag, err := m.registry.Remove(name)
	if err != nil {
		return err
	}
	for _, id := range tag.ListingIDs() {
		if l := m.listingByID(id); l != nil {
			l.Tags.Remove(name)
		}
	}
	for _, id := range tag.PreferenceIDs() {
		if pref := m.preferenceByID(id); pref != nil {
			pref.Tags.Remove(name)
		}
	}
	m.bump(pubsub.DeletedEvent, "tag")
	return nil
}

// TagListing resolves each name to its canonical tag and records the
// relation on both sides. Tag existence is the caller's precondition;
// unknown names here would break referential consistency.
func (m *Model) TagListing(l *estate.Listing, names ...string) error {
	for _, name := range names {
		tag, err := m.registry.Get(name)
		if err != nil {
			return err
		}
		l.Tags.Add(name)
		tag.AttachListing(l.ID())
	}
	m.bump(pubsub.UpdatedEvent, "listing")
	return nil
}

// UntagListing removes the relation on both sides.
func (m *Model) UntagListing(l *estate.Listing, names ...string) error {
	for _, name := range names {
		tag, err := m.registry.Get(name)
		if err != nil {
			return err
		}
		l.Tags.Remove(name)
		tag.DetachListing(l.ID())
	}
	m.bump(pubsub.UpdatedEvent, "listing")
	return nil
}

// OverwriteListingTags replaces the listing's tag set wholesale.
func (m *Model) OverwriteListingTags(l *estate.Listing, names ...string) error {
	for _, name := range names {
		if !m.registry.Exists(name) {
			return &estate.TagNotFoundError{Name: name}
		}
	}
	for name := range l.Tags {
		if tag, err := m.registry.Get(name); err == nil {
			tag.DetachListing(l.ID())
		}
	}
	l.Tags = estate.NewTagSet()
	return m.TagListing(l, names...)
}

// TagPreference records the relation on both sides for a preference.
func (m *Model) TagPreference(pref *estate.PropertyPreference, names ...string) error {
	for _, name := range names {
		tag, err := m.registry.Get(name)
		if err != nil {
			return err
		}
		pref.Tags.Add(name)
		tag.AttachPreference(pref.ID)
	}
	m.bump(pubsub.UpdatedEvent, "preference")
	return nil
}

// UntagPreference removes the relation on both sides.
func (m *Model) UntagPreference(pref *estate.PropertyPreference, names ...string) error {
	for _, name := range names {
		tag, err := m.registry.Get(name)
		if err != nil {
			return err
		}
		pref.Tags.Remove(name)
		tag.DetachPreference(pref.ID)
	}
	m.bump(pubsub.UpdatedEvent, "preference")
	return nil
}

// OverwritePreferenceTags replaces the preference's tag set wholesale.
func (m *Model) OverwritePreferenceTags(pref *estate.PropertyPreference, names ...string) error {
	for _, name := range names {
		if !m.registry.Exists(name) {
			return &estate.TagNotFoundError{Name: name}
		}
	}
	for name := range pref.Tags {
		if tag, err := m.registry.Get(name); err == nil {
			tag.DetachPreference(pref.ID)
		}
	}
	pref.Tags = estate.NewTagSet()
	return m.TagPreference(pref, names...)
}

// --- preference CRUD ---

// AddPreference attaches the preference to the person.
func (m *Model) AddPreference(p *estate.Person, pref *estate.PropertyPreference) {
	p.AddPreference(pref)
	m.bump(pubsub.CreatedEvent, "preference")
}

// RemovePreference deletes the preference from its person, detaching it
// from every tag's back-reference set.
func (m *Model) RemovePreference(p *estate.Person, id estate.PreferenceID) error {
	pref := p.RemovePreference(id)
	if pref == nil {
		return &estate.EntityNotFoundError{Kind: "preference", Key: string(id)}
	}
	m.detachPreferenceTags(pref)
	m.bump(pubsub.DeletedEvent, "preference")
	return nil
}

func (m *Model) detachPreferenceTags(pref *estate.PropertyPreference) {
	for name := range pref.Tags {
		if tag, err := m.registry.Get(name); err == nil {
			tag.DetachPreference(pref.ID)
		}
	}
}

func (m *Model) preferenceByID(id estate.PreferenceID) *estate.PropertyPreference {
	for _, p := range m.persons {
		for _, pref := range p.Preferences {
			if pref.ID == id {
				return pref
			}
		}
	}
	return nil
}

// PreferenceByID resolves a preference by ID across all persons.
func (m *Model) PreferenceByID(id estate.PreferenceID) (*estate.PropertyPreference, error) {
	if pref := m.preferenceByID(id); pref != nil {
		return pref, nil
	}
	return nil, &estate.EntityNotFoundError{Kind: "preference", Key: string(id)}
}

// --- raw collections ---

// Persons returns the raw person collection in insertion order.
func (m *Model) Persons() []*estate.Person {
	return m.persons
}

// Listings returns the raw listing collection in insertion order.
func (m *Model) Listings() []*estate.Listing {
	return m.listings
}

// --- derived views ---

// SetPersonFilter installs the person predicate. Views re-evaluate on
// the next read, not eagerly.
func (m *Model) SetPersonFilter(p PersonPredicate) {
	m.personFilter = p
	m.touchViews("views")
}

// SetListingFilter installs the listing predicate.
func (m *Model) SetListingFilter(p ListingPredicate) {
	m.listingFilter = p
	m.touchViews("views")
}

// SetTagFilter installs the tag predicate.
func (m *Model) SetTagFilter(p TagPredicate) {
	m.tagFilter = p
	m.touchViews("views")
}

// SetPersonSort installs the person comparator.
func (m *Model) SetPersonSort(less PersonLess) {
	m.personSort = less
	m.touchViews("views")
}

// SetListingSort installs the listing comparator.
func (m *Model) SetListingSort(less ListingLess) {
	m.listingSort = less
	m.touchViews("views")
}

// FilteredPersons applies the current predicate to the raw collection.
func (m *Model) FilteredPersons() []*estate.Person {
	out := make([]*estate.Person, 0, len(m.persons))
	for _, p := range m.persons {
		if m.personFilter == nil || m.personFilter(p) {
			out = append(out, p)
		}
	}
	return out
}

// SortedFilteredPersons applies predicate then comparator. A nil
// comparator keeps insertion order; sorting is stable either way.
func (m *Model) SortedFilteredPersons() []*estate.Person {
	out := m.FilteredPersons()
	if m.personSort != nil {
		sort.SliceStable(out, func(i, j int) bool { return m.personSort(out[i], out[j]) })
	}
	return out
}

// FilteredListings applies the current predicate to the raw collection.
func (m *Model) FilteredListings() []*estate.Listing {
	out := make([]*estate.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		if m.listingFilter == nil || m.listingFilter(l) {
			out = append(out, l)
		}
	}
	return out
}

// SortedFilteredListings applies predicate then comparator.
func (m *Model) SortedFilteredListings() []*estate.Listing {
	out := m.FilteredListings()
	if m.listingSort != nil {
		sort.SliceStable(out, func(i, j int) bool { return m.listingSort(out[i], out[j]) })
	}
	return out
}

// FilteredTags applies the current tag predicate to the registry.
func (m *Model) FilteredTags() []*estate.Tag {
	all := m.registry.Tags()
	out := make([]*estate.Tag, 0, len(all))
	for _, tag := range all {
		if m.tagFilter == nil || m.tagFilter(tag) {
			out = append(out, tag)
		}
	}
	return out
}

// PersonAt resolves a zero-based index into the currently displayed
// (sorted, filtered) person list.
func (m *Model) PersonAt(i int) (*estate.Person, error) {
	view := m.SortedFilteredPersons()
	if i < 0 || i >= len(view) {
		return nil, &estate.EntityNotFoundError{Kind: "person", Key: indexKey(i)}
	}
	return view[i], nil
}

// ListingAt resolves a zero-based index into the currently displayed
// (sorted, filtered) listing list.
func (m *Model) ListingAt(i int) (*estate.Listing, error) {
	view := m.SortedFilteredListings()
	if i < 0 || i >= len(view) {
		return nil, &estate.EntityNotFoundError{Kind: "listing", Key: indexKey(i)}
	}
	return view[i], nil
}

func indexKey(i int) string {
	return "index " + strconv.Itoa(i+1)
}

// --- active search ---

// SetSearch installs the active search record. Callers that set it must
// install the matching predicate/comparator themselves; the coordinator
// does not derive one from the record.
func (m *Model) SetSearch(tags estate.TagSet, priceRange estate.PriceRange, target SearchTarget) {
	m.search = &ActiveSearch{Tags: tags.Clone(), Range: priceRange, Target: target}
	m.touchViews("views")
}

// Search returns the active search, if any.
func (m *Model) Search() (ActiveSearch, bool) {
	if m.search == nil {
		return ActiveSearch{}, false
	}
	return *m.search, true
}

// ResetAllLists restores accept-all predicates, insertion-order
// comparators, and clears the active search, so a bounded search does
// not leak into later views.
func (m *Model) ResetAllLists() {
	m.personFilter = nil
	m.listingFilter = nil
	m.tagFilter = nil
	m.personSort = nil
	m.listingSort = nil
	m.search = nil
	m.touchViews("all")
}

// ReplaceFrom adopts the collections and registry of other, keeping this
// model's broker and subscribers intact. Used when the data file is
// reloaded from disk: views, filters, and the active search are reset
// because the displayed indexes no longer mean anything.
func (m *Model) ReplaceFrom(other *Model) {
	m.registry = other.registry
	m.persons = other.persons
	m.listings = other.listings
	m.personFilter = nil
	m.listingFilter = nil
	m.tagFilter = nil
	m.personSort = nil
	m.listingSort = nil
	m.search = nil
	m.bump(pubsub.ReloadedEvent, "all")
}
