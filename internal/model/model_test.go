package model

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"matchbook/internal/estate"
	"matchbook/internal/pubsub"
)

func mustRange(t *testing.T, lower, upper estate.Price) estate.PriceRange {
	t.Helper()
	r, err := estate.NewPriceRange(lower, upper)
	require.NoError(t, err)
	return r
}

func seedModel(t *testing.T) (*Model, *estate.Person, *estate.Listing) {
	t.Helper()
	m := New()
	require.NoError(t, m.AddTags("modern", "pool"))

	listing, err := estate.NewListing("123456", "", "123", mustRange(t, 100000, 200000), "Sunny Villa")
	require.NoError(t, err)
	m.AddListing(listing)

	person := estate.NewPerson("John Doe", "98765432", "johndoe@example.com")
	m.AddPerson(person)
	return m, person, listing
}

func TestModel_PersonCRUD(t *testing.T) {
	m, person, _ := seedModel(t)

	require.True(t, m.HasPerson("98765432"))
	got, err := m.PersonByPhone("98765432")
	require.NoError(t, err)
	require.Same(t, person, got)

	_, err = m.PersonByPhone("00000000")
	var notFound *estate.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "person", notFound.Kind)

	edited := estate.NewPerson("John D.", "98765432", "jd@example.com")
	m.SetPerson(edited)
	got, err = m.PersonByPhone("98765432")
	require.NoError(t, err)
	require.Same(t, edited, got)
}

func TestModel_RemovePerson_Cascades(t *testing.T) {
	m, person, listing := seedModel(t)

	pref := estate.NewPropertyPreference(mustRange(t, 150000, 250000))
	m.AddPreference(person, pref)
	require.NoError(t, m.TagPreference(pref, "modern"))
	require.NoError(t, listing.AddOwner(person.Phone))
	person.AddListing(listing.ID())

	require.NoError(t, m.RemovePerson(person.Phone))

	require.False(t, m.HasPerson(person.Phone))
	require.False(t, listing.HasOwner(person.Phone))
	tag, err := m.Registry().Get("modern")
	require.NoError(t, err)
	require.Empty(t, tag.PreferenceIDs())
}

func TestModel_RemoveListing_Cascades(t *testing.T) {
	m, person, listing := seedModel(t)

	require.NoError(t, m.TagListing(listing, "modern"))
	require.NoError(t, listing.AddOwner(person.Phone))
	person.AddListing(listing.ID())

	require.NoError(t, m.RemoveListing(listing.ID()))

	require.False(t, m.HasListing(listing.ID()))
	require.False(t, person.HasListing(listing.ID()))
	tag, err := m.Registry().Get("modern")
	require.NoError(t, err)
	require.Empty(t, tag.ListingIDs())
}

func TestModel_RemoveTag_DetachesEverywhere(t *testing.T) {
	m, person, listing := seedModel(t)
	require.NoError(t, m.AddTags("luxury"))

	pref := estate.NewPropertyPreference(mustRange(t, 150000, 250000))
	m.AddPreference(person, pref)
	require.NoError(t, m.TagPreference(pref, "luxury"))
	require.NoError(t, m.TagListing(listing, "luxury", "modern"))

	require.NoError(t, m.RemoveTag("luxury"))

	require.False(t, listing.Tags.Has("luxury"))
	require.True(t, listing.Tags.Has("modern"))
	require.False(t, pref.Tags.Has("luxury"))
	require.False(t, m.Registry().Exists("luxury"))
}

func TestModel_OverwriteTags(t *testing.T) {
	m, person, listing := seedModel(t)
	require.NoError(t, m.AddTags("garden"))

	require.NoError(t, m.TagListing(listing, "modern"))
	require.NoError(t, m.OverwriteListingTags(listing, "garden", "pool"))
	require.Equal(t, []string{"GARDEN", "POOL"}, listing.Tags.Names())

	modern, err := m.Registry().Get("modern")
	require.NoError(t, err)
	require.Empty(t, modern.ListingIDs())

	// unknown tag leaves state untouched
	err = m.OverwriteListingTags(listing, "nope")
	var notFound *estate.TagNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, []string{"GARDEN", "POOL"}, listing.Tags.Names())

	pref := estate.NewPropertyPreference(mustRange(t, 1, 2))
	m.AddPreference(person, pref)
	require.NoError(t, m.TagPreference(pref, "modern"))
	require.NoError(t, m.OverwritePreferenceTags(pref, "pool"))
	require.Equal(t, []string{"POOL"}, pref.Tags.Names())
	require.Empty(t, modern.PreferenceIDs())
}

func TestModel_RemovePreference_DetachesTags(t *testing.T) {
	m, person, _ := seedModel(t)

	pref := estate.NewPropertyPreference(mustRange(t, 150000, 250000))
	m.AddPreference(person, pref)
	require.NoError(t, m.TagPreference(pref, "modern"))

	require.NoError(t, m.RemovePreference(person, pref.ID))

	require.Empty(t, person.Preferences)
	tag, err := m.Registry().Get("modern")
	require.NoError(t, err)
	require.Empty(t, tag.PreferenceIDs())

	err = m.RemovePreference(person, pref.ID)
	var notFound *estate.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestModel_ViewsFilterAndSort(t *testing.T) {
	m := New()
	for _, name := range []string{"Cara", "Amy", "Ben"} {
		m.AddPerson(estate.NewPerson(name, estate.PersonID("9"+name), name+"@example.com"))
	}

	// default views mirror the raw collection in insertion order
	require.Len(t, m.SortedFilteredPersons(), 3)
	require.Equal(t, "Cara", m.SortedFilteredPersons()[0].Name)

	m.SetPersonFilter(func(p *estate.Person) bool { return p.Name != "Ben" })
	m.SetPersonSort(func(a, b *estate.Person) bool { return a.Name < b.Name })

	view := m.SortedFilteredPersons()
	require.Len(t, view, 2)
	require.Equal(t, "Amy", view[0].Name)
	require.Equal(t, "Cara", view[1].Name)

	// raw collection untouched
	require.Len(t, m.Persons(), 3)
}

func TestModel_ViewsAreLazy(t *testing.T) {
	m := New()
	m.SetPersonFilter(func(p *estate.Person) bool { return p.Name == "Amy" })

	// the predicate applies to entities added after it was installed
	m.AddPerson(estate.NewPerson("Amy", "91", "amy@example.com"))
	m.AddPerson(estate.NewPerson("Ben", "92", "ben@example.com"))
	require.Len(t, m.FilteredPersons(), 1)
}

func TestModel_ResetAllLists(t *testing.T) {
	m, _, listing := seedModel(t)
	m.AddListing(mustNewListing(t, "654321", "9"))

	m.SetListingFilter(func(l *estate.Listing) bool { return false })
	m.SetSearch(estate.NewTagSet("modern"), listing.Range, SearchPersons)
	require.Empty(t, m.FilteredListings())
	_, ok := m.Search()
	require.True(t, ok)

	m.ResetAllLists()

	_, ok = m.Search()
	require.False(t, ok)
	view := m.SortedFilteredListings()
	require.Equal(t, m.Listings(), view)
}

func mustNewListing(t *testing.T, postal, house string) *estate.Listing {
	t.Helper()
	l, err := estate.NewListing(postal, "", house, estate.UnboundedRange(), "")
	require.NoError(t, err)
	return l
}

func TestModel_IndexResolution(t *testing.T) {
	m, person, _ := seedModel(t)

	got, err := m.PersonAt(0)
	require.NoError(t, err)
	require.Same(t, person, got)

	_, err = m.PersonAt(1)
	var notFound *estate.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)

	// indexes resolve against the displayed view, not the raw collection
	m.SetPersonFilter(func(p *estate.Person) bool { return false })
	_, err = m.PersonAt(0)
	require.ErrorAs(t, err, &notFound)

	_, err = m.ListingAt(5)
	require.ErrorAs(t, err, &notFound)
}

func TestModel_EventsAndGeneration(t *testing.T) {
	m := New()
	gen := m.Generation()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := m.Events().Subscribe(ctx)

	m.AddPerson(estate.NewPerson("Amy", "91", "amy@example.com"))
	require.Greater(t, m.Generation(), gen)

	select {
	case event := <-ch:
		require.Equal(t, pubsub.CreatedEvent, event.Type)
		require.Equal(t, "person", event.Payload.Entity)
	case <-time.After(time.Second):
		t.Fatal("no change event received")
	}
}

func TestModel_ViewChangesKeepGeneration(t *testing.T) {
	m := New()
	m.AddPerson(estate.NewPerson("Amy", "91", ""))
	gen := m.Generation()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := m.Events().Subscribe(ctx)

	m.SetPersonFilter(func(*estate.Person) bool { return true })
	m.SetPersonSort(func(a, b *estate.Person) bool { return a.Name < b.Name })
	m.SetSearch(estate.NewTagSet(), estate.UnboundedRange(), SearchPersons)
	m.ResetAllLists()
	require.Equal(t, gen, m.Generation(), "view state must not invalidate match caches")

	select {
	case event := <-ch:
		require.Equal(t, "views", event.Payload.Entity)
	case <-time.After(time.Second):
		t.Fatal("no view-change event received")
	}

	require.NoError(t, m.RemovePerson("91"))
	require.Greater(t, m.Generation(), gen)
}
