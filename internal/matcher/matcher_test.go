package matcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"matchbook/internal/estate"
	"matchbook/internal/model"
)

func mustRange(t *testing.T, lower, upper estate.Price) estate.PriceRange {
	t.Helper()
	r, err := estate.NewPriceRange(lower, upper)
	require.NoError(t, err)
	return r
}

func newListing(t *testing.T, postal, house string, r estate.PriceRange, tags ...string) *estate.Listing {
	t.Helper()
	l, err := estate.NewListing(postal, "", house, r, "")
	require.NoError(t, err)
	l.Tags = estate.NewTagSet(tags...)
	return l
}

func newPerson(t *testing.T, name, phone string, prefRange estate.PriceRange, tags ...string) *estate.Person {
	t.Helper()
	p := estate.NewPerson(name, estate.PersonID(phone), name+"@example.com")
	pref := estate.NewPropertyPreference(prefRange)
	pref.Tags = estate.NewTagSet(tags...)
	p.AddPreference(pref)
	return p
}

func TestMatchPersonsForListing_TagAndRange(t *testing.T) {
	// Listing [100000,200000] tagged modern; person with preference
	// [150000,250000] tagged modern matches. Retagging the preference
	// to luxury alone must exclude them even though the ranges still
	// overlap.
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000), "modern")
	person := newPerson(t, "John Doe", "98765432", mustRange(t, 150000, 250000), "modern")

	matches := MatchPersonsForListing(listing, []*estate.Person{person})
	require.Len(t, matches, 1)
	require.Same(t, person, matches[0].Person)
	require.Equal(t, 1, matches[0].TagOverlap)

	person.Preferences[0].Tags = estate.NewTagSet("luxury")
	require.Empty(t, MatchPersonsForListing(listing, []*estate.Person{person}))
}

func TestMatchPersonsForListing_RangeDisjoint(t *testing.T) {
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000))
	person := newPerson(t, "John Doe", "98765432", mustRange(t, 300000, 400000))

	require.Empty(t, MatchPersonsForListing(listing, []*estate.Person{person}))
}

func TestMatchPersonsForListing_QuerySideWildcard(t *testing.T) {
	// A tagless listing accepts any preference that fits on price.
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000))
	person := newPerson(t, "John Doe", "98765432", mustRange(t, 150000, 250000), "luxury")

	matches := MatchPersonsForListing(listing, []*estate.Person{person})
	require.Len(t, matches, 1)
	require.Equal(t, 0, matches[0].TagOverlap)
}

func TestMatchPersonsForListing_CandidateSideNotWildcard(t *testing.T) {
	// A tagless preference is excluded by a tagged listing: the
	// wildcard applies to the query side only.
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000), "modern")
	person := newPerson(t, "John Doe", "98765432", mustRange(t, 150000, 250000))

	require.Empty(t, MatchPersonsForListing(listing, []*estate.Person{person}))
}

func TestMatchPersonsForListing_Ordering(t *testing.T) {
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000), "modern", "pool")

	// two-tag overlap beats one-tag overlap regardless of proximity
	twoTags := newPerson(t, "Amy", "90000001", mustRange(t, 500000, 600000), "modern", "pool")
	oneTagNear := newPerson(t, "Ben", "90000002", mustRange(t, 140000, 160000), "modern")
	oneTagFar := newPerson(t, "Cara", "90000003", mustRange(t, 190000, 400000), "pool")

	// but the two-tag range must still overlap the listing's
	twoTags.Preferences[0].Range = mustRange(t, 150000, 600000)

	got := Persons(MatchPersonsForListing(listing, []*estate.Person{oneTagFar, twoTags, oneTagNear}))
	require.Equal(t, []*estate.Person{twoTags, oneTagNear, oneTagFar}, got)
}

func TestMatchPersonsForListing_InsertionOrderStable(t *testing.T) {
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000))
	r := mustRange(t, 100000, 200000)
	a := newPerson(t, "Amy", "90000001", r)
	b := newPerson(t, "Ben", "90000002", r)
	c := newPerson(t, "Cara", "90000003", r)

	got := Persons(MatchPersonsForListing(listing, []*estate.Person{a, b, c}))
	require.Equal(t, []*estate.Person{a, b, c}, got)
}

func TestMatchPersonsForListing_BestPreferencePicked(t *testing.T) {
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000), "modern", "pool")

	person := estate.NewPerson("John Doe", "98765432", "johndoe@example.com")
	weak := estate.NewPropertyPreference(mustRange(t, 150000, 250000))
	weak.Tags = estate.NewTagSet("modern")
	strong := estate.NewPropertyPreference(mustRange(t, 150000, 250000))
	strong.Tags = estate.NewTagSet("modern", "pool")
	person.AddPreference(weak)
	person.AddPreference(strong)

	matches := MatchPersonsForListing(listing, []*estate.Person{person})
	require.Len(t, matches, 1)
	require.Same(t, strong, matches[0].Preference)
	require.Equal(t, 2, matches[0].TagOverlap)
}

func TestMatchPersonsForListing_NeverIncludesIncompatible(t *testing.T) {
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000), "modern")
	persons := []*estate.Person{
		newPerson(t, "Amy", "90000001", mustRange(t, 150000, 250000), "modern"),
		newPerson(t, "Ben", "90000002", mustRange(t, 300000, 400000), "modern"),
		newPerson(t, "Cara", "90000003", mustRange(t, 150000, 250000), "luxury"),
		estate.NewPerson("Dan", "90000004", "dan@example.com"), // no preferences at all
	}

	for _, m := range MatchPersonsForListing(listing, persons) {
		require.True(t, m.Preference.Range.Overlaps(listing.Range))
		require.Positive(t, listing.Tags.OverlapCount(m.Preference.Tags))
	}
}

func TestMatchListingsForPreference_Dual(t *testing.T) {
	pref := estate.NewPropertyPreference(mustRange(t, 150000, 250000))
	pref.Tags = estate.NewTagSet("modern")

	match := newListing(t, "100001", "1", mustRange(t, 100000, 200000), "modern", "garden")
	wrongTag := newListing(t, "100002", "2", mustRange(t, 100000, 200000), "luxury")
	wrongRange := newListing(t, "100003", "3", mustRange(t, 300000, 400000), "modern")
	tagless := newListing(t, "100004", "4", mustRange(t, 100000, 200000))

	got := Listings(MatchListingsForPreference(pref, []*estate.Listing{match, wrongTag, wrongRange, tagless}))
	// tagless candidate excluded: wildcard is query-side only
	require.Equal(t, []*estate.Listing{match}, got)
}

func TestMatchListingsForPreference_QuerySideWildcard(t *testing.T) {
	pref := estate.NewPropertyPreference(mustRange(t, 150000, 250000))

	tagged := newListing(t, "100001", "1", mustRange(t, 100000, 200000), "modern")
	tagless := newListing(t, "100002", "2", mustRange(t, 100000, 200000))

	got := Listings(MatchListingsForPreference(pref, []*estate.Listing{tagged, tagless}))
	require.Equal(t, []*estate.Listing{tagged, tagless}, got)
}

func TestMatchListingsForPreference_ProximityOrdering(t *testing.T) {
	pref := estate.NewPropertyPreference(mustRange(t, 100000, 200000)) // reference point 150000

	near := newListing(t, "100001", "1", mustRange(t, 140000, 160000))
	far := newListing(t, "100002", "2", mustRange(t, 190000, 410000))

	got := Listings(MatchListingsForPreference(pref, []*estate.Listing{far, near}))
	require.Equal(t, []*estate.Listing{near, far}, got)
}

func TestCached_ServesAndInvalidatesByGeneration(t *testing.T) {
	ctx := context.Background()
	m := model.New()
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000))
	m.AddListing(listing)
	person := newPerson(t, "John Doe", "98765432", mustRange(t, 150000, 250000))
	m.AddPerson(person)

	cache := NewCached()
	first := cache.PersonsForListing(ctx, m, listing)
	require.Len(t, first, 1)
	second := cache.PersonsForListing(ctx, m, listing)
	require.Equal(t, first, second)

	// a mutation bumps the generation, so the next query recomputes
	m.AddPerson(newPerson(t, "Ben", "90000002", mustRange(t, 150000, 250000)))
	third := cache.PersonsForListing(ctx, m, listing)
	require.Len(t, third, 2)

	cache.Flush(ctx)
	require.Len(t, cache.PersonsForListing(ctx, m, listing), 2)
}

func TestCached_ViewChangesDoNotInvalidate(t *testing.T) {
	ctx := context.Background()
	m := model.New()
	listing := newListing(t, "123456", "123", mustRange(t, 100000, 200000))
	m.AddListing(listing)
	m.AddPerson(newPerson(t, "John Doe", "98765432", mustRange(t, 150000, 250000)))

	cache := NewCached()
	first := cache.PersonsForListing(ctx, m, listing)
	require.Len(t, first, 1)

	// Installing filters, sorts and a search is what the match commands
	// do around every query; none of it touches the raw collections.
	m.ResetAllLists()
	m.SetPersonFilter(func(*estate.Person) bool { return true })
	m.SetPersonSort(func(a, b *estate.Person) bool { return a.Name < b.Name })
	m.SetSearch(listing.Tags, listing.Range, model.SearchPersons)

	second := cache.PersonsForListing(ctx, m, listing)
	require.Len(t, second, 1)
	require.True(t, &first[0] == &second[0], "expected result served from cache")
}
