// Package matcher implements the two symmetric match queries: persons
// whose preferences fit a listing, and listings that fit a preference.
//
// Compatibility is computed from the query entity itself, never from
// view state: a preference is compatible with a listing when their
// price ranges overlap and, unless the query side carries no tags, the
// two tag sets intersect. The tag wildcard applies to the query side
// only: a tagless listing accepts any preference when matching persons
// for that listing, but a tagless preference is excluded by a tagged
// listing. The dual holds with roles reversed.
package matcher

import (
	"sort"

	"matchbook/internal/estate"
)

// PersonMatch pairs a qualifying person with the preference that
// matched best and the rank inputs derived from it.
type PersonMatch struct {
	Person     *estate.Person
	Preference *estate.PropertyPreference
	TagOverlap int
	Proximity  estate.Price
}

// ListingMatch pairs a qualifying listing with its rank inputs.
type ListingMatch struct {
	Listing    *estate.Listing
	TagOverlap int
	Proximity  estate.Price
}

// compatible reports whether a preference fits a listing, with the tag
// wildcard on the query side: queryTags is the tag set of whichever
// entity the query was issued for.
func compatible(pref *estate.PropertyPreference, listing *estate.Listing, queryTags, candidateTags estate.TagSet) bool {
	if !pref.Range.Overlaps(listing.Range) {
		return false
	}
	if len(queryTags) == 0 {
		return true
	}
	return queryTags.OverlapCount(candidateTags) > 0
}

// MatchPersonsForListing returns the persons with at least one
// preference compatible with the listing, ordered by descending tag
// overlap of their best-matching preference, then by price-range
// proximity to the listing's range, then by insertion order.
func MatchPersonsForListing(listing *estate.Listing, persons []*estate.Person) []PersonMatch {
	var matches []PersonMatch
	for _, person := range persons {
		best, overlap, ok := bestPreference(person, listing)
		if !ok {
			continue
		}
		matches = append(matches, PersonMatch{
			Person:     person,
			Preference: best,
			TagOverlap: overlap,
			Proximity:  best.Range.ProximityTo(listing.Range),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.TagOverlap != b.TagOverlap {
			return a.TagOverlap > b.TagOverlap
		}
		if a.Proximity != b.Proximity {
			return a.Proximity < b.Proximity
		}
		return a.Preference.Range.CompareBounds(b.Preference.Range) < 0
	})
	return matches
}

// bestPreference picks the person's compatible preference with the
// highest tag overlap, breaking ties by proximity to the listing's
// range and then by preference order.
func bestPreference(person *estate.Person, listing *estate.Listing) (*estate.PropertyPreference, int, bool) {
	var (
		best        *estate.PropertyPreference
		bestOverlap int
		bestProx    estate.Price
	)
	for _, pref := range person.Preferences {
		if !compatible(pref, listing, listing.Tags, pref.Tags) {
			continue
		}
		overlap := listing.Tags.OverlapCount(pref.Tags)
		prox := pref.Range.ProximityTo(listing.Range)
		if best == nil || overlap > bestOverlap || (overlap == bestOverlap && prox < bestProx) {
			best, bestOverlap, bestProx = pref, overlap, prox
		}
	}
	return best, bestOverlap, best != nil
}

// MatchListingsForPreference is the dual query: listings compatible with
// the preference, same ordering rule with roles reversed.
func MatchListingsForPreference(pref *estate.PropertyPreference, listings []*estate.Listing) []ListingMatch {
	var matches []ListingMatch
	for _, listing := range listings {
		if !compatible(pref, listing, pref.Tags, listing.Tags) {
			continue
		}
		matches = append(matches, ListingMatch{
			Listing:    listing,
			TagOverlap: pref.Tags.OverlapCount(listing.Tags),
			Proximity:  listing.Range.ProximityTo(pref.Range),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.TagOverlap != b.TagOverlap {
			return a.TagOverlap > b.TagOverlap
		}
		if a.Proximity != b.Proximity {
			return a.Proximity < b.Proximity
		}
		return a.Listing.Range.CompareBounds(b.Listing.Range) < 0
	})
	return matches
}

// Persons strips rank data, returning just the ordered persons.
func Persons(matches []PersonMatch) []*estate.Person {
	out := make([]*estate.Person, len(matches))
	for i, m := range matches {
		out[i] = m.Person
	}
	return out
}

// Listings strips rank data, returning just the ordered listings.
func Listings(matches []ListingMatch) []*estate.Listing {
	out := make([]*estate.Listing, len(matches))
	for i, m := range matches {
		out[i] = m.Listing
	}
	return out
}
