package command

import (
	"context"
	"fmt"

	"matchbook/internal/estate"
	"matchbook/internal/log"
	"matchbook/internal/matcher"
	"matchbook/internal/model"
)

// MatchListing finds the persons whose preferences are compatible with
// the listing at Index, installs them as the filtered, ranked person
// view, and records the active search. The next list command resets it.
type MatchListing struct {
	Index int
}

func (c MatchListing) Execute(ctx context.Context, env Env) (Result, error) {
	listing, err := env.Model.ListingAt(c.Index)
	if err != nil {
		return Result{}, err
	}

	env.Model.ResetAllLists()

	var matches []matcher.PersonMatch
	if env.Matches != nil {
		matches = env.Matches.PersonsForListing(ctx, env.Model, listing)
	} else {
		matches = matcher.MatchPersonsForListing(listing, env.Model.Persons())
	}

	rank := make(map[*estate.Person]int, len(matches))
	for i, m := range matches {
		rank[m.Person] = i
	}
	env.Model.SetPersonFilter(func(p *estate.Person) bool {
		_, ok := rank[p]
		return ok
	})
	env.Model.SetPersonSort(func(a, b *estate.Person) bool {
		return rank[a] < rank[b]
	})
	env.Model.SetSearch(listing.Tags, listing.Range, model.SearchPersons)

	log.Debug(log.CatMatch, "matched persons for listing", "listing", listing.ID(), "count", len(matches))
	return Result{Feedback: fmt.Sprintf("Matched %d person(s) for listing %s", len(matches), listing.DisplayName())}, nil
}

// MatchPerson is the dual query: listings compatible with the given
// preference of the person at PersonIndex.
type MatchPerson struct {
	PersonIndex     int
	PreferenceIndex int
}

func (c MatchPerson) Execute(ctx context.Context, env Env) (Result, error) {
	person, pref, err := resolvePreference(env, c.PersonIndex, c.PreferenceIndex)
	if err != nil {
		return Result{}, err
	}

	env.Model.ResetAllLists()

	var matches []matcher.ListingMatch
	if env.Matches != nil {
		matches = env.Matches.ListingsForPreference(ctx, env.Model, pref)
	} else {
		matches = matcher.MatchListingsForPreference(pref, env.Model.Listings())
	}

	rank := make(map[*estate.Listing]int, len(matches))
	for i, m := range matches {
		rank[m.Listing] = i
	}
	env.Model.SetListingFilter(func(l *estate.Listing) bool {
		_, ok := rank[l]
		return ok
	})
	env.Model.SetListingSort(func(a, b *estate.Listing) bool {
		return rank[a] < rank[b]
	})
	env.Model.SetSearch(pref.Tags, pref.Range, model.SearchListings)

	log.Debug(log.CatMatch, "matched listings for preference", "preference", pref.ID, "count", len(matches))
	return Result{Feedback: fmt.Sprintf("Matched %d listing(s) for %s's preference %d",
		len(matches), person.Name, c.PreferenceIndex+1)}, nil
}
