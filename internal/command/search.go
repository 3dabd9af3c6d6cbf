package command

import (
	"context"
	"fmt"

	"matchbook/internal/estate"
	"matchbook/internal/model"
)

func checkTagsExist(env Env, tags estate.TagSet) error {
	return checkTagSets(env, tags.Names(), nil)
}

// searchCompatible is the predicate shared by the search commands: the
// entity's range must overlap the query range, and when the query
// carries tags at least one must be shared.
func searchCompatible(tags estate.TagSet, queryRange estate.PriceRange, candidateTags estate.TagSet, candidateRange estate.PriceRange) bool {
	if !queryRange.Overlaps(candidateRange) {
		return false
	}
	return len(tags) == 0 || tags.OverlapCount(candidateTags) > 0
}

// SearchListing filters the listing pane to listings overlapping the
// given tags and price range.
type SearchListing struct {
	Tags  estate.TagSet
	Range estate.PriceRange
}

func (c SearchListing) Execute(ctx context.Context, env Env) (Result, error) {
	if err := checkTagsExist(env, c.Tags); err != nil {
		return Result{}, err
	}

	env.Model.ResetAllLists()
	env.Model.SetListingFilter(func(l *estate.Listing) bool {
		return searchCompatible(c.Tags, c.Range, l.Tags, l.Range)
	})
	env.Model.SetSearch(c.Tags, c.Range, model.SearchListings)

	n := len(env.Model.FilteredListings())
	return Result{Feedback: fmt.Sprintf("%d listing(s) found", n)}, nil
}

// SearchPerson filters the person pane to persons holding at least one
// preference compatible with the given tags and price range.
type SearchPerson struct {
	Tags  estate.TagSet
	Range estate.PriceRange
}

func (c SearchPerson) Execute(ctx context.Context, env Env) (Result, error) {
	if err := checkTagsExist(env, c.Tags); err != nil {
		return Result{}, err
	}

	env.Model.ResetAllLists()
	env.Model.SetPersonFilter(func(p *estate.Person) bool {
		for _, pref := range p.Preferences {
			if searchCompatible(c.Tags, c.Range, pref.Tags, pref.Range) {
				return true
			}
		}
		return false
	})
	env.Model.SetSearch(c.Tags, c.Range, model.SearchPersons)

	n := len(env.Model.FilteredPersons())
	return Result{Feedback: fmt.Sprintf("%d person(s) found", n)}, nil
}

// SearchOwnerListing filters the listing pane to listings owned by the
// person at Index.
type SearchOwnerListing struct {
	Index int
}

func (c SearchOwnerListing) Execute(ctx context.Context, env Env) (Result, error) {
	person, err := env.Model.PersonAt(c.Index)
	if err != nil {
		return Result{}, err
	}

	owned := make(map[estate.ListingID]struct{}, len(person.ListingIDs))
	for _, id := range person.ListingIDs {
		owned[id] = struct{}{}
	}

	env.Model.ResetAllLists()
	env.Model.SetListingFilter(func(l *estate.Listing) bool {
		_, ok := owned[l.ID()]
		return ok
	})

	n := len(env.Model.FilteredListings())
	return Result{Feedback: fmt.Sprintf("%d listing(s) owned by %s", n, person.Name)}, nil
}
