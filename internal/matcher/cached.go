package matcher

import (
	"context"
	"fmt"
	"time"

	"matchbook/internal/cachemanager"
	"matchbook/internal/estate"
	"matchbook/internal/log"
	"matchbook/internal/model"
)

const matchTTL = time.Minute

// Cached memoizes match queries. Keys embed the model's generation
// counter, so results computed against earlier state can never be
// served after a mutation; Flush exists for callers that want the
// memory back immediately.
type Cached struct {
	persons  *cachemanager.InMemoryCacheManager[string, []PersonMatch]
	listings *cachemanager.InMemoryCacheManager[string, []ListingMatch]
}

// NewCached returns a match cache ready for use.
func NewCached() *Cached {
	return &Cached{
		persons: cachemanager.NewInMemoryCacheManager[string, []PersonMatch](
			"match-persons", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
		listings: cachemanager.NewInMemoryCacheManager[string, []ListingMatch](
			"match-listings", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
	}
}

// PersonsForListing returns MatchPersonsForListing over the model's raw
// person collection, cached per (listing, model generation).
func (c *Cached) PersonsForListing(ctx context.Context, m *model.Model, listing *estate.Listing) []PersonMatch {
	key := fmt.Sprintf("%s@%d", listing.ID(), m.Generation())
	if cached, ok := c.persons.Get(ctx, key); ok {
		return cached
	}
	matches := MatchPersonsForListing(listing, m.Persons())
	c.persons.Set(ctx, key, matches, matchTTL)
	log.Debug(log.CatMatch, "computed person matches", "listing", listing.ID(), "count", len(matches))
	return matches
}

// ListingsForPreference returns MatchListingsForPreference over the
// model's raw listing collection, cached per (preference, generation).
func (c *Cached) ListingsForPreference(ctx context.Context, m *model.Model, pref *estate.PropertyPreference) []ListingMatch {
	key := fmt.Sprintf("%s@%d", pref.ID, m.Generation())
	if cached, ok := c.listings.Get(ctx, key); ok {
		return cached
	}
	matches := MatchListingsForPreference(pref, m.Listings())
	c.listings.Set(ctx, key, matches, matchTTL)
	log.Debug(log.CatMatch, "computed listing matches", "preference", pref.ID, "count", len(matches))
	return matches
}

// Flush drops every cached result.
func (c *Cached) Flush(ctx context.Context) {
	_ = c.persons.Flush(ctx)
	_ = c.listings.Flush(ctx)
}
