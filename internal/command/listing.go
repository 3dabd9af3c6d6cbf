package command

import (
	"context"
	"fmt"

	"matchbook/internal/estate"
	"matchbook/internal/log"
)

// AddListing adds a new listing, optionally registering new tags and
// attaching both existing and new ones to it.
type AddListing struct {
	mutating
	PostalCode   string
	UnitNumber   string
	HouseNumber  string
	Range        estate.PriceRange
	PropertyName string
	Tags         []string
	NewTags      []string
}

func (c AddListing) Execute(ctx context.Context, env Env) (Result, error) {
	listing, err := estate.NewListing(c.PostalCode, c.UnitNumber, c.HouseNumber, c.Range, c.PropertyName)
	if err != nil {
		return Result{}, err
	}
	if env.Model.HasListing(listing.ID()) {
		return Result{}, ErrDuplicateListing
	}
	if err := checkTagSets(env, c.Tags, c.NewTags); err != nil {
		return Result{}, err
	}

	if len(c.NewTags) > 0 {
		if err := env.Model.AddTags(c.NewTags...); err != nil {
			return Result{}, err
		}
	}
	env.Model.AddListing(listing)
	if err := env.Model.TagListing(listing, append(append([]string{}, c.Tags...), c.NewTags...)...); err != nil {
		return Result{}, err
	}
	log.Info(log.CatCmd, "added listing", "id", listing.ID())
	return Result{Feedback: fmt.Sprintf("New listing added: %s", listing.DisplayName())}, nil
}

// DeleteListing removes the listing at Index in the displayed list,
// detaching it from every tag and owner.
type DeleteListing struct {
	mutating
	Index int
}

func (c DeleteListing) Execute(ctx context.Context, env Env) (Result, error) {
	listing, err := env.Model.ListingAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := env.Model.RemoveListing(listing.ID()); err != nil {
		return Result{}, err
	}
	log.Info(log.CatCmd, "deleted listing", "id", listing.ID())
	return Result{Feedback: fmt.Sprintf("Deleted listing: %s", listing.DisplayName())}, nil
}

// MarkAvailable flags the listing at Index as available.
type MarkAvailable struct {
	mutating
	Index int
}

func (c MarkAvailable) Execute(ctx context.Context, env Env) (Result, error) {
	return setAvailability(env, c.Index, true)
}

// MarkUnavailable flags the listing at Index as unavailable.
type MarkUnavailable struct {
	mutating
	Index int
}

func (c MarkUnavailable) Execute(ctx context.Context, env Env) (Result, error) {
	return setAvailability(env, c.Index, false)
}

func setAvailability(env Env, index int, available bool) (Result, error) {
	listing, err := env.Model.ListingAt(index)
	if err != nil {
		return Result{}, err
	}
	listing.Available = available
	env.Model.SetListing(listing)
	state := "available"
	if !available {
		state = "unavailable"
	}
	return Result{Feedback: fmt.Sprintf("Listing %s marked %s", listing.DisplayName(), state)}, nil
}

// AddOwner assigns the person at PersonIndex as an owner of the listing
// at ListingIndex. Fails when the relation already exists.
type AddOwner struct {
	mutating
	PersonIndex  int
	ListingIndex int
}

func (c AddOwner) Execute(ctx context.Context, env Env) (Result, error) {
	person, err := env.Model.PersonAt(c.PersonIndex)
	if err != nil {
		return Result{}, err
	}
	listing, err := env.Model.ListingAt(c.ListingIndex)
	if err != nil {
		return Result{}, err
	}
	if err := listing.AddOwner(person.Phone); err != nil {
		return Result{}, err
	}
	person.AddListing(listing.ID())
	env.Model.SetListing(listing)
	return Result{Feedback: fmt.Sprintf("%s now owns %s", person.Name, listing.DisplayName())}, nil
}

// DeleteOwner removes the ownership relation between the person at
// PersonIndex and the listing at ListingIndex.
type DeleteOwner struct {
	mutating
	PersonIndex  int
	ListingIndex int
}

func (c DeleteOwner) Execute(ctx context.Context, env Env) (Result, error) {
	person, err := env.Model.PersonAt(c.PersonIndex)
	if err != nil {
		return Result{}, err
	}
	listing, err := env.Model.ListingAt(c.ListingIndex)
	if err != nil {
		return Result{}, err
	}
	if !listing.HasOwner(person.Phone) {
		return Result{}, &estate.EntityNotFoundError{Kind: "owner", Key: string(person.Phone)}
	}
	listing.RemoveOwner(person.Phone)
	person.RemoveListing(listing.ID())
	env.Model.SetListing(listing)
	return Result{Feedback: fmt.Sprintf("%s no longer owns %s", person.Name, listing.DisplayName())}, nil
}
