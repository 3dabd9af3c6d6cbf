package command

import (
	"context"
	"fmt"
	"strings"

	"matchbook/internal/estate"
)

// checkTagSets validates the shared precondition of tag-attaching
// commands: every name in tags must already be registered, every name
// in newTags must not be.
func checkTagSets(env Env, tags, newTags []string) error {
	for _, name := range tags {
		if !env.Model.Registry().Exists(name) {
			return &estate.TagNotFoundError{Name: name}
		}
	}
	var dup []string
	for _, name := range newTags {
		if env.Model.Registry().Exists(name) {
			dup = append(dup, name)
		}
	}
	if len(dup) > 0 {
		return &estate.DuplicateTagError{Names: dup}
	}
	return nil
}

// AddTag registers new tag names in the shared vocabulary.
type AddTag struct {
	mutating
	Names []string
}

func (c AddTag) Execute(ctx context.Context, env Env) (Result, error) {
	if err := env.Model.AddTags(c.Names...); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("New tags added: %s", strings.Join(c.Names, ", "))}, nil
}

// DeleteTag removes a tag from the vocabulary, detaching it from every
// listing and preference that used it.
type DeleteTag struct {
	mutating
	Name string
}

func (c DeleteTag) Execute(ctx context.Context, env Env) (Result, error) {
	if err := env.Model.RemoveTag(c.Name); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Deleted tag: %s", c.Name)}, nil
}

// AddListingTag attaches tags (and freshly registered new tags) to the
// listing at Index.
type AddListingTag struct {
	mutating
	Index   int
	Tags    []string
	NewTags []string
}

func (c AddListingTag) Execute(ctx context.Context, env Env) (Result, error) {
	listing, err := env.Model.ListingAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := checkTagSets(env, c.Tags, c.NewTags); err != nil {
		return Result{}, err
	}
	if len(c.NewTags) > 0 {
		if err := env.Model.AddTags(c.NewTags...); err != nil {
			return Result{}, err
		}
	}
	if err := env.Model.TagListing(listing, append(append([]string{}, c.Tags...), c.NewTags...)...); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Tagged listing %s: %s", listing.DisplayName(), strings.Join(listing.Tags.Names(), ", "))}, nil
}

// DeleteListingTag detaches tags from the listing at Index.
type DeleteListingTag struct {
	mutating
	Index int
	Tags  []string
}

func (c DeleteListingTag) Execute(ctx context.Context, env Env) (Result, error) {
	listing, err := env.Model.ListingAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	for _, name := range c.Tags {
		if !listing.Tags.Has(name) {
			return Result{}, &estate.TagNotFoundError{Name: name}
		}
	}
	if err := env.Model.UntagListing(listing, c.Tags...); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Removed tags from %s: %s", listing.DisplayName(), strings.Join(c.Tags, ", "))}, nil
}

// OverwriteListingTag replaces the listing's tag set with the given
// tags, registering new ones first.
type OverwriteListingTag struct {
	mutating
	Index   int
	Tags    []string
	NewTags []string
}

func (c OverwriteListingTag) Execute(ctx context.Context, env Env) (Result, error) {
	listing, err := env.Model.ListingAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := checkTagSets(env, c.Tags, c.NewTags); err != nil {
		return Result{}, err
	}
	if len(c.NewTags) > 0 {
		if err := env.Model.AddTags(c.NewTags...); err != nil {
			return Result{}, err
		}
	}
	if err := env.Model.OverwriteListingTags(listing, append(append([]string{}, c.Tags...), c.NewTags...)...); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Listing %s tags are now: %s", listing.DisplayName(), strings.Join(listing.Tags.Names(), ", "))}, nil
}
