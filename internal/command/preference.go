package command

import (
	"context"
	"fmt"
	"strings"

	"matchbook/internal/estate"
)

// resolvePreference resolves (person index, preference index) against
// the displayed person list.
func resolvePreference(env Env, personIndex, prefIndex int) (*estate.Person, *estate.PropertyPreference, error) {
	person, err := env.Model.PersonAt(personIndex)
	if err != nil {
		return nil, nil, err
	}
	pref := person.PreferenceAt(prefIndex)
	if pref == nil {
		return nil, nil, &estate.EntityNotFoundError{Kind: "preference", Key: fmt.Sprintf("index %d", prefIndex+1)}
	}
	return person, pref, nil
}

// AddPreference attaches a new property preference to the person at
// PersonIndex, with existing tags and freshly registered new tags.
type AddPreference struct {
	mutating
	PersonIndex int
	Range       estate.PriceRange
	Tags        []string
	NewTags     []string
}

func (c AddPreference) Execute(ctx context.Context, env Env) (Result, error) {
	person, err := env.Model.PersonAt(c.PersonIndex)
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
	pref := estate.NewPropertyPreference(c.Range)
	env.Model.AddPreference(person, pref)
	if err := env.Model.TagPreference(pref, append(append([]string{}, c.Tags...), c.NewTags...)...); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("New property preference added to %s", person.Name)}, nil
}

// DeletePreference removes the preference at PreferenceIndex from the
// person at PersonIndex.
type DeletePreference struct {
	mutating
	PersonIndex     int
	PreferenceIndex int
}

func (c DeletePreference) Execute(ctx context.Context, env Env) (Result, error) {
	person, pref, err := resolvePreference(env, c.PersonIndex, c.PreferenceIndex)
	if err != nil {
		return Result{}, err
	}
	if err := env.Model.RemovePreference(person, pref.ID); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Deleted preference %d of %s", c.PreferenceIndex+1, person.Name)}, nil
}

// AddPreferenceTag attaches tags to an existing preference.
type AddPreferenceTag struct {
	mutating
	PersonIndex     int
	PreferenceIndex int
	Tags            []string
	NewTags         []string
}

func (c AddPreferenceTag) Execute(ctx context.Context, env Env) (Result, error) {
	person, pref, err := resolvePreference(env, c.PersonIndex, c.PreferenceIndex)
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
	if err := env.Model.TagPreference(pref, append(append([]string{}, c.Tags...), c.NewTags...)...); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Tagged preference %d of %s: %s",
		c.PreferenceIndex+1, person.Name, strings.Join(pref.Tags.Names(), ", "))}, nil
}

// DeletePreferenceTag detaches tags from an existing preference.
type DeletePreferenceTag struct {
	mutating
	PersonIndex     int
	PreferenceIndex int
	Tags            []string
}

func (c DeletePreferenceTag) Execute(ctx context.Context, env Env) (Result, error) {
	person, pref, err := resolvePreference(env, c.PersonIndex, c.PreferenceIndex)
	if err != nil {
		return Result{}, err
	}
	for _, name := range c.Tags {
		if !pref.Tags.Has(name) {
			return Result{}, &estate.TagNotFoundError{Name: name}
		}
	}
	if err := env.Model.UntagPreference(pref, c.Tags...); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Removed tags from preference %d of %s: %s",
		c.PreferenceIndex+1, person.Name, strings.Join(c.Tags, ", "))}, nil
}

// OverwritePreferenceTag replaces a preference's tag set wholesale.
type OverwritePreferenceTag struct {
	mutating
	PersonIndex     int
	PreferenceIndex int
	Tags            []string
	NewTags         []string
}

func (c OverwritePreferenceTag) Execute(ctx context.Context, env Env) (Result, error) {
	person, pref, err := resolvePreference(env, c.PersonIndex, c.PreferenceIndex)
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
	if err := env.Model.OverwritePreferenceTags(pref, append(append([]string{}, c.Tags...), c.NewTags...)...); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Preference %d of %s tags are now: %s",
		c.PreferenceIndex+1, person.Name, strings.Join(pref.Tags.Names(), ", "))}, nil
}
