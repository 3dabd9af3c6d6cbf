package command

import (
	"context"
	"fmt"
)

// The list commands clear any active match/search state so the panes
// show the full collections again.

type ListPersons struct{}

func (ListPersons) Execute(ctx context.Context, env Env) (Result, error) {
	env.Model.ResetAllLists()
	return Result{Feedback: fmt.Sprintf("Listed %d person(s)", len(env.Model.FilteredPersons()))}, nil
}

type ListListings struct{}

func (ListListings) Execute(ctx context.Context, env Env) (Result, error) {
	env.Model.ResetAllLists()
	return Result{Feedback: fmt.Sprintf("Listed %d listing(s)", len(env.Model.FilteredListings()))}, nil
}

type ListTags struct{}

func (ListTags) Execute(ctx context.Context, env Env) (Result, error) {
	env.Model.ResetAllLists()
	return Result{Feedback: fmt.Sprintf("Listed %d tag(s)", len(env.Model.FilteredTags()))}, nil
}
