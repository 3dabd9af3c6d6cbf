// Package command implements the user operations of the tool as
// executable values over the model. Inputs are already-validated value
// objects; every mutating command checks all of its preconditions
// before touching any state, so a failed command leaves the model
// exactly as it found it.
package command

import (
	"context"
	"errors"

	"matchbook/internal/matcher"
	"matchbook/internal/model"
)

// Command layer errors for conditions the core error kinds do not cover.
var (
	ErrDuplicatePerson  = errors.New("a person with this phone number already exists")
	ErrDuplicateListing = errors.New("this listing already exists")
)

// Result carries the feedback line shown to the user.
type Result struct {
	Feedback string
}

// Env holds the shared dependencies commands execute against.
type Env struct {
	Model   *model.Model
	Matches *matcher.Cached
}

// Command is a single user operation.
type Command interface {
	Execute(ctx context.Context, env Env) (Result, error)
}

// Mutator marks commands that change model state; the application
// persists the store after each successful one.
type Mutator interface {
	Command
	Mutates() bool
}

// mutating is embedded by commands that change state.
type mutating struct{}

func (mutating) Mutates() bool { return true }
