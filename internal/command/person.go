package command

import (
	"context"
	"fmt"

	"matchbook/internal/estate"
	"matchbook/internal/log"
)

// AddPerson adds a new contact. The phone number must be unused.
type AddPerson struct {
	mutating
	Name  string
	Phone estate.PersonID
	Email string
}

func (c AddPerson) Execute(ctx context.Context, env Env) (Result, error) {
	if env.Model.HasPerson(c.Phone) {
		return Result{}, ErrDuplicatePerson
	}
	person := estate.NewPerson(c.Name, c.Phone, c.Email)
	env.Model.AddPerson(person)
	log.Info(log.CatCmd, "added person", "phone", c.Phone)
	return Result{Feedback: fmt.Sprintf("New person added: %s (%s)", c.Name, c.Phone)}, nil
}

// EditPerson replaces the details of the person at Index in the
// displayed list. Empty fields keep their current value. A phone change
// rewrites every reference to the old key.
type EditPerson struct {
	mutating
	Index int
	Name  string
	Phone estate.PersonID
	Email string
}

func (c EditPerson) Execute(ctx context.Context, env Env) (Result, error) {
	person, err := env.Model.PersonAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	if c.Phone != "" && c.Phone != person.Phone && env.Model.HasPerson(c.Phone) {
		return Result{}, ErrDuplicatePerson
	}

	oldPhone := person.Phone
	if c.Name != "" {
		person.Name = c.Name
	}
	if c.Email != "" {
		person.Email = c.Email
	}
	if c.Phone != "" && c.Phone != oldPhone {
		person.Phone = c.Phone
		for _, pref := range person.Preferences {
			pref.OwnerPhone = c.Phone
		}
		for _, listing := range env.Model.Listings() {
			if listing.HasOwner(oldPhone) {
				listing.RemoveOwner(oldPhone)
				_ = listing.AddOwner(c.Phone)
			}
		}
	}
	env.Model.SetPerson(person)
	return Result{Feedback: fmt.Sprintf("Edited person: %s (%s)", person.Name, person.Phone)}, nil
}

// DeletePerson removes the person at Index in the displayed list along
// with their preferences and ownership records.
type DeletePerson struct {
	mutating
	Index int
}

func (c DeletePerson) Execute(ctx context.Context, env Env) (Result, error) {
	person, err := env.Model.PersonAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := env.Model.RemovePerson(person.Phone); err != nil {
		return Result{}, err
	}
	log.Info(log.CatCmd, "deleted person", "phone", person.Phone)
	return Result{Feedback: fmt.Sprintf("Deleted person: %s (%s)", person.Name, person.Phone)}, nil
}
