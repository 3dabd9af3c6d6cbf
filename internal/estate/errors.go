package estate

import (
	"fmt"
	"strings"
)

// InvalidRangeError reports a price range whose lower bound exceeds its upper.
type InvalidRangeError struct {
	Lower Price
	Upper Price
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid price range: lower %s exceeds upper %s", e.Lower, e.Upper)
}

// DuplicateTagError reports tag names that were already registered.
type DuplicateTagError struct {
	Names []string
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("tags already registered: %s", strings.Join(e.Names, ", "))
}

// TagNotFoundError reports a lookup of an unregistered tag name.
type TagNotFoundError struct {
	Name string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag not registered: %s", e.Name)
}

// MissingDiscriminatorError reports a listing with neither unit nor house number.
type MissingDiscriminatorError struct {
	PostalCode string
}

func (e *MissingDiscriminatorError) Error() string {
	return fmt.Sprintf("listing %s: unit number or house number required", e.PostalCode)
}

// AmbiguousDiscriminatorError reports a listing with both unit and house number.
type AmbiguousDiscriminatorError struct {
	PostalCode string
}

func (e *AmbiguousDiscriminatorError) Error() string {
	return fmt.Sprintf("listing %s: unit number and house number are mutually exclusive", e.PostalCode)
}

// EntityNotFoundError reports an index or key that resolves to no live entity.
type EntityNotFoundError struct {
	Kind string // "person", "listing", "preference", "tag"
	Key  string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// AlreadyRelatedError reports a relation that already exists, such as
// assigning an owner who is already an owner of the listing.
type AlreadyRelatedError struct {
	Relation string // "owner"
	Subject  string
	Object   string
}

func (e *AlreadyRelatedError) Error() string {
	return fmt.Sprintf("%s is already %s of %s", e.Subject, e.Relation, e.Object)
}
