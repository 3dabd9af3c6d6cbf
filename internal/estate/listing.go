package estate

// ListingID uniquely identifies a listing: the postal code plus its unit
// or house number discriminator.
type ListingID string

// Listing is a property for sale or rent. Exactly one of unit number or
// house number is set. Tags are held as normalized names resolved
// through the registry; owners as phone numbers into the person
// collection.
type Listing struct {
	PostalCode   string
	UnitNumber   string
	HouseNumber  string
	Range        PriceRange
	PropertyName string
	Tags         TagSet
	OwnerPhones  []PersonID
	Available    bool
}

// NewListing constructs a listing, enforcing the unit/house discriminator:
// MissingDiscriminatorError when neither is set, AmbiguousDiscriminatorError
// when both are.
func NewListing(postalCode, unitNumber, houseNumber string, priceRange PriceRange, propertyName string) (*Listing, error) {
	if unitNumber == "" && houseNumber == "" {
		return nil, &MissingDiscriminatorError{PostalCode: postalCode}
	}
	if unitNumber != "" && houseNumber != "" {
		return nil, &AmbiguousDiscriminatorError{PostalCode: postalCode}
	}
	return &Listing{
		PostalCode:   postalCode,
		UnitNumber:   unitNumber,
		HouseNumber:  houseNumber,
		Range:        priceRange,
		PropertyName: propertyName,
		Tags:         make(TagSet),
		Available:    true,
	}, nil
}

// ID derives the listing identity from postal code and discriminator.
func (l *Listing) ID() ListingID {
	if l.UnitNumber != "" {
		return ListingID(l.PostalCode + "/u" + l.UnitNumber)
	}
	return ListingID(l.PostalCode + "/h" + l.HouseNumber)
}

// HasOwner reports whether the person already owns the listing.
func (l *Listing) HasOwner(phone PersonID) bool {
	for _, p := range l.OwnerPhones {
		if p == phone {
			return true
		}
	}
	return false
}

// AddOwner appends the person to the owner list. Fails with
// AlreadyRelatedError when the person is already an owner.
func (l *Listing) AddOwner(phone PersonID) error {
	if l.HasOwner(phone) {
		return &AlreadyRelatedError{Relation: "an owner", Subject: string(phone), Object: string(l.ID())}
	}
	l.OwnerPhones = append(l.OwnerPhones, phone)
	return nil
}

// RemoveOwner drops the person from the owner list. No-op when absent.
func (l *Listing) RemoveOwner(phone PersonID) {
	for i, p := range l.OwnerPhones {
		if p == phone {
			l.OwnerPhones = append(l.OwnerPhones[:i], l.OwnerPhones[i+1:]...)
			return
		}
	}
}

// DisplayName returns the property name when set, otherwise the address
// discriminator.
func (l *Listing) DisplayName() string {
	if l.PropertyName != "" {
		return l.PropertyName
	}
	if l.UnitNumber != "" {
		return l.PostalCode + " #" + l.UnitNumber
	}
	return l.PostalCode + " " + l.HouseNumber
}
