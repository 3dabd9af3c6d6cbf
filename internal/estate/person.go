package estate

// PersonID is a person's phone number, the persisted foreign key.
type PersonID string

// Person is a contact. A person exclusively owns their property
// preferences; owned listings are referenced by ID.
type Person struct {
	Name        string
	Phone       PersonID
	Email       string
	Preferences []*PropertyPreference
	ListingIDs  []ListingID
}

// NewPerson constructs a person with no preferences or listings.
func NewPerson(name string, phone PersonID, email string) *Person {
	return &Person{Name: name, Phone: phone, Email: email}
}

// ID returns the person's identity key.
func (p *Person) ID() PersonID {
	return p.Phone
}

// AddPreference appends a preference owned by this person.
func (p *Person) AddPreference(pref *PropertyPreference) {
	pref.OwnerPhone = p.Phone
	p.Preferences = append(p.Preferences, pref)
}

// RemovePreference drops the preference with the given ID and returns
// it, or nil when the person holds no such preference.
func (p *Person) RemovePreference(id PreferenceID) *PropertyPreference {
	for i, pref := range p.Preferences {
		if pref.ID == id {
			p.Preferences = append(p.Preferences[:i], p.Preferences[i+1:]...)
			return pref
		}
	}
	return nil
}

// PreferenceAt returns the preference at the zero-based position, or nil
// when out of bounds.
func (p *Person) PreferenceAt(i int) *PropertyPreference {
	if i < 0 || i >= len(p.Preferences) {
		return nil
	}
	return p.Preferences[i]
}

// HasListing reports whether the person owns the listing.
func (p *Person) HasListing(id ListingID) bool {
	for _, l := range p.ListingIDs {
		if l == id {
			return true
		}
	}
	return false
}

// AddListing records ownership of the listing. Idempotent.
func (p *Person) AddListing(id ListingID) {
	if p.HasListing(id) {
		return
	}
	p.ListingIDs = append(p.ListingIDs, id)
}

// RemoveListing drops ownership of the listing. No-op when absent.
func (p *Person) RemoveListing(id ListingID) {
	for i, l := range p.ListingIDs {
		if l == id {
			p.ListingIDs = append(p.ListingIDs[:i], p.ListingIDs[i+1:]...)
			return
		}
	}
}
