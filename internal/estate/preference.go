package estate

import "github.com/google/uuid"

// PreferenceID uniquely identifies a property preference for the
// lifetime of a session and across persistence.
type PreferenceID string

// PropertyPreference is a person's desired price range plus descriptive
// tags, used to find matching listings. It is created attached to
// exactly one person and lives only as long as that person holds it.
type PropertyPreference struct {
	ID         PreferenceID
	Range      PriceRange
	Tags       TagSet
	OwnerPhone PersonID
}

// NewPropertyPreference constructs a preference with a fresh ID and no
// tags. Callers attach it to a person via Person.AddPreference.
func NewPropertyPreference(priceRange PriceRange) *PropertyPreference {
	return &PropertyPreference{
		ID:    PreferenceID(uuid.NewString()),
		Range: priceRange,
		Tags:  make(TagSet),
	}
}

// RehydratePreference rebuilds a persisted preference under its original ID.
func RehydratePreference(id PreferenceID, priceRange PriceRange) *PropertyPreference {
	return &PropertyPreference{
		ID:    id,
		Range: priceRange,
		Tags:  make(TagSet),
	}
}
