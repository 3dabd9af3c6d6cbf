package estate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewListing_Discriminator(t *testing.T) {
	r := mustRange(t, 100000, 200000)

	withHouse, err := NewListing("123456", "", "123", r, "Sunny Villa")
	require.NoError(t, err)
	require.Equal(t, ListingID("123456/h123"), withHouse.ID())
	require.True(t, withHouse.Available)

	withUnit, err := NewListing("654321", "10-05", "", r, "")
	require.NoError(t, err)
	require.Equal(t, ListingID("654321/u10-05"), withUnit.ID())

	_, err = NewListing("123456", "", "", r, "")
	var missing *MissingDiscriminatorError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "123456", missing.PostalCode)

	_, err = NewListing("123456", "10-05", "123", r, "")
	var ambiguous *AmbiguousDiscriminatorError
	require.ErrorAs(t, err, &ambiguous)
}

func TestListing_Owners(t *testing.T) {
	r := mustRange(t, 100000, 200000)
	listing, err := NewListing("123456", "", "123", r, "")
	require.NoError(t, err)

	require.NoError(t, listing.AddOwner("98765432"))
	require.True(t, listing.HasOwner("98765432"))

	err = listing.AddOwner("98765432")
	var related *AlreadyRelatedError
	require.ErrorAs(t, err, &related)
	require.Len(t, listing.OwnerPhones, 1)

	listing.RemoveOwner("98765432")
	listing.RemoveOwner("98765432")
	require.Empty(t, listing.OwnerPhones)
}

func TestListing_DisplayName(t *testing.T) {
	r := mustRange(t, 1, 2)

	named, err := NewListing("123456", "", "123", r, "Sunny Villa")
	require.NoError(t, err)
	require.Equal(t, "Sunny Villa", named.DisplayName())

	unit, err := NewListing("123456", "10-05", "", r, "")
	require.NoError(t, err)
	require.Equal(t, "123456 #10-05", unit.DisplayName())

	house, err := NewListing("123456", "", "123", r, "")
	require.NoError(t, err)
	require.Equal(t, "123456 123", house.DisplayName())
}

func TestPerson_Preferences(t *testing.T) {
	p := NewPerson("John Doe", "98765432", "johndoe@example.com")
	pref := NewPropertyPreference(mustRange(t, 150000, 250000))

	p.AddPreference(pref)
	require.Equal(t, PersonID("98765432"), pref.OwnerPhone)
	require.Same(t, pref, p.PreferenceAt(0))
	require.Nil(t, p.PreferenceAt(1))

	removed := p.RemovePreference(pref.ID)
	require.Same(t, pref, removed)
	require.Empty(t, p.Preferences)
	require.Nil(t, p.RemovePreference(pref.ID))
}

func TestPerson_Listings(t *testing.T) {
	p := NewPerson("John Doe", "98765432", "johndoe@example.com")

	p.AddListing("123456/h123")
	p.AddListing("123456/h123")
	require.Equal(t, []ListingID{"123456/h123"}, p.ListingIDs)
	require.True(t, p.HasListing("123456/h123"))

	p.RemoveListing("123456/h123")
	require.Empty(t, p.ListingIDs)
}

func TestPropertyPreference_IDs(t *testing.T) {
	a := NewPropertyPreference(mustRange(t, 1, 2))
	b := NewPropertyPreference(mustRange(t, 1, 2))
	require.NotEqual(t, a.ID, b.ID)

	re := RehydratePreference(a.ID, a.Range)
	require.Equal(t, a.ID, re.ID)
	require.True(t, re.Range.Equal(a.Range))
}
