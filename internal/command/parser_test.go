package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"matchbook/internal/estate"
)

func TestParseAddPerson(t *testing.T) {
	cmd, err := Parse("addPerson n/Alice Tan p/91234567 e/alice@example.com")
	require.NoError(t, err)
	require.Equal(t, AddPerson{
		Name:  "Alice Tan",
		Phone: "91234567",
		Email: "alice@example.com",
	}, cmd)
}

func TestParseAddPersonMissingPhone(t *testing.T) {
	_, err := Parse("addPerson n/Alice Tan")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "addPerson", perr.Command)
}

func TestParseEditPersonPartial(t *testing.T) {
	cmd, err := Parse("editPerson 2 p/98765432")
	require.NoError(t, err)
	require.Equal(t, EditPerson{Index: 1, Phone: "98765432"}, cmd)

	_, err = Parse("editPerson 2")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseAddListing(t *testing.T) {
	cmd, err := Parse("addListing pc/123456 h/123 lbp/100000 ubp/200000 pn/Maple Villa t/modern nt/cosy")
	require.NoError(t, err)

	got, ok := cmd.(AddListing)
	require.True(t, ok)
	require.Equal(t, "123456", got.PostalCode)
	require.Equal(t, "123", got.HouseNumber)
	require.Empty(t, got.UnitNumber)
	require.Equal(t, "Maple Villa", got.PropertyName)
	require.Equal(t, []string{"modern"}, got.Tags)
	require.Equal(t, []string{"cosy"}, got.NewTags)

	lower, ok := got.Range.Lower()
	require.True(t, ok)
	require.Equal(t, estate.Price(100000), lower)
	upper, ok := got.Range.Upper()
	require.True(t, ok)
	require.Equal(t, estate.Price(200000), upper)
}

func TestParseAddListingHalfOpenRange(t *testing.T) {
	cmd, err := Parse("addListing pc/123456 u/10-05 ubp/500000")
	require.NoError(t, err)

	got := cmd.(AddListing)
	require.Equal(t, "10-05", got.UnitNumber)
	_, hasLower := got.Range.Lower()
	require.False(t, hasLower)
	upper, ok := got.Range.Upper()
	require.True(t, ok)
	require.Equal(t, estate.Price(500000), upper)
}

func TestParseInvertedRange(t *testing.T) {
	_, err := Parse("addListing pc/123456 h/1 lbp/200 ubp/100")
	var inv *estate.InvalidRangeError
	require.ErrorAs(t, err, &inv)
}

func TestParseNonNumericPrice(t *testing.T) {
	_, err := Parse("searchListing lbp/cheap")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseIndexCommands(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"deletePerson 1", DeletePerson{Index: 0}},
		{"deleteListing 3", DeleteListing{Index: 2}},
		{"markAvailable 2", MarkAvailable{Index: 1}},
		{"markUnavailable 2", MarkUnavailable{Index: 1}},
		{"assignOwner 1 2", AddOwner{PersonIndex: 0, ListingIndex: 1}},
		{"deleteOwner 2 1", DeleteOwner{PersonIndex: 1, ListingIndex: 0}},
		{"deletePreference 1 2", DeletePreference{PersonIndex: 0, PreferenceIndex: 1}},
		{"matchListing 1", MatchListing{Index: 0}},
		{"matchPerson 1 1", MatchPerson{PersonIndex: 0, PreferenceIndex: 0}},
		{"searchOwnerListing 4", SearchOwnerListing{Index: 3}},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.line)
		require.NoError(t, err, tc.line)
		require.Equal(t, tc.want, cmd, tc.line)
	}
}

func TestParseIndexValidation(t *testing.T) {
	for _, line := range []string{"deletePerson", "deletePerson 0", "deletePerson x", "matchPerson 1"} {
		_, err := Parse(line)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, line)
	}
}

func TestParseTagCommands(t *testing.T) {
	cmd, err := Parse("addTag t/modern t/cosy")
	require.NoError(t, err)
	require.Equal(t, AddTag{Names: []string{"modern", "cosy"}}, cmd)

	cmd, err = Parse("deleteTag t/modern")
	require.NoError(t, err)
	require.Equal(t, DeleteTag{Name: "modern"}, cmd)

	cmd, err = Parse("overwriteListingTag 2 t/modern nt/bright")
	require.NoError(t, err)
	require.Equal(t, OverwriteListingTag{Index: 1, Tags: []string{"modern"}, NewTags: []string{"bright"}}, cmd)

	_, err = Parse("addTag")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseAddPreference(t *testing.T) {
	cmd, err := Parse("addPreference 1 lbp/100000 ubp/200000 t/modern")
	require.NoError(t, err)
	require.Equal(t, AddPreference{
		PersonIndex: 0,
		Range:       mustParsedRange(t, 100000, 200000),
		Tags:        []string{"modern"},
	}, cmd)
}

func TestParseSearchUnboundedRange(t *testing.T) {
	cmd, err := Parse("searchPerson t/modern")
	require.NoError(t, err)
	require.Equal(t, SearchPerson{
		Tags:  estate.NewTagSet("modern"),
		Range: estate.UnboundedRange(),
	}, cmd)
}

func TestParseListCommands(t *testing.T) {
	for line, want := range map[string]Command{
		"listPerson":  ListPersons{},
		"listListing": ListListings{},
		"listTag":     ListTags{},
	} {
		cmd, err := Parse(line)
		require.NoError(t, err, line)
		require.Equal(t, want, cmd, line)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("frobnicate 1")
	var unknown *UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "frobnicate", unknown.Word)

	_, err = Parse("   ")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func mustParsedRange(t *testing.T, lower, upper estate.Price) estate.PriceRange {
	t.Helper()
	r, err := estate.NewPriceRange(lower, upper)
	require.NoError(t, err)
	return r
}
