package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"matchbook/internal/estate"
	"matchbook/internal/matcher"
	"matchbook/internal/model"
	"matchbook/internal/storage"
)

// matchRow is the JSON shape shared by both match subcommands.
type matchRow struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	TagOverlap int    `json:"tag_overlap"`
	Proximity  string `json:"proximity"`
	Range      string `json:"range,omitempty"`
}

var matchListingCmd = &cobra.Command{
	Use:   "match:listing <listing-id>",
	Short: "Print matching buyers for a listing as JSON",
	Long: `Print the buyers whose preferences match a listing, as JSON.

A buyer matches when one of their preferences has an overlapping price
range and, if the listing is tagged, at least one tag in common.
Results are ordered best match first.

Listing IDs are postal code plus the u-prefixed unit number or
h-prefixed house number, as shown in the listings pane.

Examples:
  # Match against the listing with postal code 123456, unit 05-11
  matchbook match:listing "123456/u05-11"

  # A landed listing with house number 12
  matchbook match:listing "654321/h12"

  # Parse specific fields with jq
  matchbook match:listing "123456/u05-11" | jq '.[].name'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openBook()
		if err != nil {
			return err
		}

		listing, err := m.ListingByID(estate.ListingID(args[0]))
		if err != nil {
			return err
		}

		rows := make([]matchRow, 0)
		for _, match := range matcher.MatchPersonsForListing(listing, m.Persons()) {
			rows = append(rows, matchRow{
				Name:       match.Person.Name,
				ID:         string(match.Person.Phone),
				TagOverlap: match.TagOverlap,
				Proximity:  match.Proximity.String(),
				Range:      match.Preference.Range.String(),
			})
		}
		return json.NewEncoder(os.Stdout).Encode(rows)
	},
}

var matchPersonCmd = &cobra.Command{
	Use:   "match:person <phone>",
	Short: "Print matching listings for a buyer as JSON",
	Long: `Print the available listings matching a buyer's preferences, as JSON.

Every preference of the buyer is matched; results are merged, best
match first, with duplicates removed.

Examples:
  matchbook match:person 91234567
  matchbook match:person 91234567 | jq '.[].id'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openBook()
		if err != nil {
			return err
		}

		person, err := m.PersonByPhone(estate.PersonID(args[0]))
		if err != nil {
			return err
		}

		rows := make([]matchRow, 0)
		seen := make(map[estate.ListingID]bool)
		for _, pref := range person.Preferences {
			for _, match := range matcher.MatchListingsForPreference(pref, m.Listings()) {
				if seen[match.Listing.ID()] {
					continue
				}
				seen[match.Listing.ID()] = true
				rows = append(rows, matchRow{
					Name:       match.Listing.DisplayName(),
					ID:         string(match.Listing.ID()),
					TagOverlap: match.TagOverlap,
					Proximity:  match.Proximity.String(),
					Range:      match.Listing.Range.String(),
				})
			}
		}
		return json.NewEncoder(os.Stdout).Encode(rows)
	},
}

// openBook loads the record book for a headless command run.
func openBook() (*model.Model, error) {
	store := storage.New(cfg.DataFile)
	if !store.Exists() {
		return nil, fmt.Errorf("data file %s does not exist", store.Path())
	}
	m, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading data file %s: %w", store.Path(), err)
	}
	return m, nil
}

func init() {
	rootCmd.AddCommand(matchListingCmd)
	rootCmd.AddCommand(matchPersonCmd)
}
