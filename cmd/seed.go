package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"matchbook/internal/estate"
	"matchbook/internal/model"
	"matchbook/internal/storage"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a sample record book to the data file",
	Long: `Write a small sample record book to the configured data file.

Useful for trying the UI out before entering real records. Refuses to
overwrite an existing data file unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := storage.New(cfg.DataFile)
		if store.Exists() && !seedForce {
			return fmt.Errorf("data file %s already exists (use --force to overwrite)", store.Path())
		}

		m, err := sampleBook()
		if err != nil {
			return err
		}
		if err := store.Save(m); err != nil {
			return fmt.Errorf("writing sample data: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample record book to %s\n", store.Path())
		return nil
	},
}

// sampleBook builds a small book with a few buyers, tagged listings and
// one preference per buyer so matches show up immediately.
func sampleBook() (*model.Model, error) {
	m := model.New()

	if err := m.AddTags("MODERN", "SEAVIEW", "RENOVATED", "NEAR-MRT"); err != nil {
		return nil, err
	}

	alice := estate.NewPerson("Alice Tan", "91234567", "alice@example.com")
	bob := estate.NewPerson("Bob Lee", "98765432", "")
	carol := estate.NewPerson("Carol Lim", "87654321", "carol@example.com")
	m.AddPerson(alice)
	m.AddPerson(bob)
	m.AddPerson(carol)

	wide, err := estate.NewPriceRange(400_000, 900_000)
	if err != nil {
		return nil, err
	}
	aliceWants := estate.NewPropertyPreference(wide)
	m.AddPreference(alice, aliceWants)
	if err := m.TagPreference(aliceWants, "MODERN", "NEAR-MRT"); err != nil {
		return nil, err
	}

	bobWants := estate.NewPropertyPreference(estate.AtMost(650_000))
	m.AddPreference(bob, bobWants)
	if err := m.TagPreference(bobWants, "SEAVIEW"); err != nil {
		return nil, err
	}

	flatRange, err := estate.NewPriceRange(500_000, 700_000)
	if err != nil {
		return nil, err
	}
	flat, err := estate.NewListing("123456", "05-11", "", flatRange, "Maple Towers")
	if err != nil {
		return nil, err
	}
	m.AddListing(flat)
	if err := m.TagListing(flat, "MODERN", "NEAR-MRT"); err != nil {
		return nil, err
	}
	if err := flat.AddOwner(carol.Phone); err != nil {
		return nil, err
	}
	carol.AddListing(flat.ID())

	houseRange, err := estate.NewPriceRange(600_000, 850_000)
	if err != nil {
		return nil, err
	}
	house, err := estate.NewListing("654321", "", "12", houseRange, "Coast Villa")
	if err != nil {
		return nil, err
	}
	m.AddListing(house)
	if err := m.TagListing(house, "SEAVIEW", "RENOVATED"); err != nil {
		return nil, err
	}

	return m, nil
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "overwrite an existing data file")
	rootCmd.AddCommand(seedCmd)
}
