// Package storage persists the record book as a JSON file and loads it
// back, resolving every tag name through the registry so reloaded
// entities share canonical tag identity.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"matchbook/internal/estate"
	"matchbook/internal/log"
	"matchbook/internal/model"
)

// Book is the persisted shape of the whole record store.
type Book struct {
	Persons  []PersonRecord  `json:"persons"`
	Listings []ListingRecord `json:"listings"`
	Tags     []string        `json:"tags"`
}

// PersonRecord is the persisted shape of a person. Phone is the foreign
// key listings reference through ownerKeys.
type PersonRecord struct {
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Preferences []PreferenceRecord `json:"propertyPreferences"`
}

// PreferenceRecord is the persisted shape of a property preference.
type PreferenceRecord struct {
	ID         string      `json:"id,omitempty"`
	PriceRange RangeRecord `json:"priceRange"`
	Tags       []string    `json:"tags"`
}

// ListingRecord is the persisted shape of a listing. Exactly one of
// unitNumber/houseNumber is set.
type ListingRecord struct {
	PostalCode   string      `json:"postalCode"`
	UnitNumber   *string     `json:"unitNumber"`
	HouseNumber  *string     `json:"houseNumber"`
	PriceRange   RangeRecord `json:"priceRange"`
	PropertyName *string     `json:"propertyName"`
	Tags         []string    `json:"tags"`
	OwnerKeys    []string    `json:"ownerKeys"`
	Available    bool        `json:"available"`
}

// RangeRecord is the persisted shape of a price range; a nil bound
// means open-ended on that side.
type RangeRecord struct {
	Lower *string `json:"lower"`
	Upper *string `json:"upper"`
}

// Store reads and writes the record book at a fixed path.
type Store struct {
	path string
}

// New returns a store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the backing file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save serializes the model to the backing file. The write goes through
// a temp file and rename so a crash never leaves a half-written book.
func (s *Store) Save(m *model.Model) error {
	book := Snapshot(m)

	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling record book: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".matchbook-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing record book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing record book: %w", err)
	}

	log.Debug(log.CatStore, "saved record book", "path", s.path,
		"persons", len(book.Persons), "listings", len(book.Listings), "tags", len(book.Tags))
	return nil
}

// Load reads the backing file into a fresh model. A missing file yields
// an empty model.
func (s *Store) Load() (*model.Model, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return model.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading record book: %w", err)
	}

	var book Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("parsing record book: %w", err)
	}

	m, err := Restore(&book)
	if err != nil {
		return nil, err
	}
	log.Info(log.CatStore, "loaded record book", "path", s.path,
		"persons", len(book.Persons), "listings", len(book.Listings))
	return m, nil
}

// Snapshot captures the model's raw collections as a record book.
func Snapshot(m *model.Model) *Book {
	book := &Book{
		Persons:  make([]PersonRecord, 0, len(m.Persons())),
		Listings: make([]ListingRecord, 0, len(m.Listings())),
	}
	for _, tag := range m.Registry().Tags() {
		book.Tags = append(book.Tags, tag.Name())
	}
	for _, p := range m.Persons() {
		rec := PersonRecord{Name: p.Name, Phone: string(p.Phone), Email: p.Email}
		for _, pref := range p.Preferences {
			rec.Preferences = append(rec.Preferences, PreferenceRecord{
				ID:         string(pref.ID),
				PriceRange: rangeToRecord(pref.Range),
				Tags:       pref.Tags.Names(),
			})
		}
		book.Persons = append(book.Persons, rec)
	}
	for _, l := range m.Listings() {
		rec := ListingRecord{
			PostalCode: l.PostalCode,
			PriceRange: rangeToRecord(l.Range),
			Tags:       l.Tags.Names(),
			Available:  l.Available,
		}
		if l.UnitNumber != "" {
			u := l.UnitNumber
			rec.UnitNumber = &u
		}
		if l.HouseNumber != "" {
			h := l.HouseNumber
			rec.HouseNumber = &h
		}
		if l.PropertyName != "" {
			n := l.PropertyName
			rec.PropertyName = &n
		}
		for _, phone := range l.OwnerPhones {
			rec.OwnerKeys = append(rec.OwnerKeys, string(phone))
		}
		book.Listings = append(book.Listings, rec)
	}
	return book
}

// Restore rebuilds a model from a record book. Tag names resolve
// through the registry so every loaded entity lands on the single
// shared instance; owner keys resolve by linear scan over the loaded
// person list, and keys matching no person are dropped with a warning.
func Restore(book *Book) (*model.Model, error) {
	m := model.New()
	reg := m.Registry()

	for _, name := range book.Tags {
		reg.Resolve(name)
	}

	for _, rec := range book.Persons {
		p := estate.NewPerson(rec.Name, estate.PersonID(rec.Phone), rec.Email)
		for _, prec := range rec.Preferences {
			r, err := recordToRange(prec.PriceRange)
			if err != nil {
				return nil, fmt.Errorf("person %s: %w", rec.Phone, err)
			}
			var pref *estate.PropertyPreference
			if prec.ID != "" {
				pref = estate.RehydratePreference(estate.PreferenceID(prec.ID), r)
			} else {
				pref = estate.NewPropertyPreference(r)
			}
			for _, name := range prec.Tags {
				tag := reg.Resolve(name)
				pref.Tags.Add(name)
				tag.AttachPreference(pref.ID)
			}
			p.AddPreference(pref)
		}
		m.AddPerson(p)
	}

	for _, rec := range book.Listings {
		r, err := recordToRange(rec.PriceRange)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", rec.PostalCode, err)
		}
		l, err := estate.NewListing(rec.PostalCode, deref(rec.UnitNumber), deref(rec.HouseNumber), r, deref(rec.PropertyName))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", rec.PostalCode, err)
		}
		l.Available = rec.Available
		for _, name := range rec.Tags {
			tag := reg.Resolve(name)
			l.Tags.Add(name)
			tag.AttachListing(l.ID())
		}
		for _, key := range rec.OwnerKeys {
			owner := findByPhone(m.Persons(), estate.PersonID(key))
			if owner == nil {
				log.Warn(log.CatStore, "owner key matches no person, dropping", "listing", l.ID(), "key", key)
				continue
			}
			l.OwnerPhones = append(l.OwnerPhones, owner.Phone)
			owner.AddListing(l.ID())
		}
		m.AddListing(l)
	}

	return m, nil
}

func findByPhone(persons []*estate.Person, phone estate.PersonID) *estate.Person {
	for _, p := range persons {
		if p.Phone == phone {
			return p
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func rangeToRecord(r estate.PriceRange) RangeRecord {
	var rec RangeRecord
	if lower, ok := r.Lower(); ok {
		s := lower.String()
		rec.Lower = &s
	}
	if upper, ok := r.Upper(); ok {
		s := upper.String()
		rec.Upper = &s
	}
	return rec
}

func recordToRange(rec RangeRecord) (estate.PriceRange, error) {
	switch {
	case rec.Lower != nil && rec.Upper != nil:
		lower, err := estate.ParsePrice(*rec.Lower)
		if err != nil {
			return estate.PriceRange{}, err
		}
		upper, err := estate.ParsePrice(*rec.Upper)
		if err != nil {
			return estate.PriceRange{}, err
		}
		return estate.NewPriceRange(lower, upper)
	case rec.Lower != nil:
		lower, err := estate.ParsePrice(*rec.Lower)
		if err != nil {
			return estate.PriceRange{}, err
		}
		return estate.AtLeast(lower), nil
	case rec.Upper != nil:
		upper, err := estate.ParsePrice(*rec.Upper)
		if err != nil {
			return estate.PriceRange{}, err
		}
		return estate.AtMost(upper), nil
	default:
		return estate.UnboundedRange(), nil
	}
}
