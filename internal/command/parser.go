package command

import (
	"fmt"
	"strconv"
	"strings"

	"matchbook/internal/estate"
)

// Prefixes accepted by the line parser. Values run until the next
// prefix, so names and property names may contain spaces.
const (
	prefixName         = "n/"
	prefixPhone        = "p/"
	prefixEmail        = "e/"
	prefixPostalCode   = "pc/"
	prefixUnitNumber   = "u/"
	prefixHouseNumber  = "h/"
	prefixLowerPrice   = "lbp/"
	prefixUpperPrice   = "ubp/"
	prefixPropertyName = "pn/"
	prefixTag          = "t/"
	prefixNewTag       = "nt/"
)

var allPrefixes = []string{
	prefixName, prefixPhone, prefixEmail,
	prefixPostalCode, prefixUnitNumber, prefixHouseNumber,
	prefixLowerPrice, prefixUpperPrice, prefixPropertyName,
	prefixTag, prefixNewTag,
}

// UnknownCommandError reports a command word the parser does not know.
type UnknownCommandError struct {
	Word string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Word)
}

// ParseError reports a line that names a known command but carries
// malformed arguments.
type ParseError struct {
	Command string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// args holds a tokenized argument string: the bare leading indexes
// (1-based as typed, stored 0-based) and the prefixed values in order
// of appearance.
type args struct {
	command string
	indexes []int
	values  map[string][]string
}

func (a args) one(prefix string) (string, bool) {
	vs := a.values[prefix]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func (a args) all(prefix string) []string {
	return a.values[prefix]
}

func (a args) index(i int) (int, error) {
	if i >= len(a.indexes) {
		return 0, &ParseError{Command: a.command, Message: fmt.Sprintf("expected at least %d index argument(s)", i+1)}
	}
	return a.indexes[i], nil
}

func (a args) requireOne(prefix string) (string, error) {
	v, ok := a.one(prefix)
	if !ok || v == "" {
		return "", &ParseError{Command: a.command, Message: fmt.Sprintf("missing %s argument", prefix)}
	}
	return v, nil
}

// priceRange assembles a range from the optional lbp/ and ubp/ values.
func (a args) priceRange() (estate.PriceRange, error) {
	lowerRaw, hasLower := a.one(prefixLowerPrice)
	upperRaw, hasUpper := a.one(prefixUpperPrice)

	switch {
	case hasLower && hasUpper:
		lower, err := estate.ParsePrice(lowerRaw)
		if err != nil {
			return estate.PriceRange{}, &ParseError{Command: a.command, Message: err.Error()}
		}
		upper, err := estate.ParsePrice(upperRaw)
		if err != nil {
			return estate.PriceRange{}, &ParseError{Command: a.command, Message: err.Error()}
		}
		return estate.NewPriceRange(lower, upper)
	case hasLower:
		lower, err := estate.ParsePrice(lowerRaw)
		if err != nil {
			return estate.PriceRange{}, &ParseError{Command: a.command, Message: err.Error()}
		}
		return estate.AtLeast(lower), nil
	case hasUpper:
		upper, err := estate.ParsePrice(upperRaw)
		if err != nil {
			return estate.PriceRange{}, &ParseError{Command: a.command, Message: err.Error()}
		}
		return estate.AtMost(upper), nil
	default:
		return estate.UnboundedRange(), nil
	}
}

func splitPrefix(word string) (string, string) {
	for _, p := range allPrefixes {
		if strings.HasPrefix(word, p) {
			return p, strings.TrimPrefix(word, p)
		}
	}
	return "", word
}

func tokenize(command, rest string) (args, error) {
	a := args{command: command, values: make(map[string][]string)}

	var current string
	flush := func(prefix string, parts []string) {
		a.values[prefix] = append(a.values[prefix], strings.Join(parts, " "))
	}

	var parts []string
	for _, word := range strings.Fields(rest) {
		prefix, value := splitPrefix(word)
		if prefix == "" {
			if current == "" {
				n, err := strconv.Atoi(word)
				if err != nil || n < 1 {
					return args{}, &ParseError{Command: command, Message: fmt.Sprintf("invalid index %q", word)}
				}
				a.indexes = append(a.indexes, n-1)
				continue
			}
			parts = append(parts, word)
			continue
		}
		if current != "" {
			flush(current, parts)
		}
		current = prefix
		parts = []string{}
		if value != "" {
			parts = append(parts, value)
		}
	}
	if current != "" {
		flush(current, parts)
	}
	return a, nil
}

// Parse turns a command line such as
//
//	addListing pc/123456 h/123 lbp/100000 ubp/200000 t/MODERN
//
// into an executable Command.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, &ParseError{Command: "", Message: "empty command"}
	}
	word, rest, _ := strings.Cut(line, " ")

	a, err := tokenize(word, rest)
	if err != nil {
		return nil, err
	}

	switch word {
	case "addPerson":
		return parseAddPerson(a)
	case "editPerson":
		return parseEditPerson(a)
	case "deletePerson":
		return oneIndex(a, func(i int) Command { return DeletePerson{Index: i} })
	case "listPerson":
		return ListPersons{}, nil

	case "addListing":
		return parseAddListing(a)
	case "deleteListing":
		return oneIndex(a, func(i int) Command { return DeleteListing{Index: i} })
	case "listListing":
		return ListListings{}, nil
	case "markAvailable":
		return oneIndex(a, func(i int) Command { return MarkAvailable{Index: i} })
	case "markUnavailable":
		return oneIndex(a, func(i int) Command { return MarkUnavailable{Index: i} })

	case "assignOwner":
		return twoIndexes(a, func(p, l int) Command { return AddOwner{PersonIndex: p, ListingIndex: l} })
	case "deleteOwner":
		return twoIndexes(a, func(p, l int) Command { return DeleteOwner{PersonIndex: p, ListingIndex: l} })

	case "addTag":
		if len(a.all(prefixTag)) == 0 {
			return nil, &ParseError{Command: word, Message: "missing t/ argument"}
		}
		return AddTag{Names: a.all(prefixTag)}, nil
	case "deleteTag":
		name, err := a.requireOne(prefixTag)
		if err != nil {
			return nil, err
		}
		return DeleteTag{Name: name}, nil
	case "listTag":
		return ListTags{}, nil

	case "addListingTag":
		i, err := a.index(0)
		if err != nil {
			return nil, err
		}
		return AddListingTag{Index: i, Tags: a.all(prefixTag), NewTags: a.all(prefixNewTag)}, nil
	case "deleteListingTag":
		i, err := a.index(0)
		if err != nil {
			return nil, err
		}
		return DeleteListingTag{Index: i, Tags: a.all(prefixTag)}, nil
	case "overwriteListingTag":
		i, err := a.index(0)
		if err != nil {
			return nil, err
		}
		return OverwriteListingTag{Index: i, Tags: a.all(prefixTag), NewTags: a.all(prefixNewTag)}, nil

	case "addPreference":
		return parseAddPreference(a)
	case "deletePreference":
		return twoIndexes(a, func(p, pr int) Command { return DeletePreference{PersonIndex: p, PreferenceIndex: pr} })
	case "addPreferenceTag":
		p, pr, err := a.twoIndexes()
		if err != nil {
			return nil, err
		}
		return AddPreferenceTag{PersonIndex: p, PreferenceIndex: pr, Tags: a.all(prefixTag), NewTags: a.all(prefixNewTag)}, nil
	case "deletePreferenceTag":
		p, pr, err := a.twoIndexes()
		if err != nil {
			return nil, err
		}
		return DeletePreferenceTag{PersonIndex: p, PreferenceIndex: pr, Tags: a.all(prefixTag)}, nil
	case "overwritePreferenceTag":
		p, pr, err := a.twoIndexes()
		if err != nil {
			return nil, err
		}
		return OverwritePreferenceTag{PersonIndex: p, PreferenceIndex: pr, Tags: a.all(prefixTag), NewTags: a.all(prefixNewTag)}, nil

	case "matchListing":
		return oneIndex(a, func(i int) Command { return MatchListing{Index: i} })
	case "matchPerson":
		return twoIndexes(a, func(p, pr int) Command { return MatchPerson{PersonIndex: p, PreferenceIndex: pr} })

	case "searchListing":
		r, err := a.priceRange()
		if err != nil {
			return nil, err
		}
		return SearchListing{Tags: estate.NewTagSet(a.all(prefixTag)...), Range: r}, nil
	case "searchPerson":
		r, err := a.priceRange()
		if err != nil {
			return nil, err
		}
		return SearchPerson{Tags: estate.NewTagSet(a.all(prefixTag)...), Range: r}, nil
	case "searchOwnerListing":
		return oneIndex(a, func(i int) Command { return SearchOwnerListing{Index: i} })
	}

	return nil, &UnknownCommandError{Word: word}
}

func (a args) twoIndexes() (int, int, error) {
	p, err := a.index(0)
	if err != nil {
		return 0, 0, err
	}
	q, err := a.index(1)
	if err != nil {
		return 0, 0, err
	}
	return p, q, nil
}

func oneIndex(a args, build func(int) Command) (Command, error) {
	i, err := a.index(0)
	if err != nil {
		return nil, err
	}
	return build(i), nil
}

func twoIndexes(a args, build func(int, int) Command) (Command, error) {
	p, q, err := a.twoIndexes()
	if err != nil {
		return nil, err
	}
	return build(p, q), nil
}

func parseAddPerson(a args) (Command, error) {
	name, err := a.requireOne(prefixName)
	if err != nil {
		return nil, err
	}
	phone, err := a.requireOne(prefixPhone)
	if err != nil {
		return nil, err
	}
	email, _ := a.one(prefixEmail)
	return AddPerson{Name: name, Phone: estate.PersonID(phone), Email: email}, nil
}

func parseEditPerson(a args) (Command, error) {
	i, err := a.index(0)
	if err != nil {
		return nil, err
	}
	name, _ := a.one(prefixName)
	phone, _ := a.one(prefixPhone)
	email, _ := a.one(prefixEmail)
	if name == "" && phone == "" && email == "" {
		return nil, &ParseError{Command: a.command, Message: "at least one of n/, p/, e/ is required"}
	}
	return EditPerson{Index: i, Name: name, Phone: estate.PersonID(phone), Email: email}, nil
}

func parseAddListing(a args) (Command, error) {
	pc, err := a.requireOne(prefixPostalCode)
	if err != nil {
		return nil, err
	}
	unit, _ := a.one(prefixUnitNumber)
	house, _ := a.one(prefixHouseNumber)
	r, err := a.priceRange()
	if err != nil {
		return nil, err
	}
	propertyName, _ := a.one(prefixPropertyName)
	return AddListing{
		PostalCode:   pc,
		UnitNumber:   unit,
		HouseNumber:  house,
		Range:        r,
		PropertyName: propertyName,
		Tags:         a.all(prefixTag),
		NewTags:      a.all(prefixNewTag),
	}, nil
}

func parseAddPreference(a args) (Command, error) {
	i, err := a.index(0)
	if err != nil {
		return nil, err
	}
	r, err := a.priceRange()
	if err != nil {
		return nil, err
	}
	return AddPreference{
		PersonIndex: i,
		Range:       r,
		Tags:        a.all(prefixTag),
		NewTags:     a.all(prefixNewTag),
	}, nil
}
