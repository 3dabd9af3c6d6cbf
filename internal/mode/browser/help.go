package browser

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

const helpMarkdown = "# Matchbook Commands\n\n" +
	"## Persons\n\n" +
	"- `addPerson n/NAME p/PHONE [e/EMAIL]`\n" +
	"- `editPerson INDEX [n/NAME] [p/PHONE] [e/EMAIL]`\n" +
	"- `deletePerson INDEX`\n" +
	"- `listPerson`\n\n" +
	"## Listings\n\n" +
	"- `addListing pc/POSTAL (u/UNIT | h/HOUSE) [lbp/PRICE] [ubp/PRICE] [pn/NAME] [t/TAG]... [nt/NEWTAG]...`\n" +
	"- `deleteListing INDEX`\n" +
	"- `markAvailable INDEX` / `markUnavailable INDEX`\n" +
	"- `listListing`\n" +
	"- `assignOwner PERSON LISTING` / `deleteOwner PERSON LISTING`\n\n" +
	"## Tags\n\n" +
	"- `addTag t/NAME...` / `deleteTag t/NAME` / `listTag`\n" +
	"- `addListingTag INDEX t/TAG... nt/NEWTAG...`\n" +
	"- `deleteListingTag INDEX t/TAG...`\n" +
	"- `overwriteListingTag INDEX t/TAG... nt/NEWTAG...`\n\n" +
	"## Preferences\n\n" +
	"- `addPreference PERSON [lbp/PRICE] [ubp/PRICE] [t/TAG]... [nt/NEWTAG]...`\n" +
	"- `deletePreference PERSON PREF`\n" +
	"- `addPreferenceTag PERSON PREF t/TAG... nt/NEWTAG...`\n" +
	"- `deletePreferenceTag PERSON PREF t/TAG...`\n" +
	"- `overwritePreferenceTag PERSON PREF t/TAG... nt/NEWTAG...`\n\n" +
	"## Matching and search\n\n" +
	"- `matchListing INDEX`: persons compatible with a listing\n" +
	"- `matchPerson PERSON PREF`: listings compatible with a preference\n" +
	"- `searchListing [lbp/PRICE] [ubp/PRICE] [t/TAG]...`\n" +
	"- `searchPerson [lbp/PRICE] [ubp/PRICE] [t/TAG]...`\n" +
	"- `searchOwnerListing PERSON`\n\n" +
	"Any list command clears an active match or search.\n\n" +
	"Indexes are 1-based positions in the currently displayed panes.\n"

// renderHelp renders the command reference through glamour.
// Falls back to the raw markdown if rendering fails.
func renderHelp(width int, style string) string {
	if style == "" {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}

	// DarkStyle over WithAutoStyle: auto-detection queries the terminal
	// and the responses leak into the input stream.
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
