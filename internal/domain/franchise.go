package domain

// Franchise describes one named movie series the bot can track. The catalog
// is fixed at compile time; adding a franchise means adding a seed document
// and an entry here.
type Franchise struct {
	// Slug is the stable identifier stored on Movie rows and used as the
	// command option value (e.g. "mcu").
	Slug string
	// Name is the human-readable label shown in command choices and embeds.
	Name string
	// Command is the slash-command name of the franchise listing.
	Command string
	// Color is the embed accent color of the listing.
	Color int
}

// Franchises lists every tracked franchise, in presentation order.
var Franchises = []Franchise{
	{Slug: "mcu", Name: "MCU", Command: "mcu", Color: 0xE23636},
	{Slug: "final-destination", Name: "Final Destination", Command: "final-destination", Color: 0x0A2A66},
}

// FranchiseBySlug returns the franchise with the given slug, if known.
func FranchiseBySlug(slug string) (Franchise, bool) {
	for _, f := range Franchises {
		if f.Slug == slug {
			return f, true
		}
	}
	return Franchise{}, false
}
