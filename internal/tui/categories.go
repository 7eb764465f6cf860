package tui

// Category is one entry of the configuration menu
type Category struct {
	ID          string
	Name        string
	Description string
}

var Categories = []Category{
	{ID: "paths", Name: "Site", Description: "Documentation site root and docs directory"},
	{ID: "cli", Name: "CLI Reference", Description: "CLI checkout, entry point and command prefix"},
	{ID: "sdk", Name: "SDK Reference", Description: "SDK checkout, TypeDoc and quickstart settings"},
	{ID: "output", Name: "Output", Description: "Frontmatter and run state"},
	{ID: "cache", Name: "Cache", Description: "Help output cache and TTL"},
	{ID: "logging", Name: "Logging", Description: "Log level and format"},
}

func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
