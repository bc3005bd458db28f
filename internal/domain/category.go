package domain

// Category is a domain partition of searchable records.
type Category string

// Known categories.
const (
	CategoryFiles   Category = "files"
	CategoryOwners  Category = "owners"
	CategoryEvents  Category = "events"
	CategoryForum   Category = "forum"
	CategoryStories Category = "stories"
)

// DefaultCategories returns the full category set, in stable order.
func DefaultCategories() []Category {
	return []Category{
		CategoryFiles,
		CategoryOwners,
		CategoryEvents,
		CategoryForum,
		CategoryStories,
	}
}

// ParseCategory validates a category identifier.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryFiles, CategoryOwners, CategoryEvents, CategoryForum, CategoryStories:
		return Category(s), true
	default:
		return "", false
	}
}

// ParseCategories maps identifiers to known categories, silently dropping
// unknown ones. An empty outcome degrades to the default set.
func ParseCategories(ss []string) []Category {
	seen := make(map[Category]struct{}, len(ss))
	out := make([]Category, 0, len(ss))
	for _, s := range ss {
		c, ok := ParseCategory(s)
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return DefaultCategories()
	}
	return out
}
