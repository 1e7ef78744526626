package model

import "strings"

// Fallback presentation values for transactions whose category is unknown.
const (
	UnknownCategoryName  = "N/A"
	UnknownCategoryColor = "#95a5a6"
)

// Category is a spending category as served by the backend.
// The client treats categories as a read-only lookup table.
type Category struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// FindCategoryByID returns the category with the given id.
func FindCategoryByID(categories []Category, id string) (Category, bool) {
	if id == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindCategoryByName returns the first category whose name equals name,
// ignoring case only.
func FindCategoryByName(categories []Category, name string) (Category, bool) {
	if name == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// LookupCategory resolves a category typed by a user: by id first, then by
// name ignoring case and surrounding whitespace.
func LookupCategory(categories []Category, ref string) (Category, bool) {
	ref = strings.TrimSpace(ref)
	if c, ok := FindCategoryByID(categories, ref); ok {
		return c, true
	}
	if ref == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if strings.EqualFold(strings.TrimSpace(c.Name), ref) {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName resolves a category id to its display name.
func CategoryName(categories []Category, id string) string {
	if c, ok := FindCategoryByID(categories, id); ok && c.Name != "" {
		return c.Name
	}
	return UnknownCategoryName
}

// CategoryColor resolves a category id to its display color.
func CategoryColor(categories []Category, id string) string {
	if c, ok := FindCategoryByID(categories, id); ok && c.Color != "" {
		return c.Color
	}
	return UnknownCategoryColor
}
