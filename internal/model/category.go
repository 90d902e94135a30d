package model

// Category is a row in the `categories` lookup table.  Every course
// belongs to exactly one category (e.g. "Cucina Italiana", "Pasticceria").
//
// Fields:
//
//	ID          – numeric identifier of the category.
//	Name        – unique category name.
//	Description – optional description shown in listings.
type Category struct {
	ID          uint64 // categories.id
	Name        string // categories.name
	Description string // categories.description
}
