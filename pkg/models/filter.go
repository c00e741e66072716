package models

// ListFilter narrows a list query: Search is matched case-insensitively as a
// substring of the entity's search column, Limit <= 0 means no limit.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
