package domain

// Domain is a topical category links are filed under. Links reference it by
// name, not by id, so renaming a domain does not move its links.
type Domain struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
