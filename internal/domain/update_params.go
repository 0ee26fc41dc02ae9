package domain

import "cloud.google.com/go/civil"

// ListParams carries the client-editable fields of a List.
// Used for create and for update, which is a full replace of these fields.
type ListParams struct {
	Title       string
	Category    *string
	TargetDate  *civil.Date
	Description *string
}

// CreateItemParams contains the fields accepted when adding an item.
// Optional fields left nil take their defaults.
type CreateItemParams struct {
	Text     string
	Assignee *string
	Status   *string
	Priority *int
}

// UpdateItemParams contains a partial item update.
// A nil field means "not present in the request" and leaves the stored value
// unchanged. Text is also left unchanged when it is blank after trimming.
type UpdateItemParams struct {
	Text      *string
	Assignee  *string
	Status    *string
	Priority  *int
	Completed *bool
}

// IsEmpty reports whether no field is present.
func (p UpdateItemParams) IsEmpty() bool {
	return p.Text == nil && p.Assignee == nil && p.Status == nil &&
		p.Priority == nil && p.Completed == nil
}
