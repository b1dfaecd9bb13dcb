package models

// Plan is a single trip itinerary owned by a group.
type Plan struct {
	// ID is the unique identifier for the plan (UUID format).
	ID string

	// GroupID is the group owning this plan.
	GroupID string

	Title       string
	Description string

	// Location is the saved map location, nil until one is set.
	Location *Location

	// CreatedAt is the Unix timestamp when the plan was created.
	CreatedAt int64
}

// Location is a point picked on the plan map.
type Location struct {
	Lat float64
	Lng float64
}

// Note is a free-form text entry attached to a plan.
type Note struct {
	ID        string
	PlanID    string
	Content   string
	CreatedBy string
	CreatedAt int64
	// UpdatedAt is zero until the note is edited.
	UpdatedAt int64
}
