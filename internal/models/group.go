package models

// Group represents a set of members planning trips together.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Lisbon 2025").
	Name string

	// Members is the ordered list of member IDs (user IDs).
	// Membership is append-only.
	Members []string

	// MemberDetails maps a member ID to its display label (usually the email).
	// An entry may be missing; callers fall back to the raw ID.
	MemberDetails map[string]string

	// CreatedBy is the user ID of the member who created the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether memberID belongs to the group.
func (g *Group) HasMember(memberID string) bool {
	for _, m := range g.Members {
		if m == memberID {
			return true
		}
	}
	return false
}
