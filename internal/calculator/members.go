package calculator

// Roster is the membership view of a group used for labelling.
type Roster struct {
	Members       []string
	MemberDetails map[string]string
}

// Member is a member ID paired with its display label.
type Member struct {
	ID    string
	Label string
}

// ResolveLabel returns the display label for memberID, or memberID itself
// when the roster has no entry for it.
func ResolveLabel(r Roster, memberID string) string {
	if label, ok := r.MemberDetails[memberID]; ok && label != "" {
		return label
	}
	return memberID
}

// ListMembers returns the roster members in order with resolved labels.
func ListMembers(r Roster) []Member {
	out := make([]Member, len(r.Members))
	for i, id := range r.Members {
		out[i] = Member{ID: id, Label: ResolveLabel(r, id)}
	}
	return out
}
