package user

import "slices"

// Visibility is the resolved set of users a requester may see. When All is
// set UserIDs is empty.
type Visibility struct {
	All     bool
	SelfID  string
	UserIDs []string
}

// VisibleUserIDs applies the visibility rule shared by every role-scoped
// listing: Founder sees everyone, anyone with a reporting line sees that
// line, everyone else sees only themselves.
func VisibleUserIDs(role Role, reportBy []string, selfID string) Visibility {
	if role == RoleFounder {
		return Visibility{All: true, SelfID: selfID}
	}
	if len(reportBy) > 0 {
		ids := slices.Clone(reportBy)
		return Visibility{SelfID: selfID, UserIDs: ids}
	}
	return Visibility{SelfID: selfID, UserIDs: []string{selfID}}
}

// Includes reports whether records owned by id are visible.
func (v Visibility) Includes(id string) bool {
	return v.All || slices.Contains(v.UserIDs, id)
}
