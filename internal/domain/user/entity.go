package user

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role is the kind of account a role name resolves to.
type Role string

const (
	RoleFounder  Role = "Founder"  // Unrestricted visibility
	RoleManager  Role = "Manager"  // Sees and approves for their reporting line
	RoleEmployee Role = "Employee" // Sees own records, or reporting line when set
)

// ParseRole maps a stored role name to a Role. Unknown names resolve to
// RoleEmployee.
func ParseRole(name string) Role {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "founder":
		return RoleFounder
	case "manager":
		return RoleManager
	default:
		return RoleEmployee
	}
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type User struct {
	ID            string
	Name          string
	Email         string
	Contact       *string
	PasswordHash  string
	DateOfJoining *time.Time
	RoleID        *string
	ReportBy      []string
	Status        Status

	SickLeave decimal.Decimal
	PaidLeave decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	// Join
	RoleName string
}

// RoleKind resolves the user's role name.
func (u *User) RoleKind() Role {
	return ParseRole(u.RoleName)
}

func (u *User) IsFounder() bool {
	return u.RoleKind() == RoleFounder
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive && u.DeletedAt == nil
}

// AvailableLeaves is derived from the per-category counters and never stored.
func (u *User) AvailableLeaves() decimal.Decimal {
	return u.SickLeave.Add(u.PaidLeave)
}

// ManagesUser reports whether id is in the user's reporting line.
func (u *User) ManagesUser(id string) bool {
	return slices.Contains(u.ReportBy, id)
}

// CanSupervise reports whether u may approve records owned by ownerID.
func (u *User) CanSupervise(ownerID string) bool {
	return u.IsFounder() || u.ManagesUser(ownerID)
}

// Visibility returns the set of users u may see in role-scoped listings.
func (u *User) Visibility() Visibility {
	return VisibleUserIDs(u.RoleKind(), u.ReportBy, u.ID)
}
