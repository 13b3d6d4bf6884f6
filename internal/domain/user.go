package domain

import "time"

const (
	RoleManager      = "Manager"
	RoleDeliveryCrew = "Delivery Crew"
)

// Principal is the authenticated caller of a request.
type Principal interface {
	UserID() uint
	IsStaff() bool
	HasRole(role string) bool
}

type User struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	Staff        bool
	Groups       []string
	CreatedAt    time.Time
}

func (u *User) UserID() uint {
	return u.ID
}

func (u *User) IsStaff() bool {
	return u.Staff
}

func (u *User) HasRole(role string) bool {
	for _, g := range u.Groups {
		if g == role {
			return true
		}
	}
	return false
}

// CanManageGroups reports whether p may administer group membership.
func CanManageGroups(p Principal) bool {
	return p.IsStaff() || p.HasRole(RoleManager)
}
