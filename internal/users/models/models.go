package models

import (
	"time"

	id "appealboard/pkg/domain"
)

// Role is a user's position on the appeal board.
type Role string

const (
	RoleSecretary  Role = "secretary"
	RoleExpert     Role = "expert"
	RoleMember     Role = "member"
	RoleHead       Role = "head"
	RoleDeputyHead Role = "deputy_head"
	RoleApplicant  Role = "applicant"
)

// BoardLeadership reports whether the role signs on behalf of the board. A
// document counts as head-signed when a completed sign belongs to such a user.
func (r Role) BoardLeadership() bool {
	return r == RoleHead || r == RoleDeputyHead
}

type User struct {
	ID        id.UserID
	FullName  string
	Email     string
	Role      Role
	CreatedAt time.Time
}
