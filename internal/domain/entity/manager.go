package entity

import "time"

// Kind names an entity type a manager grant may reference. Stored as the
// plain collection name; runtime-checked wherever a grant is created or
// resolved.
type Kind string

const (
	KindCompanies Kind = "companies"
	KindProjects  Kind = "projects"

	// KindUsers and KindResumes exist only to name event topics; grants
	// never reference them.
	KindUsers   Kind = "users"
	KindResumes Kind = "resumes"
)

// ValidKind reports whether k is a grantable entity kind.
func ValidKind(k Kind) bool {
	return k == KindCompanies || k == KindProjects
}

// Role is the level of a manager grant. Comparison is case-sensitive exact
// match on the two values.
type Role string

const (
	// RoleOwner is assigned to an entity's creator at creation time. It is
	// never created nor revoked through the generic assignment operations.
	RoleOwner Role = "owner"
	// RoleManager is the revocable grant created by assignment.
	RoleManager Role = "manager"
)

// Manager links a user to an (entity kind, entity id) pair with a role.
// Revocation soft-deletes the record; grants are never hard-deleted so the
// audit trail survives.
type Manager struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	UserID    string `json:"user_id" bson:"user_id"`
	Entity    Kind   `json:"entity" bson:"entity"`
	EntityID  string `json:"entity_id" bson:"entity_id"`
	Role      Role   `json:"role" bson:"role"`
	CreatedBy string `json:"created_by" bson:"created_by"`
	Tombstone `bson:",inline"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ManagerWithUser is a grant resolved with the referenced user's public
// profile, as returned by the list-managers operations.
type ManagerWithUser struct {
	Manager `bson:",inline"`
	User    PublicProfile `json:"user" bson:"user"`
}
