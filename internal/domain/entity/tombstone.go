package entity

import "time"

// Tombstone carries the soft-delete state embedded in every persisted
// entity. A delete sets the flag and audit fields; documents are never
// removed.
type Tombstone struct {
	Deleted   bool       `json:"-" bson:"deleted"`
	DeletedAt *time.Time `json:"-" bson:"deleted_at,omitempty"`
	DeletedBy string     `json:"-" bson:"deleted_by,omitempty"`
}

// IsDeleted reports whether the record is tombstoned.
func (t Tombstone) IsDeleted() bool { return t.Deleted }
