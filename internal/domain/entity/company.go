package entity

import "time"

// Company is a hiring organization. Name is the natural key, unique among
// non-deleted companies.
type Company struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	LogoURL   string    `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedBy string    `json:"created_by" bson:"created_by"`
	Tombstone `bson:",inline"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
