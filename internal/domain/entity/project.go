package entity

import "time"

// Project is a hiring campaign belonging to a company.
type Project struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CompanyID   string    `json:"company_id" bson:"company_id"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	Tombstone   `bson:",inline"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
