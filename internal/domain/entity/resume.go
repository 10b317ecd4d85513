package entity

import "time"

// ResumeStatus is the pipeline stage of a candidate application.
type ResumeStatus string

const (
	ResumePending   ResumeStatus = "pending"
	ResumeReviewing ResumeStatus = "reviewing"
	ResumeInterview ResumeStatus = "interview"
	ResumeOffer     ResumeStatus = "offer"
	ResumeHired     ResumeStatus = "hired"
	ResumeRejected  ResumeStatus = "rejected"
)

// ValidResumeStatus reports whether s is a known pipeline stage.
func ValidResumeStatus(s ResumeStatus) bool {
	switch s {
	case ResumePending, ResumeReviewing, ResumeInterview, ResumeOffer, ResumeHired, ResumeRejected:
		return true
	}
	return false
}

// StatusChange records one transition in a resume's history.
type StatusChange struct {
	Status    ResumeStatus `json:"status" bson:"status"`
	ChangedBy string       `json:"changed_by" bson:"changed_by"`
	ChangedAt time.Time    `json:"changed_at" bson:"changed_at"`
}

// Resume is a candidate application tied to a company and one of its
// projects.
type Resume struct {
	ID            string         `json:"id" bson:"_id,omitempty"`
	CompanyID     string         `json:"company_id" bson:"company_id"`
	ProjectID     string         `json:"project_id" bson:"project_id"`
	Firstname     string         `json:"firstname" bson:"firstname"`
	Lastname      string         `json:"lastname" bson:"lastname"`
	Gender        string         `json:"gender,omitempty" bson:"gender,omitempty"`
	Email         string         `json:"email,omitempty" bson:"email,omitempty"`
	Mobile        string         `json:"mobile" bson:"mobile"`
	BirthYear     int            `json:"birth_year,omitempty" bson:"birth_year,omitempty"`
	ResidenceCity string         `json:"residence_city,omitempty" bson:"residence_city,omitempty"`
	WorkCity      string         `json:"work_city,omitempty" bson:"work_city,omitempty"`
	Education     string         `json:"education,omitempty" bson:"education,omitempty"`
	MinSalary     int            `json:"min_salary,omitempty" bson:"min_salary,omitempty"`
	MaxSalary     int            `json:"max_salary,omitempty" bson:"max_salary,omitempty"`
	Status        ResumeStatus   `json:"status" bson:"status"`
	StatusHistory []StatusChange `json:"status_history,omitempty" bson:"status_history,omitempty"`
	CreatedBy     string         `json:"created_by" bson:"created_by"`
	Tombstone     `bson:",inline"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
