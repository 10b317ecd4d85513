package entity

import "time"

// User is the aggregate root for the user domain. Mobile is the login
// identity, unique among non-deleted users. Passwords are bcrypt hashes.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Firstname string    `json:"firstname" bson:"firstname"`
	Lastname  string    `json:"lastname" bson:"lastname"`
	Mobile    string    `json:"mobile" bson:"mobile"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Password  string    `json:"-" bson:"password"`
	AvatarURL string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	IsBanned  bool      `json:"is_banned" bson:"is_banned"`
	Tombstone `bson:",inline"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// PublicProfile is the subset of user fields other users may see, e.g. when
// listing the managers of a company.
type PublicProfile struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Firstname string `json:"firstname" bson:"firstname"`
	Lastname  string `json:"lastname" bson:"lastname"`
	AvatarURL string `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Firstname: u.Firstname, Lastname: u.Lastname, AvatarURL: u.AvatarURL}
}
