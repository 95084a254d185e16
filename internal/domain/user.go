package domain

import (
	"time"

	"github.com/google/uuid"
)

// User representa uma conta no sistema
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username,omitempty"`
	PasswordHash   string     `json:"-"`
	GoogleID       string     `json:"-"`
	Name           string     `json:"name,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	IsAdmin        bool       `json:"is_admin"`
	FaceDescriptor Descriptor `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HasEnrolledFace reports whether the user has a registered face descriptor.
func (u *User) HasEnrolledFace() bool {
	return len(u.FaceDescriptor) > 0
}

// Profile is the public subset of a user returned after authentication.
// Biometric data is never part of it.
type Profile struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
}

// Profile projects the public fields of a user.
func (u *User) Profile() Profile {
	return Profile{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
	}
}

// EnrolledFace pairs a user id with its registered descriptor for matching.
type EnrolledFace struct {
	UserID     uuid.UUID
	Descriptor Descriptor
}
