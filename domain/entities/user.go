package entities

import (
	"errors"
	"time"
)

// Role distinguishes store operators from customers.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Gender values carried for the dashboard's ratio chart.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User is an account record. The ID comes from the identity provider, not
// from us, so registration is keyed on it and is idempotent.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Photo     string    `json:"photo"`
	Role      Role      `json:"role"`
	Gender    Gender    `json:"gender"`
	DOB       time.Time `json:"dob"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser creates a customer account.
func NewUser(id, name, email, photo string, gender Gender, dob time.Time) (*User, error) {
	if id == "" {
		return nil, errors.New("user ID is required")
	}
	if name == "" {
		return nil, errors.New("user name is required")
	}
	if email == "" {
		return nil, errors.New("user email is required")
	}
	if gender != GenderMale && gender != GenderFemale {
		return nil, errors.New("invalid gender")
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Photo:     photo,
		Role:      RoleUser,
		Gender:    gender,
		DOB:       dob,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Age returns completed years between DOB and now: the raw year difference,
// minus one when the birthday has not yet occurred this year.
func (u *User) Age(now time.Time) int {
	age := now.Year() - u.DOB.Year()
	if now.Month() < u.DOB.Month() ||
		(now.Month() == u.DOB.Month() && now.Day() < u.DOB.Day()) {
		age--
	}
	return age
}

// IsAdmin reports whether the user may reach admin endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
