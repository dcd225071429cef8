package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User models an authenticated actor in the system.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PhoneNumber  *string    `json:"phone_number"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Height       *float64   `json:"height"`
	Weight       *float64   `json:"weight"`
	Gender       string     `json:"gender"`
	FitnessGoal  *string    `json:"fitness_goal"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`
}

// Caller is the authenticated identity a request acts on behalf of.
// It is passed explicitly through the service layer.
type Caller struct {
	UserID string
	Email  string
}

// TokenPair is the access/refresh pair minted at login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
