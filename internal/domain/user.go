package domain

import (
	"context"
	"time"
)

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Domain        string    `json:"domain,omitempty"`
	HasUploadedCV bool      `json:"has_uploaded_cv"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserProfile is the /auth/me payload: account data plus the current
// CV snapshot when one exists.
type UserProfile struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	CreatedAt     time.Time   `json:"created_at"`
	HasUploadedCV bool        `json:"has_uploaded_cv"`
	CV            *CVSnapshot `json:"cv,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// SetDomain records the professional domain inferred from the latest CV.
	SetDomain(ctx context.Context, userID, domain string) error
	// SetUploaded flips the has_uploaded_cv flag after a successful ingest.
	SetUploaded(ctx context.Context, userID string) error
}

type AuthUsecase interface {
	Signup(ctx context.Context, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, err error)
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
}
