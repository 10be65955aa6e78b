package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/pkg/apperror"
	"github.com/Hadi891/CareerCompass/pkg/auth"
	"github.com/Hadi891/CareerCompass/pkg/security"
)

type authUsecase struct {
	userRepo domain.UserRepository
	cvRepo   domain.CVRepository
	issuer   *auth.Issuer
	validate *validator.Validate
}

func NewAuthUsecase(userRepo domain.UserRepository, cvRepo domain.CVRepository, issuer *auth.Issuer, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, cvRepo: cvRepo, issuer: issuer, validate: validate}
}

type signupInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (u *authUsecase) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	if err := u.validate.Struct(signupInput{Email: email, Password: password}); err != nil {
		return nil, apperror.BadRequest("Signup requires a valid email and a password of at least 6 characters")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	// Duplicate emails surface as a Conflict from the repository.
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same message as a bad password: no account enumeration.
			return "", apperror.Unauthorized("Invalid email or password")
		}
		return "", err
	}
	if !security.VerifyPassword(password, user.PasswordHash) {
		return "", apperror.Unauthorized("Invalid email or password")
	}

	token, err := u.issuer.IssueToken(user.ID, user.Email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

func (u *authUsecase) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	profile := &domain.UserProfile{
		ID:            user.ID,
		Email:         user.Email,
		CreatedAt:     user.CreatedAt,
		HasUploadedCV: user.HasUploadedCV,
	}

	snap, err := u.cvRepo.GetLatestByUser(ctx, userID)
	switch {
	case err == nil:
		profile.CV = snap
	case errors.Is(err, domain.ErrNotFound):
		// No CV yet; the profile is still served.
	default:
		return nil, err
	}
	return profile, nil
}
