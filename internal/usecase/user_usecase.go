// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user. The
// address is created atomically with the user row.
type RegisterUserInput struct {
	FullName string
	Username string
	Email    string
	Password string
	DOB      string
	Gender   string
	Phone    string
	Street   string
	City     string
	Postcode string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the refresh token presented for an access token renewal.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token whose session should end.
type LogoutInput struct {
	RefreshToken string
}

// RequestPasswordResetInput identifies the account asking for a reset.
type RequestPasswordResetInput struct {
	Email string
}

// ConfirmPasswordResetInput carries the reset token and the replacement password.
type ConfirmPasswordResetInput struct {
	ResetToken  string
	NewPassword string
}

// UpdateUserInput applies a partial profile update. Nil fields stay unchanged.
type UpdateUserInput struct {
	FullName *string
	Username *string
	DOB      *string
	Gender   *string
	Phone    *string
	Street   *string
	City     *string
	Postcode *string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshOutput returns the renewed access token.
type RefreshOutput struct {
	AccessToken string
}

// RequestPasswordResetOutput carries the reset token when the account exists.
// The handler responds identically either way.
type RequestPasswordResetOutput struct {
	ResetToken string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, input RefreshInput) (*RefreshOutput, error)
	Logout(ctx context.Context, input LogoutInput) error
	RequestPasswordReset(ctx context.Context, input RequestPasswordResetInput) (*RequestPasswordResetOutput, error)
	ConfirmPasswordReset(ctx context.Context, input ConfirmPasswordResetInput) error

	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
}
