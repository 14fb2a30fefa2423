// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser creates the user row and its address in one transaction. A
// duplicate email rolls everything back and surfaces as a conflict.
func (srv *userService) RegisterUser(ctx context.Context, input usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.Wrap(err)
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		userRepo := repos.UserRepo()
		addressRepo := repos.AddressRepo()

		if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
			return domainerrors.ErrUserAlreadyExists
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		user := &entity.User{
			FullName:     input.FullName,
			Username:     input.Username,
			Email:        input.Email,
			DOB:          input.DOB,
			Gender:       input.Gender,
			Phone:        input.Phone,
			PasswordHash: hashedPassword,
			Role:         entity.RoleUser,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		address := &entity.Address{
			UserID:   user.ID,
			Street:   input.Street,
			City:     input.City,
			Postcode: input.Postcode,
		}
		if err := addressRepo.Create(ctx, address); err != nil {
			return err
		}

		user.Address = address
		registeredUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// Login verifies the credential and issues the token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("email and password are required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		srv.log(ctx).Error("Credential lookup failed", slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	ok, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		// The stored hash is unreadable. That is an operational fault, not a
		// failed login attempt.
		srv.log(ctx).Error("Stored credential hash is unreadable", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.Wrap(err)
	}
	if !ok {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, domainerrors.ErrInternalError.Wrap(err)
	}

	refreshToken, err := srv.tokenService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, domainerrors.ErrInternalError.Wrap(err)
	}

	session := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenTTL()),
	}
	if err := srv.refreshTokenRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID), slog.String("role", user.Role.String()))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh exchanges a valid, still-stored refresh token for a new access token.
func (srv *userService) Refresh(ctx context.Context, input usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	if input.RefreshToken == "" {
		return nil, domainerrors.ErrTokenMissing
	}

	claims, err := srv.tokenService.ValidateToken(input.RefreshToken, service.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	// The token must still be on record. Logout or password reset removes it.
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)
	if _, err := srv.refreshTokenRepo.FindByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(claims.UserID, entity.Role(claims.Role))
	if err != nil {
		return nil, domainerrors.ErrInternalError.Wrap(err)
	}

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Logout deletes the stored session. Logging out an already dead session is
// not an error.
func (srv *userService) Logout(ctx context.Context, input usecase.LogoutInput) error {
	if input.RefreshToken == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("refresh token is required")
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)
	if err := srv.refreshTokenRepo.DeleteByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			srv.log(ctx).Debug("Logout for a session that no longer exists")

			return nil
		}

		return domainerrors.NewDatabaseExecuteError(err)
	}

	return nil
}

// RequestPasswordReset issues a reset token for a known account. The caller
// responds identically whether or not the account exists.
func (srv *userService) RequestPasswordReset(ctx context.Context, input usecase.RequestPasswordResetInput) (*usecase.RequestPasswordResetOutput, error) {
	if input.Email == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("email is required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Password reset requested for unknown email")

			return &usecase.RequestPasswordResetOutput{}, nil
		}

		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	resetToken, err := srv.tokenService.GenerateResetToken(user.ID)
	if err != nil {
		return nil, domainerrors.ErrInternalError.Wrap(err)
	}

	srv.log(ctx).Info("Password reset token issued", slog.Any("userID", user.ID))

	return &usecase.RequestPasswordResetOutput{ResetToken: resetToken}, nil
}

// ConfirmPasswordReset verifies the reset token, stores the new hash and
// revokes every live session of the account.
func (srv *userService) ConfirmPasswordReset(ctx context.Context, input usecase.ConfirmPasswordResetInput) error {
	if input.NewPassword == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("new password is required")
	}

	claims, err := srv.tokenService.ValidateToken(input.ResetToken, service.TokenTypeReset)
	if err != nil {
		return err
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrInternalError.Wrap(err)
	}

	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		userRepo := repos.UserRepo()

		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user for password reset")
		}

		user.PasswordHash = hashedPassword
		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}

		// The old password may be compromised; every session dies with it.
		return repos.RefreshTokenRepo().DeleteByUserID(ctx, user.ID)
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset failed", slog.Any("userID", claims.UserID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", claims.UserID))

	return nil
}

// GetUser retrieves a user with their address.
func (srv *userService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	return user, nil
}

// UpdateUser applies a partial profile update in one transaction.
func (srv *userService) UpdateUser(ctx context.Context, userID uuid.UUID, input usecase.UpdateUserInput) (*entity.User, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		userRepo := repos.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user for update")
		}

		applyIfSet(&user.FullName, input.FullName)
		applyIfSet(&user.Username, input.Username)
		applyIfSet(&user.DOB, input.DOB)
		applyIfSet(&user.Gender, input.Gender)
		applyIfSet(&user.Phone, input.Phone)

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}

		if input.Street != nil || input.City != nil || input.Postcode != nil {
			if err := srv.updateAddress(ctx, repos.AddressRepo(), user, input); err != nil {
				return err
			}
		}

		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (srv *userService) updateAddress(ctx context.Context, addressRepo repository.AddressRepository, user *entity.User, input usecase.UpdateUserInput) error {
	address, err := addressRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrAddressNotFound) {
			return errors.Wrap(err, "failed to load address for update")
		}
		address = &entity.Address{UserID: user.ID}
		applyIfSet(&address.Street, input.Street)
		applyIfSet(&address.City, input.City)
		applyIfSet(&address.Postcode, input.Postcode)

		if err := addressRepo.Create(ctx, address); err != nil {
			return err
		}
		user.Address = address

		return nil
	}

	applyIfSet(&address.Street, input.Street)
	applyIfSet(&address.City, input.City)
	applyIfSet(&address.Postcode, input.Postcode)

	if err := addressRepo.Update(ctx, address); err != nil {
		return err
	}
	user.Address = address

	return nil
}

// ListUsers returns every account with its address. Admin only; the gate sits
// in the router.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	return users, nil
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
