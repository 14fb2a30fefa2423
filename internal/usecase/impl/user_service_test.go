package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/auth"
	"storefront/internal/usecase"
)

type userServiceFixture struct {
	svc      usecase.UserUsecase
	repos    *fakeRepos
	tx       *fakeTxManager
	tokenSvc service.TokenService
	hasher   service.PasswordHasher
}

func newUserServiceFixture(t *testing.T, mutateCfg func(*config.Config)) *userServiceFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"
	cfg.SecretKey.Reset = "reset-secret-for-tests"
	cfg.Auth = &config.AuthConfig{BcryptCost: 4}
	if mutateCfg != nil {
		mutateCfg(cfg)
	}

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(cfg)
	repos := newFakeRepos()
	tx := newFakeTxManager(repos)

	svc := NewUserService(UserServiceParams{
		TxManager:        tx,
		UserRepo:         repos.users,
		RefreshTokenRepo: repos.tokens,
		Hasher:           hasher,
		TokenService:     tokenSvc,
		Logger:           newDiscardLogger(),
	})

	return &userServiceFixture{
		svc:      svc,
		repos:    repos,
		tx:       tx,
		tokenSvc: tokenSvc,
		hasher:   hasher,
	}
}

func registerInput(email string) usecase.RegisterUserInput {
	return usecase.RegisterUserInput{
		FullName: "Jordan Smith",
		Username: "jordans",
		Email:    email,
		Password: "initial-password",
		Street:   "1 High Street",
		City:     "Leeds",
		Postcode: "LS1 1AA",
	}
}

func TestRegisterUser_CreatesUserAndAddress(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	out, err := f.svc.RegisterUser(context.Background(), registerInput("jordan@example.com"))
	require.NoError(t, err)
	require.NotNil(t, out.User)

	assert.Equal(t, entity.RoleUser, out.User.Role)
	assert.NotEqual(t, "initial-password", out.User.PasswordHash)
	require.NotNil(t, out.User.Address)
	assert.Equal(t, "Leeds", out.User.Address.City)
	assert.Len(t, f.repos.addresses.addresses, 1)
	assert.Equal(t, 1, f.tx.commits)
}

func TestRegisterUser_DuplicateRollsBack(t *testing.T) {
	f := newUserServiceFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.NoError(t, err)

	_, err = f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	// Nothing from the failed attempt may survive.
	assert.Len(t, f.repos.users.users, 1)
	assert.Len(t, f.repos.addresses.addresses, 1)
	assert.Equal(t, 1, f.tx.rollbacks)
}

func TestLogin_EmptyInputShortCircuits(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	_, err := f.svc.Login(context.Background(), usecase.LoginInput{Email: "", Password: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	// The store must not be consulted for an obviously invalid request.
	assert.Zero(t, f.repos.users.findByEmailCalls)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	f := newUserServiceFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.NoError(t, err)

	_, unknownErr := f.svc.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"})
	_, wrongErr := f.svc.Login(ctx, usecase.LoginInput{Email: "jordan@example.com", Password: "not-the-password"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.True(t, errors.Is(unknownErr, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(wrongErr, domainerrors.ErrInvalidCredentials))
	// Identical error values: the response reveals nothing about which failed.
	assert.Equal(t, unknownErr, wrongErr)

	// No session may be written on a failed login.
	assert.Empty(t, f.repos.tokens.tokens)
}

func TestLogin_IssuesTokensAndStoresHashedSession(t *testing.T) {
	f := newUserServiceFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.NoError(t, err)

	out, err := f.svc.Login(ctx, usecase.LoginInput{Email: "jordan@example.com", Password: "initial-password"})
	require.NoError(t, err)
	require.NotEmpty(t, out.AccessToken)
	require.NotEmpty(t, out.RefreshToken)

	claims, err := f.tokenSvc.ValidateToken(out.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser.String(), claims.Role)

	// Only the digest of the refresh token is stored.
	hash := f.tokenSvc.HashToken(out.RefreshToken)
	require.Contains(t, f.repos.tokens.tokens, hash)
	assert.NotContains(t, f.repos.tokens.tokens, out.RefreshToken)
}

func TestLogin_MalformedStoredHashIsNotAMismatch(t *testing.T) {
	f := newUserServiceFixture(t, nil)
	ctx := context.Background()

	corrupt := &entity.User{
		Email:        "corrupt@example.com",
		PasswordHash: "not-a-bcrypt-hash",
		Role:         entity.RoleUser,
	}
	require.NoError(t, f.repos.users.Create(ctx, corrupt))

	_, err := f.svc.Login(ctx, usecase.LoginInput{Email: "corrupt@example.com", Password: "anything"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInternalError))
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestRefresh_ExchangesStoredToken(t *testing.T) {
	f := newUserServiceFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.NoError(t, err)
	login, err := f.svc.Login(ctx, usecase.LoginInput{Email: "jordan@example.com", Password: "initial-password"})
	require.NoError(t, err)

	out, err := f.svc.Refresh(ctx, usecase.RefreshInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	claims, err := f.tokenSvc.ValidateToken(out.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, claims.UserID)
}

func TestRefresh_RevokedTokenIsRejected(t *testing.T) {
	f := newUserServiceFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.NoError(t, err)
	login, err := f.svc.Login(ctx, usecase.LoginInput{Email: "jordan@example.com", Password: "initial-password"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, usecase.LogoutInput{RefreshToken: login.RefreshToken}))
	assert.Empty(t, f.repos.tokens.tokens)

	// A second logout of the same session is a no-op.
	require.NoError(t, f.svc.Logout(ctx, usecase.LogoutInput{RefreshToken: login.RefreshToken}))

	_, err = f.svc.Refresh(ctx, usecase.RefreshInput{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestRefresh_ExpiredTokenIsDistinguishable(t *testing.T) {
	f := newUserServiceFixture(t, func(cfg *config.Config) {
		cfg.Auth.RefreshTokenTTL = -time.Minute
	})
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.NoError(t, err)
	login, err := f.svc.Login(ctx, usecase.LoginInput{Email: "jordan@example.com", Password: "initial-password"})
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, usecase.RefreshInput{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestRefresh_GarbageToken(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	_, err := f.svc.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: "garbage"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestPasswordReset_FullFlow(t *testing.T) {
	f := newUserServiceFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, usecase.LoginInput{Email: "jordan@example.com", Password: "initial-password"})
	require.NoError(t, err)
	require.NotEmpty(t, f.repos.tokens.tokens)

	reset, err := f.svc.RequestPasswordReset(ctx, usecase.RequestPasswordResetInput{Email: "jordan@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, reset.ResetToken)

	err = f.svc.ConfirmPasswordReset(ctx, usecase.ConfirmPasswordResetInput{
		ResetToken:  reset.ResetToken,
		NewPassword: "a-brand-new-password",
	})
	require.NoError(t, err)

	// Every session issued under the old password is gone.
	assert.Empty(t, f.repos.tokens.tokens)

	_, err = f.svc.Login(ctx, usecase.LoginInput{Email: "jordan@example.com", Password: "initial-password"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = f.svc.Login(ctx, usecase.LoginInput{Email: "jordan@example.com", Password: "a-brand-new-password"})
	assert.NoError(t, err)
}

func TestRequestPasswordReset_UnknownEmailRevealsNothing(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	out, err := f.svc.RequestPasswordReset(context.Background(), usecase.RequestPasswordResetInput{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Empty(t, out.ResetToken)
}

func TestConfirmPasswordReset_RejectsAccessToken(t *testing.T) {
	f := newUserServiceFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.NoError(t, err)
	login, err := f.svc.Login(ctx, usecase.LoginInput{Email: "jordan@example.com", Password: "initial-password"})
	require.NoError(t, err)

	err = f.svc.ConfirmPasswordReset(ctx, usecase.ConfirmPasswordResetInput{
		ResetToken:  login.AccessToken,
		NewPassword: "whatever-else",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestGetUser_NotFound(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	_, err := f.svc.GetUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUpdateUser_PartialUpdate(t *testing.T) {
	f := newUserServiceFixture(t, nil)
	ctx := context.Background()

	out, err := f.svc.RegisterUser(ctx, registerInput("jordan@example.com"))
	require.NoError(t, err)

	phone := "+44 7700 900123"
	city := "York"
	updated, err := f.svc.UpdateUser(ctx, out.User.ID, usecase.UpdateUserInput{
		Phone: &phone,
		City:  &city,
	})
	require.NoError(t, err)

	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Jordan Smith", updated.FullName)
	require.NotNil(t, updated.Address)
	assert.Equal(t, city, updated.Address.City)
	assert.Equal(t, "1 High Street", updated.Address.Street)
}
