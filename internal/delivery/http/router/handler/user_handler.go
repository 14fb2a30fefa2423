// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storefront/config"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
)

// refreshTokenCookie is the only client-side channel for refresh tokens.
// It is HttpOnly so scripts can never read it, and scoped under the API
// prefix so it is not replayed to unrelated paths.
const (
	refreshTokenCookie     = "refresh_token"
	refreshTokenCookiePath = "/api/v1"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, cfg *config.Config, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

// --- Request / view models ---

type registerUserRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	DOB      string `json:"dob"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	Street   string `json:"street" validate:"required"`
	City     string `json:"city" validate:"required"`
	Postcode string `json:"postcode" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetConfirmRequest struct {
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type updateUserRequest struct {
	FullName *string `json:"fullName"`
	Username *string `json:"username"`
	DOB      *string `json:"dob"`
	Gender   *string `json:"gender"`
	Phone    *string `json:"phone"`
	Street   *string `json:"street"`
	City     *string `json:"city"`
	Postcode *string `json:"postcode"`
}

// addressView is the client-facing shape of a delivery address.
type addressView struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

// userView is the client-facing shape of a user. The password hash never
// leaves the server.
type userView struct {
	ID        uuid.UUID    `json:"id"`
	FullName  string       `json:"fullName"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	DOB       string       `json:"dob,omitempty"`
	Gender    string       `json:"gender,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Role      string       `json:"role"`
	CreatedAt time.Time    `json:"createdAt"`
	Address   *addressView `json:"address,omitempty"`
}

func toUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	view := &userView{
		ID:        user.ID,
		FullName:  user.FullName,
		Username:  user.Username,
		Email:     user.Email,
		DOB:       user.DOB,
		Gender:    user.Gender,
		Phone:     user.Phone,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
	if user.Address != nil {
		view.Address = &addressView{
			Street:   user.Address.Street,
			City:     user.Address.City,
			Postcode: user.Address.Postcode,
		}
	}

	return view
}

// --- Handlers ---

// RegisterUser handles the user registration request.
func (h *UserHandler) RegisterUser(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RegisterUser(c.Request().Context(), usecase.RegisterUserInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		DOB:      req.DOB,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Street:   req.Street,
		City:     req.City,
		Postcode: req.Postcode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserView(output.User), "User registered successfully")
}

// Login handles the user login request. The access token is returned in the
// body and mirrored in the Authorization header; the refresh token travels
// only in an HttpOnly cookie.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+output.AccessToken)

	return response.Success(c, http.StatusOK, map[string]any{
		"accessToken": output.AccessToken,
		"user":        toUserView(output.User),
	}, "Login successful")
}

// Refresh exchanges a refresh token for a new access token. The token is
// read from the session cookie, with a JSON body fallback for non-browser
// clients.
func (h *UserHandler) Refresh(c echo.Context) error {
	refreshToken := h.refreshTokenFromRequest(c)
	if refreshToken == "" {
		return errors.WithStack(domainerrors.ErrTokenMissing)
	}

	output, err := h.uc.Refresh(c.Request().Context(), usecase.RefreshInput{RefreshToken: refreshToken})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+output.AccessToken)

	return response.Success(c, http.StatusOK, map[string]string{
		"accessToken": output.AccessToken,
	}, "Token refreshed successfully")
}

// Logout ends the refresh session and clears the session cookie. Logging out
// an already-ended session still succeeds.
func (h *UserHandler) Logout(c echo.Context) error {
	refreshToken := h.refreshTokenFromRequest(c)
	if refreshToken != "" {
		if err := h.uc.Logout(c.Request().Context(), usecase.LogoutInput{RefreshToken: refreshToken}); err != nil {
			return errors.WithStack(err)
		}
	}

	h.clearRefreshCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// RequestPasswordReset starts the reset flow. The response is identical
// whether or not the account exists, so the endpoint reveals nothing about
// registered emails.
func (h *UserHandler) RequestPasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password reset input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RequestPasswordReset(c.Request().Context(), usecase.RequestPasswordResetInput{Email: req.Email})
	if err != nil {
		return errors.WithStack(err)
	}

	// Token delivery is out of band. In debug environments the token is
	// included so the flow can be exercised without a mail sink.
	var data any
	if h.cfg.Env.Debug && output.ResetToken != "" {
		data = map[string]string{"resetToken": output.ResetToken}
	}

	return response.Success(c, http.StatusOK, data, "If the account exists, a reset token has been issued")
}

// ConfirmPasswordReset sets a new password using a reset token. All refresh
// sessions for the user are revoked.
func (h *UserHandler) ConfirmPasswordReset(c echo.Context) error {
	var req passwordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password reset input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.ConfirmPasswordReset(c.Request().Context(), usecase.ConfirmPasswordResetInput{
		ResetToken:  req.ResetToken,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password updated successfully")
}

// GetUser returns a user's profile. Users may read only their own profile;
// admins may read anyone's.
func (h *UserHandler) GetUser(c echo.Context) error {
	targetID, err := h.authorizeProfileAccess(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), targetID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile retrieved successfully")
}

// UpdateUser applies a partial profile update with the same access rule as
// GetUser.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	targetID, err := h.authorizeProfileAccess(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile update input")
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), targetID, usecase.UpdateUserInput{
		FullName: req.FullName,
		Username: req.Username,
		DOB:      req.DOB,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Street:   req.Street,
		City:     req.City,
		Postcode: req.Postcode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile updated successfully")
}

// ListUsers returns all users. Admin only, enforced by the router.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return response.Success(c, http.StatusOK, views, "Users retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// --- Helpers ---

// authorizeProfileAccess resolves the :userID path parameter and enforces
// the self-or-admin rule.
func (h *UserHandler) authorizeProfileAccess(c echo.Context) (uuid.UUID, error) {
	targetID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(map[string]string{"userID": "must be a UUID"})
	}

	callerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return uuid.Nil, errors.WithStack(domainerrors.ErrTokenMissing)
	}

	if callerID != targetID && !middleware.IsAdmin(c) {
		return uuid.Nil, errors.WithStack(domainerrors.ErrForbidden)
	}

	return targetID, nil
}

func (h *UserHandler) refreshTokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return ""
	}

	return req.RefreshToken
}

func (h *UserHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token,
		Path:     refreshTokenCookiePath,
		MaxAge:   int(h.cfg.Auth.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *UserHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     refreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
