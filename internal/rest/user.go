package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (domain.User, error)
	Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error)
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
	RefreshToken(ctx context.Context, oldToken, ipAddress, userAgent string) (string, domain.User, error)
	Logout(ctx context.Context, userID uint, token string) error
	VerifyEmail(ctx context.Context, verificationCodeEncrypt string) (err error)
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

type RefreshTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResponseError is the plain message envelope the account endpoints use.
type ResponseError struct {
	Message string `json:"message"`
}

// userErrorJSON renders service errors in the plain message envelope.
// Validation messages keep their text; anything unrecognized is logged and
// surfaced as an opaque 500.
func userErrorJSON(c echo.Context, err error) error {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "not found"):
		return c.JSON(http.StatusNotFound, ResponseError{Message: msg})
	case isClientFault(msg):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: msg})
	default:
		logger.Error("Unhandled user service error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Something went wrong"})
	}
}

func userIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

// bindAndValidate decodes and validates the request body, writing the 400
// response itself. It reports whether the handler should proceed.
func (h *UserHandler) bindAndValidate(c echo.Context, req interface{}) bool {
	if err := c.Bind(req); err != nil {
		logger.Error("Invalid request body", err)
		_ = c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error("Request validation failed", err)
		_ = c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return false
	}

	return true
}

func (h *UserHandler) Register(c echo.Context) error {
	var req UserRegisterRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Register(ctx, &domain.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return userErrorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    user,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req UserLoginRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.userService.Login(ctx, req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		// Credential failures stay 401 and never disclose which part failed.
		logger.Error("Failed to login", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout invalidates the session token the auth middleware resolved.
func (h *UserHandler) Logout(c echo.Context) error {
	userID, _, errRes := actorFromContext(c)
	if errRes != nil {
		return errRes
	}

	token, ok := c.Get("token").(string)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.Logout(ctx, userID, token); err != nil {
		return userErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

func (h *UserHandler) RefreshToken(c echo.Context) error {
	var req RefreshTokenRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newToken, user, err := h.userService.RefreshToken(ctx, req.Token, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		logger.Error("Failed to refresh token", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Token refreshed successfully",
		"token":   newToken,
		"user":    user,
	})
}

func (h *UserHandler) VerifyEmail(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.VerifyEmail(ctx, c.Param("code")); err != nil {
		if strings.Contains(err.Error(), "invalid or expired") {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		return userErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, "Successfully verified email")
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	userID, errRes := userIDParam(c)
	if errRes != nil {
		return errRes
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		return userErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User retrieved successfully",
		"user":    user,
	})
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		return userErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Users retrieved successfully",
		"users":   users,
	})
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, errRes := userIDParam(c)
	if errRes != nil {
		return errRes
	}

	var req UserUpdateRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.userService.UpdateUser(ctx, userID, &domain.User{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return userErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    updated,
	})
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, errRes := userIDParam(c)
	if errRes != nil {
		return errRes
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.DeleteUser(ctx, userID); err != nil {
		return userErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully",
	})
}
