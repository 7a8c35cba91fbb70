package handler

import (
	"errors"
	"time"

	"hr-recruitment/internal/delivery/http/dto"
	"hr-recruitment/internal/delivery/http/middleware"
	"hr-recruitment/internal/domain/hruser"
	"hr-recruitment/internal/pkg/response"
	"hr-recruitment/internal/usecase"
	ucauth "hr-recruitment/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	uc     usecase.AuthUsecase
	cookie CookieOptions
}

func NewAuthHandler(uc usecase.AuthUsecase, cookie CookieOptions) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "authToken"
	}
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = 24 * time.Hour
	}
	return &AuthHandler{uc: uc, cookie: cookie}
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Username == "" || req.Password == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Username and password are required", nil, nil)
	}

	res, err := h.uc.Login(c.Context(), ucauth.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		Expires:  res.ExpiresAt,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	data := map[string]any{
		"user":      dto.NewHRUserResponse(res.User),
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
	}
	return response.Success(c, fiber.StatusOK, "Login successful", data)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return response.Success(c, fiber.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) Profile(c fiber.Ctx) error {
	me, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "", nil, nil)
	}

	usr, err := h.uc.Profile(c.Context(), me.ID)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", map[string]any{"user": usr})
}

func (h *AuthHandler) ChangePassword(c fiber.Ctx) error {
	me, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "", nil, nil)
	}

	var req dto.ChangePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Current password and new password are required", nil, nil)
	}

	if err := h.uc.ChangePassword(c.Context(), me.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Password changed successfully", nil)
}

func (h *AuthHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", map[string]any{"users": users})
}

func (h *AuthHandler) CreateUser(c fiber.Ctx) error {
	var req dto.CreateHRUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.uc.CreateUser(c.Context(), ucauth.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "HR user created successfully", map[string]any{"user": usr})
}

func (h *AuthHandler) UpdateUser(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "HR user not found", nil, err)
	}

	var req dto.UpdateHRUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.uc.UpdateUser(c.Context(), id, ucauth.UpdateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "HR user updated successfully", map[string]any{"user": usr})
}

func (h *AuthHandler) DeleteUser(c fiber.Ctx) error {
	me, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "HR user not found", nil, err)
	}

	usr, err := h.uc.DeleteUser(c.Context(), me.ID, id)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "HR user deleted successfully", map[string]any{"user": dto.NewHRUserResponse(usr)})
}

func (h *AuthHandler) Roles(c fiber.Ctx) error {
	roles := make(map[hruser.Role]usecase.RoleInfo)
	for _, r := range h.uc.Roles() {
		roles[r.Role] = r
	}
	return response.Success(c, fiber.StatusOK, "", map[string]any{"roles": roles})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrWrongPassword):
		return middleware.NewAppError(fiber.StatusBadRequest, "Current password is incorrect", nil, err)
	case errors.Is(err, ucauth.ErrInvalidRole):
		return middleware.NewAppError(fiber.StatusBadRequest, `Invalid role. Must be either "HR" or "Admin"`, nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucauth.ErrCannotDeleteSelf):
		return middleware.NewAppError(fiber.StatusBadRequest, "You cannot delete your own account", nil, err)
	case errors.Is(err, ucauth.ErrLastAdmin):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot delete the last admin user", nil, err)
	case errors.Is(err, ucauth.ErrUserExists):
		return middleware.NewAppError(fiber.StatusConflict, "Username or email already exists", nil, err)
	case errors.Is(err, ucauth.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "HR user not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
