package usecase

import (
	"context"
	"errors"
	"time"

	"hr-recruitment/internal/domain/hruser"
	"hr-recruitment/internal/pkg/jwt"
	ucauth "hr-recruitment/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
)

type AuthUsecase interface {
	Login(ctx context.Context, in ucauth.LoginInput) (LoginResult, error)
	Authenticate(ctx context.Context, token string) (hruser.User, error)
	Profile(ctx context.Context, id uuid.UUID) (hruser.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error
	ListUsers(ctx context.Context) ([]hruser.User, error)
	CreateUser(ctx context.Context, in ucauth.CreateUserInput) (hruser.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in ucauth.UpdateUserInput) (hruser.User, error)
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) (hruser.User, error)
	Roles() []RoleInfo
}

type LoginResult struct {
	User      hruser.User
	Token     string
	ExpiresAt time.Time
}

type RoleInfo struct {
	Role        hruser.Role `json:"-"`
	UserType    string      `json:"userType"`
	Permissions []string    `json:"permissions"`
	Description string      `json:"description"`
}

type Auth struct {
	authSvc *ucauth.Service
	jwt     jwt.Service
}

func NewAuthUsecase(users hruser.Repository, jwtSvc jwt.Service, bcryptCost int) *Auth {
	return &Auth{authSvc: ucauth.NewService(users, bcryptCost), jwt: jwtSvc}
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (LoginResult, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return LoginResult{}, err
	}

	token, exp, err := u.jwt.Issue(usr.ID, usr.Username, string(usr.Role))
	if err != nil {
		return LoginResult{}, ErrInternal
	}

	return LoginResult{User: usr, Token: token, ExpiresAt: exp}, nil
}

// Authenticate resolves a session token to a live, active user.
func (u *Auth) Authenticate(ctx context.Context, token string) (hruser.User, error) {
	if token == "" {
		return hruser.User{}, ErrUnauthorized
	}

	claims, err := u.jwt.Validate(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return hruser.User{}, ErrTokenExpired
		}
		return hruser.User{}, ErrUnauthorized
	}

	usr, err := u.authSvc.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ucauth.ErrUserNotFound) {
			return hruser.User{}, ErrUnauthorized
		}
		return hruser.User{}, ErrInternal
	}
	if !usr.IsActive {
		return hruser.User{}, ErrUnauthorized
	}

	usr.PasswordHash = ""
	return usr, nil
}

func (u *Auth) Profile(ctx context.Context, id uuid.UUID) (hruser.User, error) {
	usr, err := u.authSvc.GetUser(ctx, id)
	if err != nil {
		return hruser.User{}, err
	}
	usr.PasswordHash = ""
	return usr, nil
}

func (u *Auth) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	return u.authSvc.ChangePassword(ctx, id, current, next)
}

func (u *Auth) ListUsers(ctx context.Context) ([]hruser.User, error) {
	return u.authSvc.ListUsers(ctx)
}

func (u *Auth) CreateUser(ctx context.Context, in ucauth.CreateUserInput) (hruser.User, error) {
	return u.authSvc.CreateUser(ctx, in)
}

func (u *Auth) UpdateUser(ctx context.Context, id uuid.UUID, in ucauth.UpdateUserInput) (hruser.User, error) {
	return u.authSvc.UpdateUser(ctx, id, in)
}

func (u *Auth) DeleteUser(ctx context.Context, actorID, id uuid.UUID) (hruser.User, error) {
	return u.authSvc.DeleteUser(ctx, actorID, id)
}

func (u *Auth) Roles() []RoleInfo {
	roles := hruser.Roles()
	out := make([]RoleInfo, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleInfo{
			Role:        r,
			UserType:    roleUserType(r),
			Permissions: r.Permissions(),
			Description: r.Description(),
		})
	}
	return out
}

func roleUserType(r hruser.Role) string {
	switch r {
	case hruser.RoleAdmin:
		return "admin"
	case hruser.RoleHR:
		return "hr"
	default:
		return ""
	}
}
