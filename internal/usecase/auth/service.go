package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"hr-recruitment/internal/domain/hruser"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidRole        = errors.New(`invalid role, must be either "HR" or "Admin"`)
	ErrUserExists         = errors.New("username or email already exists")
	ErrUserNotFound       = errors.New("hr user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrCannotDeleteSelf   = errors.New("you cannot delete your own account")
	ErrLastAdmin          = errors.New("cannot delete the last admin user")
	ErrInternal           = errors.New("internal error")
)

const minPasswordLength = 6

type LoginInput struct {
	Username string
	Password string
}

type CreateUserInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     string
}

type UpdateUserInput struct {
	Email    *string
	FullName *string
	Role     *string
	IsActive *bool
}

type Service struct {
	users      hruser.Repository
	bcryptCost int
}

func NewService(users hruser.Repository, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, bcryptCost: bcryptCost}
}

// Login checks credentials. Unknown, inactive and wrong-password accounts
// all yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (hruser.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return hruser.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, hruser.ErrNotFound) {
			return hruser.User{}, ErrInvalidCredentials
		}
		return hruser.User{}, ErrInternal
	}
	if !u.IsActive {
		return hruser.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return hruser.User{}, ErrInvalidCredentials
	}

	_ = s.users.TouchLastLogin(ctx, u.ID)
	return sanitizeUser(u), nil
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	if len(strings.TrimSpace(next)) < minPasswordLength {
		return ErrInvalidInput
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, hruser.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := s.Hash(next)
	if err != nil {
		return ErrInternal
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (hruser.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || fullName == "" || !isValidEmail(email) || len(in.Password) < minPasswordLength {
		return hruser.User{}, ErrInvalidInput
	}

	role := hruser.RoleHR
	if strings.TrimSpace(in.Role) != "" {
		role = hruser.Role(strings.TrimSpace(in.Role))
	}
	if !role.Valid() {
		return hruser.User{}, ErrInvalidRole
	}

	hash, err := s.Hash(in.Password)
	if err != nil {
		return hruser.User{}, ErrInternal
	}

	u := hruser.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, hruser.ErrDuplicate) {
			return hruser.User{}, ErrUserExists
		}
		return hruser.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return hruser.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (hruser.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, hruser.ErrNotFound) {
			return hruser.User{}, ErrUserNotFound
		}
		return hruser.User{}, ErrInternal
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !isValidEmail(email) {
			return hruser.User{}, ErrInvalidInput
		}
		u.Email = email
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return hruser.User{}, ErrInvalidInput
		}
		u.FullName = name
	}
	if in.Role != nil {
		role := hruser.Role(strings.TrimSpace(*in.Role))
		if !role.Valid() {
			return hruser.User{}, ErrInvalidRole
		}
		u.Role = role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	if err := s.users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, hruser.ErrDuplicate):
			return hruser.User{}, ErrUserExists
		case errors.Is(err, hruser.ErrNotFound):
			return hruser.User{}, ErrUserNotFound
		}
		return hruser.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

// DeleteUser removes id on behalf of actorID. Nobody may delete themselves
// or the last active admin.
func (s *Service) DeleteUser(ctx context.Context, actorID, id uuid.UUID) (hruser.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, hruser.ErrNotFound) {
			return hruser.User{}, ErrUserNotFound
		}
		return hruser.User{}, ErrInternal
	}
	if u.ID == actorID {
		return hruser.User{}, ErrCannotDeleteSelf
	}
	if u.Role == hruser.RoleAdmin {
		n, err := s.users.CountActiveAdmins(ctx)
		if err != nil {
			return hruser.User{}, ErrInternal
		}
		if n <= 1 {
			return hruser.User{}, ErrLastAdmin
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, hruser.ErrNotFound) {
			return hruser.User{}, ErrUserNotFound
		}
		return hruser.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]hruser.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	for i := range users {
		users[i] = sanitizeUser(users[i])
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (hruser.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, hruser.ErrNotFound) {
			return hruser.User{}, ErrUserNotFound
		}
		return hruser.User{}, ErrInternal
	}
	return u, nil
}

func (s *Service) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	a, err := mail.ParseAddress(email)
	return err == nil && a.Address == email
}

func sanitizeUser(u hruser.User) hruser.User {
	u.PasswordHash = ""
	return u
}
