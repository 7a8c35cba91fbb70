package seeder

import (
	"context"
	"fmt"

	"hr-recruitment/internal/database"
)

type SeedUser struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     string
}

// HRUsersSeeder creates the initial staff accounts. Existing usernames or
// emails are left untouched.
type HRUsersSeeder struct {
	Users []SeedUser
	Hash  func(password string) (string, error)
}

func DefaultHRUsers(adminPassword, hrPassword string) []SeedUser {
	if adminPassword == "" {
		adminPassword = "Admin@123"
	}
	if hrPassword == "" {
		hrPassword = "Hr@123"
	}
	return []SeedUser{
		{Username: "admin", Email: "admin@company.com", FullName: "System Administrator", Password: adminPassword, Role: "Admin"},
		{Username: "hr_manager", Email: "hr.manager@company.com", FullName: "HR Manager", Password: hrPassword, Role: "HR"},
	}
}

func (HRUsersSeeder) Name() string { return "hr_users" }

func (s HRUsersSeeder) Run(ctx context.Context, db database.DB) error {
	if s.Hash == nil {
		return fmt.Errorf("nil password hasher")
	}
	if err := requireColumns(ctx, db, "hr_users",
		"id", "username", "email", "full_name", "password_hash", "role", "is_active", "created_at", "updated_at",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, u := range s.Users {
		hash, err := s.Hash(u.Password)
		if err != nil {
			return fmt.Errorf("hash %s: %w", u.Username, err)
		}
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO hr_users (id, username, email, full_name, password_hash, role, is_active, created_at, updated_at)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, true, now(), now())
			 ON CONFLICT DO NOTHING`,
			u.Username, u.Email, u.FullName, hash, u.Role,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
