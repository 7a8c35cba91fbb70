package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	pg "hr-recruitment/internal/database/postgres"
	"hr-recruitment/internal/domain/hruser"

	"github.com/google/uuid"
)

const hrUserColumns = `id, username, email, full_name, password_hash, role, is_active, last_login_at, created_at, updated_at`

// HRUserRepository keeps prepared statements for the lookups done on every
// authenticated request.
type HRUserRepository struct {
	db *sql.DB

	stmtGetByID       *sql.Stmt
	stmtGetByUsername *sql.Stmt
}

func NewHRUserRepository(ctx context.Context, db *sql.DB) (*HRUserRepository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	r := &HRUserRepository{db: db}

	var err error
	r.stmtGetByID, err = db.PrepareContext(ctx, `SELECT `+hrUserColumns+` FROM hr_users WHERE id = $1`)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByUsername, err = db.PrepareContext(ctx, `SELECT `+hrUserColumns+` FROM hr_users WHERE lower(username) = lower($1)`)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *HRUserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByUsername)

	return firstErr
}

func (r *HRUserRepository) Create(ctx context.Context, u hruser.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hr_users (id, username, email, full_name, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Username, strings.ToLower(u.Email), u.FullName, u.PasswordHash, string(u.Role), u.IsActive,
	)
	if pg.IsUniqueViolation(err, "") {
		return hruser.ErrDuplicate
	}
	return err
}

func (r *HRUserRepository) Update(ctx context.Context, u hruser.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hr_users
		 SET email = $2, full_name = $3, role = $4, is_active = $5, updated_at = now()
		 WHERE id = $1`,
		u.ID, strings.ToLower(u.Email), u.FullName, string(u.Role), u.IsActive,
	)
	if pg.IsUniqueViolation(err, "") {
		return hruser.ErrDuplicate
	}
	return affectedOne(res, err)
}

func (r *HRUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hr_users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	return affectedOne(res, err)
}

func (r *HRUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE hr_users SET last_login_at = now() WHERE id = $1`, id)
	return err
}

func (r *HRUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hr_users WHERE id = $1`, id)
	return affectedOne(res, err)
}

func (r *HRUserRepository) GetByID(ctx context.Context, id uuid.UUID) (hruser.User, error) {
	return scanHRUser(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *HRUserRepository) GetByUsername(ctx context.Context, username string) (hruser.User, error) {
	return scanHRUser(r.stmtGetByUsername.QueryRowContext(ctx, username))
}

func (r *HRUserRepository) List(ctx context.Context) ([]hruser.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+hrUserColumns+` FROM hr_users ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]hruser.User, 0)
	for rows.Next() {
		u, err := scanHRUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *HRUserRepository) CountActiveAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM hr_users WHERE role = $1 AND is_active = true`, string(hruser.RoleAdmin),
	).Scan(&n)
	return n, err
}

type hrUserRow interface {
	Scan(dest ...any) error
}

func scanHRUser(row hrUserRow) (hruser.User, error) {
	var u hruser.User
	var role string
	var lastLogin sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &role, &u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return hruser.User{}, hruser.ErrNotFound
		}
		return hruser.User{}, err
	}
	u.Role = hruser.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return u, nil
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return hruser.ErrNotFound
	}
	return nil
}
