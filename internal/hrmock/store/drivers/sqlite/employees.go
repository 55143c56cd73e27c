package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/idbadge/internal/hrmock/domain"
	"github.com/aussiebroadwan/idbadge/internal/hrmock/store"
)

type employeesRepo struct {
	db *sql.DB
}

func (r *employeesRepo) GetByUserID(ctx context.Context, userID string) (domain.Employee, error) {
	const query = `
		SELECT id, user_id, full_name, department, email, phone_number, password_hash, created_at
		FROM employees
		WHERE user_id = ?`

	var e domain.Employee
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&e.ID,
		&e.UserID,
		&e.FullName,
		&e.Department,
		&e.Email,
		&e.PhoneNumber,
		&e.PasswordHash,
		&e.CreatedAt,
	)
	if err != nil {
		return domain.Employee{}, mapNotFound(err)
	}
	return e, nil
}

func (r *employeesRepo) Create(ctx context.Context, e domain.Employee) error {
	const query = `
		INSERT INTO employees (id, user_id, full_name, department, email, phone_number, password_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.FullName, e.Department, e.Email, e.PhoneNumber, e.PasswordHash)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *employeesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
