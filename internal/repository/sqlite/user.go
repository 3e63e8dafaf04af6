package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/hrms/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

const userColumns = `id, userid, password, firstname, middlename, lastname, fathername,
	dob, address, aadhar_no, pan_no, bank_account, ifsc, micr_core, joining_date, status`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Status == "" {
		user.Status = domain.StatusPending
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (
			userid, password, firstname, middlename, lastname, fathername,
			dob, address, aadhar_no, pan_no, bank_account, ifsc, micr_core,
			joining_date, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.UserID, user.Password, user.FirstName, user.MiddleName, user.LastName, user.FatherName,
		user.DOB, user.Address, user.AadharNo, user.PanNo, user.BankAccount, user.IFSC, user.MICRCore,
		user.JoiningDate, string(user.Status),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateUserID
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	user.ID = id
	return nil
}

func (r *UserRepository) GetByCredentials(ctx context.Context, userID, password string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE userid = ? AND password = ?`, userID, password)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("query user by credentials: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE userid = ?`, userID)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("query user by userid: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET
			password = ?, firstname = ?, middlename = ?, lastname = ?, fathername = ?,
			dob = ?, address = ?, aadhar_no = ?, pan_no = ?, bank_account = ?,
			ifsc = ?, micr_core = ?, joining_date = ?
		 WHERE userid = ?`,
		user.Password, user.FirstName, user.MiddleName, user.LastName, user.FatherName,
		user.DOB, user.Address, user.AadharNo, user.PanNo, user.BankAccount,
		user.IFSC, user.MICRCore, user.JoiningDate,
		user.UserID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) SetStatus(ctx context.Context, userID string, status domain.Status) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = ? WHERE userid = ?`, string(status), userID,
	); err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	return nil
}

func (r *UserRepository) ListSummaries(ctx context.Context) ([]domain.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT userid, firstname, middlename, lastname, joining_date, status
		 FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var summaries []domain.UserSummary
	for rows.Next() {
		var s domain.UserSummary
		var status string
		if err := rows.Scan(&s.UserID, &s.FirstName, &s.MiddleName, &s.LastName, &s.JoiningDate, &status); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		// Unknown statuses are listed as stored so HR can still overwrite them.
		s.Status = domain.Status(status)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var status string
	err := row.Scan(
		&u.ID, &u.UserID, &u.Password, &u.FirstName, &u.MiddleName, &u.LastName, &u.FatherName,
		&u.DOB, &u.Address, &u.AadharNo, &u.PanNo, &u.BankAccount, &u.IFSC, &u.MICRCore,
		&u.JoiningDate, &status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if u.Status, err = domain.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("user %q: %w", u.UserID, err)
	}
	return u, nil
}
