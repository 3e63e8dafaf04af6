package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/hrms/internal/domain"
)

// AttendanceRepository implements domain.AttendanceRepository using SQLite.
type AttendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new SQLite-backed AttendanceRepository.
func NewAttendanceRepository(db *DB) *AttendanceRepository {
	return &AttendanceRepository{db: db.SqlDB}
}

func (r *AttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO attendance (userid, date, time) VALUES (?, ?, ?)`,
		record.UserID, record.Date, record.Time,
	)
	if err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	record.ID = id
	return nil
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string) ([]domain.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, userid, date, time FROM attendance WHERE userid = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Time); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
