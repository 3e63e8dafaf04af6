package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/hrms/internal/domain"
)

type AttendanceRepository struct {
	db *sql.DB
}

func (r *AttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO attendance (userid, date, time) VALUES ($1, $2, $3) RETURNING id`,
		record.UserID, record.Date, record.Time,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string) ([]domain.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, userid, date, time FROM attendance WHERE userid = $1 ORDER BY id`, userID)
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
