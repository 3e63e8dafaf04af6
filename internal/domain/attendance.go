package domain

import "context"

const (
	PunchDateLayout = "2006-01-02"
	PunchTimeLayout = "03:04:05 PM"
)

// AttendanceRecord is a single punch. Records are never updated or deleted,
// and a user may punch any number of times per day.
type AttendanceRecord struct {
	ID     int64
	UserID string
	Date   string
	Time   string
}

type AttendanceRepository interface {
	Create(ctx context.Context, record *AttendanceRecord) error
	ListByUser(ctx context.Context, userID string) ([]AttendanceRecord, error)
}
