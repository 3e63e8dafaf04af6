package service

import (
	"context"
	"fmt"
	"time"

	"github.com/msomdec/hrms/internal/domain"
)

// AttendanceService records punches stamped with the server clock.
type AttendanceService struct {
	records domain.AttendanceRepository
	now     func() time.Time
}

// NewAttendanceService creates a new AttendanceService. A nil clock means
// time.Now.
func NewAttendanceService(records domain.AttendanceRepository, now func() time.Time) *AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceService{records: records, now: now}
}

// Punch inserts one attendance record for userID. Repeated punches are all
// kept, even within the same second.
func (s *AttendanceService) Punch(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	now := s.now()
	record := &domain.AttendanceRecord{
		UserID: userID,
		Date:   now.Format(domain.PunchDateLayout),
		Time:   now.Format(domain.PunchTimeLayout),
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("record punch: %w", err)
	}
	return record, nil
}

// List returns userID's punches in the order they were recorded.
func (s *AttendanceService) List(ctx context.Context, userID string) ([]domain.AttendanceRecord, error) {
	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}
