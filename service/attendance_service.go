package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hrms-portal/models"
	"hrms-portal/pkg/clock"
	util "hrms-portal/pkg/utils"
	"hrms-portal/repository"
)

// maxRetries bounds the optimistic-lock read-mutate-update loop.
const maxRetries = 3

type AttendanceService struct {
	repo  repository.AttendanceRepository
	clock clock.Clock
	loc   *time.Location
}

// NewAttendanceService builds the service. loc is the reference timezone
// that decides which calendar day a timestamp belongs to.
func NewAttendanceService(repo repository.AttendanceRepository, clk clock.Clock, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{repo: repo, clock: clk, loc: loc}
}

// DayKey returns the calendar-day key of t in the service's timezone.
func (s *AttendanceService) DayKey(t time.Time) string {
	return t.In(s.loc).Format(models.DateLayout)
}

func (s *AttendanceService) CheckIn(ctx context.Context, userID string) (*models.AttendanceDay, error) {
	now := s.clock.Now().In(s.loc)

	day, err := s.mutateDay(ctx, userID, now, true, func(day models.AttendanceDay) (models.AttendanceDay, error) {
		if last := day.LastShift(); last != nil {
			if last.IsOpen() {
				return day, ErrAlreadyCheckedIn
			}
			if !now.After(last.CheckIn) {
				return day, fmt.Errorf("%w: check-in must be after %s", ErrInvalidTimestamp, last.CheckIn.Format(time.RFC3339))
			}
		}
		day.Shifts = append(day.Shifts, models.Shift{CheckIn: now})
		return day, nil
	})
	if err != nil {
		return nil, err
	}

	util.Logger.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    day.Date,
		"shift":   len(day.Shifts),
	}).Info("Checked in")
	return day, nil
}

func (s *AttendanceService) CheckOut(ctx context.Context, userID string) (*models.AttendanceDay, error) {
	now := s.clock.Now().In(s.loc)

	day, err := s.mutateDay(ctx, userID, now, false, func(day models.AttendanceDay) (models.AttendanceDay, error) {
		last := day.LastShift()
		if last == nil {
			return day, ErrNoActiveShift
		}
		if !last.IsOpen() {
			return day, ErrAlreadyCheckedOut
		}
		if now.Before(last.CheckIn) {
			return day, fmt.Errorf("%w: check-out precedes check-in at %s", ErrInvalidTimestamp, last.CheckIn.Format(time.RFC3339))
		}
		out := now
		last.CheckOut = &out
		return day, nil
	})
	if err != nil {
		return nil, err
	}

	util.Logger.WithFields(logrus.Fields{
		"user_id":       userID,
		"date":          day.Date,
		"working_hours": day.WorkingHours,
		"status":        day.Status,
	}).Info("Checked out")
	return day, nil
}

// mutateDay loads today's day for userID, applies mutate to a copy,
// recomputes derived fields and writes it back guarded by the version it
// was loaded with. Lost races are retried from a fresh read. When the day
// does not exist it is created if create is true, otherwise ErrNoActiveShift
// is returned.
func (s *AttendanceService) mutateDay(
	ctx context.Context,
	userID string,
	now time.Time,
	create bool,
	mutate func(models.AttendanceDay) (models.AttendanceDay, error),
) (*models.AttendanceDay, error) {
	date := s.DayKey(now)

	for attempt := 0; attempt < maxRetries; attempt++ {
		current, err := s.repo.FindByUserAndDate(ctx, userID, date)
		if err != nil {
			return nil, err
		}

		if current == nil {
			if !create {
				return nil, ErrNoActiveShift
			}
			fresh := models.AttendanceDay{
				ID:        uuid.New().String(),
				UserID:    userID,
				Date:      date,
				Shifts:    []models.Shift{},
				CreatedAt: now,
			}
			next, err := mutate(fresh)
			if err != nil {
				return nil, err
			}
			next = RecalculateDay(next)
			next.UpdatedAt = now

			err = s.repo.Create(ctx, &next)
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			if err != nil {
				return nil, err
			}
			return &next, nil
		}

		next, err := mutate(current.Clone())
		if err != nil {
			return nil, err
		}
		next = RecalculateDay(next)
		next.UpdatedAt = now

		ok, err := s.repo.UpdateIfVersion(ctx, &next, current.Version)
		if err != nil {
			return nil, err
		}
		if ok {
			return &next, nil
		}
	}

	util.Logger.WithFields(logrus.Fields{"user_id": userID, "date": date}).Warn("Gave up updating attendance day after concurrent writes")
	return nil, ErrConcurrentUpdate
}

func (s *AttendanceService) TodayStatus(ctx context.Context, userID string) (*models.TodayStatus, error) {
	date := s.DayKey(s.clock.Now())

	day, err := s.repo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return &models.TodayStatus{
			Date:   date,
			Shifts: []models.Shift{},
			Status: models.StatusAbsent,
		}, nil
	}

	return &models.TodayStatus{
		Date:         date,
		HasRecord:    true,
		CheckedIn:    day.HasOpenShift(),
		Shifts:       day.Shifts,
		WorkingHours: day.WorkingHours,
		Status:       day.Status,
	}, nil
}

// History returns the user's days newest first. With both month and year it
// covers that calendar month; with only a year the whole year; with only a
// month that month of the current year.
func (s *AttendanceService) History(ctx context.Context, userID string, q models.HistoryQuery) ([]models.AttendanceDay, error) {
	from, to, err := s.historyRange(q)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByUser(ctx, userID, from, to)
}

func (s *AttendanceService) historyRange(q models.HistoryQuery) (string, string, error) {
	if q.Month < 0 || q.Month > 12 || q.Year < 0 {
		return "", "", fmt.Errorf("%w: month=%d year=%d", ErrInvalidHistoryQuery, q.Month, q.Year)
	}

	switch {
	case q.Month == 0 && q.Year == 0:
		return "", "", nil
	case q.Month == 0:
		start := time.Date(q.Year, time.January, 1, 0, 0, 0, 0, s.loc)
		end := time.Date(q.Year, time.December, 31, 0, 0, 0, 0, s.loc)
		return start.Format(models.DateLayout), end.Format(models.DateLayout), nil
	default:
		year := q.Year
		if year == 0 {
			year = s.clock.Now().In(s.loc).Year()
		}
		start := time.Date(year, time.Month(q.Month), 1, 0, 0, 0, 0, s.loc)
		end := start.AddDate(0, 1, -1)
		return start.Format(models.DateLayout), end.Format(models.DateLayout), nil
	}
}
