package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"hrms-portal/models"
)

// MemoryAttendanceRepository is an AttendanceRepository held in process
// memory. It honours the same version contract as the MongoDB store.
type MemoryAttendanceRepository struct {
	mu   sync.Mutex
	days map[string]models.AttendanceDay // keyed by user_id + "|" + date
}

func NewMemoryAttendanceRepository() *MemoryAttendanceRepository {
	return &MemoryAttendanceRepository{days: make(map[string]models.AttendanceDay)}
}

func dayKey(userID, date string) string {
	return userID + "|" + date
}

func (r *MemoryAttendanceRepository) FindByUserAndDate(_ context.Context, userID, date string) (*models.AttendanceDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day, ok := r.days[dayKey(userID, date)]
	if !ok {
		return nil, nil
	}
	out := day.Clone()
	return &out, nil
}

func (r *MemoryAttendanceRepository) Create(_ context.Context, day *models.AttendanceDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(day.UserID, day.Date)
	if _, exists := r.days[key]; exists {
		return ErrDuplicate
	}
	r.days[key] = day.Clone()
	return nil
}

func (r *MemoryAttendanceRepository) UpdateIfVersion(_ context.Context, day *models.AttendanceDay, expectedVersion int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(day.UserID, day.Date)
	current, ok := r.days[key]
	if !ok || current.ID != day.ID || current.Version != expectedVersion {
		return false, nil
	}

	day.Version = expectedVersion + 1
	r.days[key] = day.Clone()
	return true, nil
}

func (r *MemoryAttendanceRepository) FindByUser(_ context.Context, userID, from, to string) ([]models.AttendanceDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := []models.AttendanceDay{}
	for _, day := range r.days {
		if day.UserID != userID {
			continue
		}
		if from != "" && day.Date < from {
			continue
		}
		if to != "" && day.Date > to {
			continue
		}
		results = append(results, day.Clone())
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Date > results[j].Date
	})
	return results, nil
}

// MemoryOTPRepository is an OTPRepository held in process memory. Expired
// entries are removed by DeleteExpired, which the eviction scheduler calls.
type MemoryOTPRepository struct {
	mu         sync.Mutex
	challenges map[string]models.OTPChallenge
}

func NewMemoryOTPRepository() *MemoryOTPRepository {
	return &MemoryOTPRepository{challenges: make(map[string]models.OTPChallenge)}
}

func cloneChallenge(ch models.OTPChallenge) models.OTPChallenge {
	if ch.VerifiedAt != nil {
		at := *ch.VerifiedAt
		ch.VerifiedAt = &at
	}
	return ch
}

func (r *MemoryOTPRepository) Replace(_ context.Context, ch *models.OTPChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.challenges[ch.PhoneNumber] = cloneChallenge(*ch)
	return nil
}

func (r *MemoryOTPRepository) FindByPhone(_ context.Context, phone string) (*models.OTPChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.challenges[phone]
	if !ok {
		return nil, nil
	}
	out := cloneChallenge(ch)
	return &out, nil
}

func (r *MemoryOTPRepository) UpdateIfVersion(_ context.Context, ch *models.OTPChallenge, expectedVersion int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.challenges[ch.PhoneNumber]
	if !ok || current.ChallengeID != ch.ChallengeID || current.Version != expectedVersion {
		return false, nil
	}

	ch.Version = expectedVersion + 1
	r.challenges[ch.PhoneNumber] = cloneChallenge(*ch)
	return true, nil
}

func (r *MemoryOTPRepository) Delete(_ context.Context, phone, challengeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.challenges[phone]; ok && current.ChallengeID == challengeID {
		delete(r.challenges, phone)
	}
	return nil
}

func (r *MemoryOTPRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for phone, ch := range r.challenges {
		if ch.ExpiresAt.Before(now) {
			delete(r.challenges, phone)
			removed++
		}
	}
	return removed, nil
}

// Len reports how many challenges are currently stored.
func (r *MemoryOTPRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.challenges)
}
