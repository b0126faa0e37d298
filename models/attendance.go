package models

import (
	"time"
)

type AttendanceStatus string

const (
	StatusAbsent  AttendanceStatus = "Absent"
	StatusHalfDay AttendanceStatus = "Half-Day"
	StatusPresent AttendanceStatus = "Present"
)

// DateLayout is the calendar-day key format used for AttendanceDay.Date.
const DateLayout = "2006-01-02"

// Shift is one check-in/check-out pair. CheckOut is nil while the shift is open.
type Shift struct {
	CheckIn  time.Time  `json:"check_in" bson:"check_in"`
	CheckOut *time.Time `json:"check_out" bson:"check_out"`
	Duration float64    `json:"duration" bson:"duration"`
}

func (s Shift) IsOpen() bool {
	return s.CheckOut == nil
}

// AttendanceDay aggregates every shift of one user on one calendar day.
// WorkingHours and Status are derived from Shifts and must not be set directly.
type AttendanceDay struct {
	ID           string           `json:"id" bson:"_id"`
	UserID       string           `json:"user_id" bson:"user_id"`
	Date         string           `json:"date" bson:"date"`
	Shifts       []Shift          `json:"shifts" bson:"shifts"`
	WorkingHours float64          `json:"working_hours" bson:"working_hours"`
	Status       AttendanceStatus `json:"status" bson:"status"`
	Version      int64            `json:"-" bson:"version"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" bson:"updated_at"`
}

// LastShift returns the most recent shift, or nil when the day has none.
func (d *AttendanceDay) LastShift() *Shift {
	if len(d.Shifts) == 0 {
		return nil
	}
	return &d.Shifts[len(d.Shifts)-1]
}

// HasOpenShift reports whether the user is currently checked in.
func (d *AttendanceDay) HasOpenShift() bool {
	last := d.LastShift()
	return last != nil && last.IsOpen()
}

// Clone returns a copy whose shift slice does not alias the receiver's.
func (d AttendanceDay) Clone() AttendanceDay {
	shifts := make([]Shift, len(d.Shifts))
	for i, s := range d.Shifts {
		if s.CheckOut != nil {
			out := *s.CheckOut
			s.CheckOut = &out
		}
		shifts[i] = s
	}
	d.Shifts = shifts
	return d
}

// TodayStatus is the read model returned for the current day. HasRecord is
// false when the user has not checked in yet today.
type TodayStatus struct {
	Date         string           `json:"date"`
	HasRecord    bool             `json:"has_record"`
	CheckedIn    bool             `json:"checked_in"`
	Shifts       []Shift          `json:"shifts"`
	WorkingHours float64          `json:"working_hours"`
	Status       AttendanceStatus `json:"status"`
}

type HistoryQuery struct {
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
	Year  int `query:"year" validate:"omitempty,min=1970,max=9999"`
}
