package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a stored booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCompleted || s == BookingStatusCancelled
}

// IsTerminal returns true if no transition leaves s
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo checks if a status transition is valid.
// cancelled -> cancelled is accepted as a no-op.
func (s BookingStatus) CanTransitionTo(newStatus BookingStatus) bool {
	switch s {
	case BookingStatusConfirmed:
		return newStatus == BookingStatusCancelled
	case BookingStatusCancelled:
		return newStatus == BookingStatusCancelled
	default:
		return false
	}
}

// TimeSlots are the bookable start times, in display order
var TimeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM",
	"05:00 PM", "06:00 PM", "07:00 PM", "08:00 PM",
}

// SessionTypes are the optional session tags
var SessionTypes = []string{
	"Career Guidance",
	"Technical Interview Prep",
	"Code Review",
	"System Design",
	"General Mentorship",
}

// IsTimeSlot reports whether v is one of TimeSlots
func IsTimeSlot(v string) bool {
	return contains(TimeSlots, v)
}

// IsSessionType reports whether v is one of SessionTypes
func IsSessionType(v string) bool {
	return contains(SessionTypes, v)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar date without a time zone
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the UTC calendar date of t
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses YYYY-MM-DD. Full RFC 3339 timestamps are also accepted
// and reduced to their UTC date.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return DateOf(t), nil
}

// Time returns the date at 00:00 UTC
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is unset
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is strictly before other
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly after other
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// MarshalJSON writes the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads "YYYY-MM-DD" or an RFC 3339 timestamp
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Booking is a persisted session booking
type Booking struct {
	ID          string        `json:"id"`
	MentorID    string        `json:"mentorId"`
	MentorName  string        `json:"mentorName"`
	StudentName string        `json:"studentName"`
	Email       string        `json:"email"`
	Date        Date          `json:"date"`
	Time        string        `json:"time"`
	Reason      string        `json:"reason"`
	SessionType string        `json:"sessionType,omitempty"`
	Amount      int           `json:"amount"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// BookingPatch lists the fields Update may change. Nil fields are left alone.
type BookingPatch struct {
	Status *BookingStatus
}

// Apply returns b with the patch applied
func (p BookingPatch) Apply(b Booking) Booking {
	if p.Status != nil {
		b.Status = *p.Status
	}
	return b
}

// BookingForm is the payload of the booking dialog.
// Validated by the booking service rather than by gin binding.
type BookingForm struct {
	MentorID    string `json:"mentorId" validate:"required"`
	StudentName string `json:"studentName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02,futuredate"`
	Time        string `json:"time" validate:"required,timeslot"`
	Reason      string `json:"reason" validate:"required,max=2000"`
	SessionType string `json:"sessionType" validate:"omitempty,sessiontype"`
}

// Normalize trims surrounding whitespace so blank input counts as empty
func (f *BookingForm) Normalize() {
	f.MentorID = strings.TrimSpace(f.MentorID)
	f.StudentName = strings.TrimSpace(f.StudentName)
	f.Email = strings.TrimSpace(f.Email)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.Reason = strings.TrimSpace(f.Reason)
	f.SessionType = strings.TrimSpace(f.SessionType)
}

// BookingView is a booking as returned by the API
type BookingView struct {
	Booking
	AmountDisplay string `json:"amountDisplay"`
}

// CancelBookingResponse is returned by the cancel action
type CancelBookingResponse struct {
	Booking BookingView `json:"booking"`
	Message string      `json:"message"`
	Changed bool        `json:"changed"`
}
