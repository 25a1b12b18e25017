package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

type (
	// TxType discriminates the cash-flow direction of a transaction.
	// The sign of a movement is carried here, never by the amount.
	TxType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single money movement. Immutable after creation:
	// records are created and deleted, never updated in place.
	Transaction struct {
		ID          int64     `json:"id"`
		Description string    `json:"description"`
		Amount      Money     `json:"amount"`
		Type        TxType    `json:"type"`
		Category    string    `json:"category"`
		Date        Date      `json:"date"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// UserProfile is the single-tenant user. The password column exists in
	// storage but is deliberately absent here so it can never be serialized.
	UserProfile struct {
		ID            int64     `json:"id"`
		Username      string    `json:"username"`
		FullName      string    `json:"fullName"`
		Email         string    `json:"email"`
		Phone         string    `json:"phone"`
		Avatar        string    `json:"avatar"`
		Occupation    string    `json:"occupation"`
		MonthlyIncome *Money    `json:"monthlyIncome"`
		CreatedAt     time.Time `json:"createdAt"`
		UpdatedAt     time.Time `json:"updatedAt"`
	}

	// ProfileUpdate is a partial profile replacement. A nil field means "not
	// provided"; a non-nil pointer to an empty string is an explicit update.
	ProfileUpdate struct {
		FullName      *string `json:"fullName"`
		Email         *string `json:"email"`
		Phone         *string `json:"phone"`
		Avatar        *string `json:"avatar"`
		Occupation    *string `json:"occupation"`
		MonthlyIncome *Money  `json:"monthlyIncome"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidWindow    = errors.New("invalid chart window")
)

func (t TxType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

// NewDate creates a Date at whole-day resolution (UTC midnight).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar day in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Before reports whether d is on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// In reports whether d falls inside [start, end], inclusive on both ends.
func (d Date) In(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// UnmarshalJSON accepts a plain date ("2025-01-05") or an RFC3339 timestamp.
// Either way the value is truncated to its UTC calendar day: comparisons
// against range boundaries happen at whole-day resolution.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return ErrInvalidDate
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		*d = DateOf(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ErrInvalidDate
	}
	*d = DateOf(t)
	return nil
}

// MarshalJSON emits the plain calendar day, never a timestamp.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD query-string date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}

func (u ProfileUpdate) Validate() error {
	if u.Email != nil && *u.Email != "" && !strings.Contains(*u.Email, "@") {
		return errors.New("invalid email format")
	}
	if u.MonthlyIncome != nil {
		if err := u.MonthlyIncome.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the update provides no fields at all.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.Phone == nil &&
		u.Avatar == nil && u.Occupation == nil && u.MonthlyIncome == nil
}
