package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("please enter a valid email address")
	ErrPasswordRequired = errors.New("password is required")

	ErrMakeTooShort       = errors.New("car make must be at least 2 characters")
	ErrModelTooShort      = errors.New("car model must be at least 2 characters")
	ErrYearInvalid        = errors.New("car year must be a number")
	ErrYearOutOfRange     = errors.New("car year is out of range")
	ErrServiceTypeInvalid = errors.New("please select a valid service type")
	ErrDateInvalid        = errors.New("date must be in YYYY-MM-DD format")
	ErrDateInPast         = errors.New("appointment date cannot be in the past")
	ErrDateTooFar         = errors.New("appointments can only be booked up to 90 days in advance")
	ErrTimeInvalid        = errors.New("please select an available time slot")
)

const (
	DateLayout      = "2006-01-02"
	MinCarYear      = 1900
	MaxDaysInFuture = 90
)

var ServiceTypes = []string{
	"oil-change",
	"tire-rotation",
	"brake-service",
	"general-inspection",
	"repair",
}

var TimeSlots = []string{
	"09:00",
	"10:00",
	"11:00",
	"13:00",
	"14:00",
	"15:00",
	"16:00",
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func ValidateMake(carMake string) error {
	if len(strings.TrimSpace(carMake)) < 2 {
		return ErrMakeTooShort
	}
	return nil
}

func ValidateModel(model string) error {
	if len(strings.TrimSpace(model)) < 2 {
		return ErrModelTooShort
	}
	return nil
}

// ValidateYear accepts 1900 through next year.
func ValidateYear(year string, now time.Time) error {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return ErrYearInvalid
	}
	if y < MinCarYear || y > now.Year()+1 {
		return ErrYearOutOfRange
	}
	return nil
}

func ValidateServiceType(serviceType string) error {
	for _, s := range ServiceTypes {
		if s == serviceType {
			return nil
		}
	}
	return ErrServiceTypeInvalid
}

// ValidateDate compares calendar days in now's location, so booking for
// today is allowed.
func ValidateDate(date string, now time.Time) error {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), now.Location())
	if err != nil {
		return ErrDateInvalid
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return ErrDateInPast
	}
	if d.After(today.AddDate(0, 0, MaxDaysInFuture)) {
		return ErrDateTooFar
	}
	return nil
}

func ValidateTime(slot string) error {
	for _, s := range TimeSlots {
		if s == slot {
			return nil
		}
	}
	return ErrTimeInvalid
}

// AppointmentFields mirrors the booking form before it is submitted.
type AppointmentFields struct {
	CarMake     string
	CarModel    string
	CarYear     string
	ServiceType string
	Date        string
	Time        string
}

// ValidateAppointment returns the first failing rule in form order.
func ValidateAppointment(f AppointmentFields, now time.Time) error {
	if err := ValidateMake(f.CarMake); err != nil {
		return err
	}
	if err := ValidateModel(f.CarModel); err != nil {
		return err
	}
	if err := ValidateYear(f.CarYear, now); err != nil {
		return err
	}
	if err := ValidateServiceType(f.ServiceType); err != nil {
		return err
	}
	if err := ValidateDate(f.Date, now); err != nil {
		return err
	}
	return ValidateTime(f.Time)
}
