package models

import (
	"encoding/json"
	"strconv"
)

// AppointmentDraft is the payload sent to create an appointment.
type AppointmentDraft struct {
	CarMake                string `json:"carMake"`
	CarModel               string `json:"carModel"`
	CarYear                string `json:"carYear"`
	ServiceType            string `json:"serviceType"`
	Date                   string `json:"date"`
	Time                   string `json:"time"`
	Description            string `json:"description"`
	NotificationPreference bool   `json:"notificationPreference"`
	ImageURL               string `json:"imageUrl"`
}

// Appointment is read-only on the client. Status is opaque and only used to
// pick a display style.
type Appointment struct {
	AppointmentID string     `json:"appointment_id,omitempty"`
	UserEmail     string     `json:"userEmail,omitempty"`
	ServiceType   string     `json:"serviceType"`
	CarYear       FlexString `json:"carYear"`
	CarMake       string     `json:"carMake"`
	CarModel      string     `json:"carModel"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	Status        string     `json:"status"`
	Description   *string    `json:"description,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	CreatedAt     string     `json:"createdAt,omitempty"`
}

type UploadURLRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// UploadTarget pairs the one-time presigned PUT URL with the durable URL the
// object will be served from.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FlexString accepts either a JSON string or a JSON number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
