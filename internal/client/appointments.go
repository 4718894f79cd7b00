package client

import (
	"context"
	"net/http"

	"github.com/Varun5711/autocare/internal/models"
)

func (c *Client) CreateAppointment(ctx context.Context, token string, draft models.AppointmentDraft) (*models.Appointment, error) {
	var created models.Appointment
	if err := c.doJSON(ctx, http.MethodPost, "/appointments", token, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListAppointments(ctx context.Context, token string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := c.doJSON(ctx, http.MethodGet, "/appointments", token, nil, &appointments); err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}
