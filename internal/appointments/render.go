package appointments

import (
	"strings"
	"time"

	"github.com/Varun5711/autocare/internal/models"
)

const noDescription = "No description provided"

// Card is one rendered appointment.
type Card struct {
	Title       string
	Vehicle     string
	Date        string
	Time        string
	Status      string
	StatusClass string
	Description string
}

// View is the whole appointment list as it should be drawn. Visible is false
// when there is nothing to show.
type View struct {
	Visible bool
	Cards   []Card
}

// Render maps appointments to cards, one per appointment, in input order.
func Render(appointments []models.Appointment) View {
	cards := make([]Card, 0, len(appointments))
	for _, a := range appointments {
		description := noDescription
		if a.Description != nil && *a.Description != "" {
			description = *a.Description
		}

		cards = append(cards, Card{
			Title:       a.ServiceType,
			Vehicle:     strings.TrimSpace(strings.Join([]string{a.CarYear.String(), a.CarMake, a.CarModel}, " ")),
			Date:        FormatDate(a.Date),
			Time:        a.Time,
			Status:      a.Status,
			StatusClass: strings.ToLower(a.Status),
			Description: description,
		})
	}

	return View{
		Visible: len(cards) > 0,
		Cards:   cards,
	}
}

// FormatDate renders "2026-10-21" as "Wednesday, October 21, 2026". Anything
// it cannot parse is returned unchanged.
func FormatDate(s string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Monday, January 2, 2006")
		}
	}
	return s
}
