package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Varun5711/autocare/internal/booking"
	"github.com/Varun5711/autocare/internal/validation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldMake = iota
	fieldModel
	fieldYear
	fieldService
	fieldDate
	fieldTime
	fieldDescription
	fieldImage
	fieldNotify
	fieldCount
)

type bookDoneMsg struct {
	serviceType string
	err         error
}

type BookModel struct {
	makeInput        string
	modelInput       string
	yearInput        string
	serviceIdx       int
	dateInput        string
	timeIdx          int
	descriptionInput string
	imagePathInput   string
	notify           bool

	focusedInput int
	loading      bool
	err          error

	ctx       context.Context
	submitter *booking.Submitter
	now       func() time.Time
}

func NewBookModel() *BookModel {
	return &BookModel{
		ctx: context.Background(),
		now: time.Now,
	}
}

func (m *BookModel) SetSubmitter(ctx context.Context, s *booking.Submitter) {
	m.ctx = ctx
	m.submitter = s
}

func (m *BookModel) Init() tea.Cmd {
	return nil
}

func (m *BookModel) fields() validation.AppointmentFields {
	return validation.AppointmentFields{
		CarMake:     strings.TrimSpace(m.makeInput),
		CarModel:    strings.TrimSpace(m.modelInput),
		CarYear:     strings.TrimSpace(m.yearInput),
		ServiceType: validation.ServiceTypes[m.serviceIdx],
		Date:        strings.TrimSpace(m.dateInput),
		Time:        validation.TimeSlots[m.timeIdx],
	}
}

// Form builds the submission without the image; the image is read from disk
// inside the command.
func (m *BookModel) Form() booking.Form {
	f := m.fields()
	return booking.Form{
		CarMake:                f.CarMake,
		CarModel:               f.CarModel,
		CarYear:                f.CarYear,
		ServiceType:            f.ServiceType,
		Date:                   f.Date,
		Time:                   f.Time,
		Description:            strings.TrimSpace(m.descriptionInput),
		NotificationPreference: m.notify,
	}
}

func bookCmd(ctx context.Context, s *booking.Submitter, form booking.Form, imagePath string) tea.Cmd {
	return func() tea.Msg {
		if imagePath != "" {
			img, err := booking.OpenImage(imagePath)
			if err != nil {
				return bookDoneMsg{serviceType: form.ServiceType, err: err}
			}
			form.Image = img
		}

		_, err := s.Submit(ctx, form)
		return bookDoneMsg{serviceType: form.ServiceType, err: err}
	}
}

// finish resets the form after a successful booking. A failure keeps every
// field as typed.
func (m *BookModel) finish(err error) {
	m.loading = false
	if err != nil {
		return
	}
	m.reset()
}

func (m *BookModel) reset() {
	*m = BookModel{
		ctx:       m.ctx,
		submitter: m.submitter,
		now:       m.now,
	}
}

func (m *BookModel) textField() *string {
	switch m.focusedInput {
	case fieldMake:
		return &m.makeInput
	case fieldModel:
		return &m.modelInput
	case fieldYear:
		return &m.yearInput
	case fieldDate:
		return &m.dateInput
	case fieldDescription:
		return &m.descriptionInput
	case fieldImage:
		return &m.imagePathInput
	}
	return nil
}

func (m *BookModel) cycle(delta int) {
	switch m.focusedInput {
	case fieldService:
		n := len(validation.ServiceTypes)
		m.serviceIdx = (m.serviceIdx + delta + n) % n
	case fieldTime:
		n := len(validation.TimeSlots)
		m.timeIdx = (m.timeIdx + delta + n) % n
	case fieldNotify:
		m.notify = !m.notify
	}
}

func (m *BookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			m.focusedInput = (m.focusedInput + 1) % fieldCount
		case "shift+tab", "up":
			m.focusedInput = (m.focusedInput + fieldCount - 1) % fieldCount
		case "left":
			m.cycle(-1)
		case "right":
			m.cycle(1)
		case "enter":
			if err := validation.ValidateAppointment(m.fields(), m.now()); err != nil {
				m.err = err
				return m, nil
			}

			m.loading = true
			m.err = nil
			return m, bookCmd(m.ctx, m.submitter, m.Form(), strings.TrimSpace(m.imagePathInput))
		case "backspace":
			if field := m.textField(); field != nil {
				*field = dropLastRune(*field)
			}
		case "ctrl+l":
			m.reset()
		case " ":
			if field := m.textField(); field != nil {
				*field += " "
			} else {
				m.cycle(1)
			}
		default:
			if msg.Type == tea.KeyRunes {
				if field := m.textField(); field != nil {
					*field += string(msg.Runes)
				}
			}
		}
	}
	return m, nil
}

func (m *BookModel) View() string {
	var b strings.Builder

	icon := lipgloss.NewStyle().Foreground(Accent).Render("🔧")
	header := icon + " " + TitleStyle.Render("BOOK A SERVICE") + " " + icon
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n\n")

	rows := []string{
		inputField("Make:", m.makeInput, m.focusedInput == fieldMake),
		inputField("Model:", m.modelInput, m.focusedInput == fieldModel),
		inputField("Year:", m.yearInput, m.focusedInput == fieldYear),
		inputField("Service:", "◀ "+validation.ServiceTypes[m.serviceIdx]+" ▶", m.focusedInput == fieldService),
		inputField("Date:", m.dateInput, m.focusedInput == fieldDate),
		inputField("Time:", "◀ "+validation.TimeSlots[m.timeIdx]+" ▶", m.focusedInput == fieldTime),
		inputField("Description:", m.descriptionInput, m.focusedInput == fieldDescription),
		inputField("Image path:", m.imagePathInput, m.focusedInput == fieldImage),
		inputField("Notify me:", checkbox(m.notify), m.focusedInput == fieldNotify),
	}
	for _, row := range rows {
		b.WriteString(centered(row))
		b.WriteString("\n")
	}

	hint := InfoStyle.Render(fmt.Sprintf("date as YYYY-MM-DD, up to %d days ahead  •  image is optional", validation.MaxDaysInFuture))
	b.WriteString(centered(hint))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(centered(InfoStyle.Render("Booking appointment...")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(ErrorStyle.Render("Error: " + m.err.Error())))
		b.WriteString("\n")
	}

	help := InfoStyle.Render("tab/↑↓ move  •  ←/→ choose  •  enter book  •  ctrl+l clear  •  esc back")
	b.WriteString("\n")
	b.WriteString(centered(help))

	return BoxStyle.Width(76).Render(b.String())
}

func checkbox(on bool) string {
	if on {
		return "[x] email me about status changes"
	}
	return "[ ] email me about status changes"
}
