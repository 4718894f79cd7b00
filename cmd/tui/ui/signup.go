package ui

import (
	"context"
	"strings"

	"github.com/Varun5711/autocare/internal/session"
	"github.com/Varun5711/autocare/internal/validation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type signupDoneMsg struct {
	email string
	err   error
}

type SignupModel struct {
	emailInput    string
	passwordInput string
	confirmInput  string
	focusedInput  int
	loading       bool
	err           error
	ctx           context.Context
	manager       *session.Manager
}

func NewSignupModel() *SignupModel {
	return &SignupModel{
		focusedInput: 0,
		ctx:          context.Background(),
	}
}

func (m *SignupModel) SetManager(ctx context.Context, mgr *session.Manager) {
	m.ctx = ctx
	m.manager = mgr
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func signupCmd(ctx context.Context, mgr *session.Manager, email, password, confirm string) tea.Cmd {
	return func() tea.Msg {
		err := mgr.Signup(ctx, email, password, confirm)
		return signupDoneMsg{email: email, err: err}
	}
}

func (m *SignupModel) finish(err error) {
	m.loading = false
	if err != nil {
		return
	}
	m.reset()
}

func (m *SignupModel) reset() {
	m.emailInput = ""
	m.passwordInput = ""
	m.confirmInput = ""
	m.focusedInput = 0
	m.err = nil
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focusedInput = (m.focusedInput + 1) % 3
		case "shift+tab":
			m.focusedInput = (m.focusedInput + 2) % 3
		case "enter":
			email := strings.TrimSpace(m.emailInput)
			if err := validation.ValidateEmail(email); err != nil {
				m.err = err
				return m, nil
			}
			if err := validation.ValidatePassword(m.passwordInput); err != nil {
				m.err = err
				return m, nil
			}

			// mismatch is checked by the manager
			m.loading = true
			m.err = nil
			return m, signupCmd(m.ctx, m.manager, email, m.passwordInput, m.confirmInput)
		case "backspace":
			field := m.field()
			*field = dropLastRune(*field)
		case "ctrl+l":
			m.reset()
		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				field := m.field()
				*field += string(msg.Runes)
			}
		}
	}
	return m, nil
}

func (m *SignupModel) field() *string {
	switch m.focusedInput {
	case 0:
		return &m.emailInput
	case 1:
		return &m.passwordInput
	default:
		return &m.confirmInput
	}
}

func (m *SignupModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Success).
		Bold(true).
		Render("✨ SIGN UP")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Create an account to book your first service.")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginBottom(3).
		Render(subtitle))
	b.WriteString("\n\n")

	b.WriteString(centered(inputField("Email:", m.emailInput, m.focusedInput == 0)))
	b.WriteString("\n\n")
	b.WriteString(centered(inputField("Password:", mask(m.passwordInput), m.focusedInput == 1)))
	b.WriteString("\n\n")
	b.WriteString(centered(inputField("Confirm:", mask(m.confirmInput), m.focusedInput == 2)))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(centered(InfoStyle.Render("🔄 Creating account...")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(ErrorStyle.Render("❌ " + m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(InfoStyle.Render("tab switch  •  enter signup  •  ctrl+l clear  •  ctrl+s login  •  esc back")))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Success).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
