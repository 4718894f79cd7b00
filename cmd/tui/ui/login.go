package ui

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Varun5711/autocare/internal/session"
	"github.com/Varun5711/autocare/internal/validation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginDoneMsg struct {
	email string
	err   error
}

type LoginModel struct {
	emailInput    string
	passwordInput string
	focusedInput  int
	loading       bool
	err           error
	ctx           context.Context
	manager       *session.Manager
}

func NewLoginModel() *LoginModel {
	return &LoginModel{
		focusedInput: 0,
		ctx:          context.Background(),
	}
}

func (m *LoginModel) SetManager(ctx context.Context, mgr *session.Manager) {
	m.ctx = ctx
	m.manager = mgr
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

func loginCmd(ctx context.Context, mgr *session.Manager, email, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := mgr.Login(ctx, email, password)
		return loginDoneMsg{email: email, err: err}
	}
}

// finish is called by the root model once the login request returns. Input
// survives a failure.
func (m *LoginModel) finish(err error) {
	m.loading = false
	if err != nil {
		return
	}
	m.reset()
}

func (m *LoginModel) reset() {
	m.emailInput = ""
	m.passwordInput = ""
	m.focusedInput = 0
	m.err = nil
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab":
			m.focusedInput = (m.focusedInput + 1) % 2
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

			m.loading = true
			m.err = nil
			return m, loginCmd(m.ctx, m.manager, email, m.passwordInput)
		case "backspace":
			if m.focusedInput == 0 {
				m.emailInput = dropLastRune(m.emailInput)
			} else {
				m.passwordInput = dropLastRune(m.passwordInput)
			}
		case "ctrl+l":
			m.reset()
		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				if m.focusedInput == 0 {
					m.emailInput += string(msg.Runes)
				} else {
					m.passwordInput += string(msg.Runes)
				}
			}
		}
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("🔐 LOGIN")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Sign in to book and track your service appointments.")

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

	if m.loading {
		b.WriteString(centered(InfoStyle.Render("🔄 Logging in...")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(ErrorStyle.Render("❌ " + m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(InfoStyle.Render("tab switch  •  enter login  •  ctrl+l clear  •  ctrl+s signup  •  esc back")))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}

func inputField(label, value string, focused bool) string {
	style := InputStyle
	if focused {
		style = FocusedInputStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Left,
		LabelStyle.Width(15).Render(label),
		style.Width(50).Render(value),
	)
}

func mask(s string) string {
	return strings.Repeat("•", utf8.RuneCountInString(s))
}

// dropLastRune is backspace for a text field.
func dropLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func centered(s string) string {
	return lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(s)
}
