package ui

import (
	"context"
	"fmt"

	"github.com/Varun5711/autocare/internal/appointments"
	"github.com/Varun5711/autocare/internal/booking"
	"github.com/Varun5711/autocare/internal/notify"
	"github.com/Varun5711/autocare/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type View int

const (
	HomeView View = iota
	BookView
	ListView
)

const (
	noticeLoggedIn    = "Logged in successfully!"
	noticeSignedUp    = "Account created successfully!"
	noticeBooked      = "Appointment booked successfully!"
	noticeFoundToken  = "A saved session was found. Please log in to continue."
	menuLogin         = "Login"
	menuSignup        = "Sign Up"
	menuBook          = "Book Appointment"
	menuLogout        = "Logout"
	menuAppointmentsF = "My Appointments (%d)"
)

// Deps are the collaborators the screens drive. Everything stateful lives
// there; the model only mirrors what the renderers hand it.
type Deps struct {
	Context   context.Context
	Manager   *session.Manager
	Submitter *booking.Submitter
	Refresher *appointments.Refresher
	Notices   *notify.Board
}

type tokenRestoredMsg struct {
	found bool
	err   error
}

type logoutDoneMsg struct {
	err error
}

type Model struct {
	deps Deps

	currentView View
	auth        session.AuthView
	authSeq     uint64
	apptSeq     uint64
	tokenFound  bool

	login     *LoginModel
	signup    *SignupModel
	guestMenu *MenuModel
	userMenu  *MenuModel
	book      *BookModel
	list      *ListModel

	width  int
	height int
}

func NewModel(deps Deps) Model {
	if deps.Context == nil {
		deps.Context = context.Background()
	}

	loginModel := NewLoginModel()
	loginModel.SetManager(deps.Context, deps.Manager)

	signupModel := NewSignupModel()
	signupModel.SetManager(deps.Context, deps.Manager)

	bookModel := NewBookModel()
	bookModel.SetSubmitter(deps.Context, deps.Submitter)

	listModel := NewListModel()
	listModel.SetRefresher(deps.Context, deps.Refresher)

	return Model{
		deps:        deps,
		currentView: HomeView,
		auth:        deps.Manager.View(),
		login:       loginModel,
		signup:      signupModel,
		guestMenu:   NewMenuModel(menuLogin, menuSignup),
		userMenu:    NewMenuModel(menuBook, fmt.Sprintf(menuAppointmentsF, 0), menuLogout),
		book:        bookModel,
		list:        listModel,
	}
}

func (m Model) Init() tea.Cmd {
	mgr := m.deps.Manager
	ctx := m.deps.Context
	return tea.Batch(
		noticeTick(),
		func() tea.Msg {
			mgr.UpdateAuthUI()
			return nil
		},
		func() tea.Msg {
			found, err := mgr.RestoreToken(ctx)
			return tokenRestoredMsg{found: found, err: err}
		},
	)
}

func (m Model) managerCmd(fn func(*session.Manager)) tea.Cmd {
	mgr := m.deps.Manager
	return func() tea.Msg {
		fn(mgr)
		return nil
	}
}

func logoutCmd(ctx context.Context, mgr *session.Manager) tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: mgr.Logout(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case noticeTickMsg:
		return m, noticeTick()

	case authViewMsg:
		if msg.seq <= m.authSeq {
			return m, nil
		}
		m.authSeq = msg.seq
		if m.auth.Authenticated && !msg.view.Authenticated {
			m.book.reset()
		}
		if m.auth.Authenticated != msg.view.Authenticated {
			m.currentView = HomeView
		}
		m.auth = msg.view
		return m, nil

	case appointmentsMsg:
		if msg.seq <= m.apptSeq {
			return m, nil
		}
		m.apptSeq = msg.seq
		m.list.SetView(msg.view)
		m.userMenu.SetItem(1, fmt.Sprintf(menuAppointmentsF, m.list.Count()))
		return m, nil

	case tokenRestoredMsg:
		m.tokenFound = msg.found
		if msg.err != nil {
			m.deps.Notices.Error("failed to read saved session: " + msg.err.Error())
		}
		return m, nil

	case loginDoneMsg:
		m.login.finish(msg.err)
		if msg.err != nil {
			m.deps.Notices.Error(msg.err.Error())
			return m, nil
		}
		m.tokenFound = false
		m.deps.Notices.Success(noticeLoggedIn)
		return m, nil

	case signupDoneMsg:
		m.signup.finish(msg.err)
		if msg.err != nil {
			m.deps.Notices.Error(msg.err.Error())
			return m, nil
		}
		m.deps.Notices.Success(noticeSignedUp)
		return m, nil

	case logoutDoneMsg:
		if msg.err != nil {
			m.deps.Notices.Error(msg.err.Error())
			return m, nil
		}
		return m, nil

	case bookDoneMsg:
		m.book.finish(msg.err)
		if msg.err != nil {
			m.deps.Notices.Error(msg.err.Error())
			return m, nil
		}
		m.deps.Notices.Success(noticeBooked)
		m.currentView = ListView
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.onMenu() {
				return m, tea.Quit
			}

		case "esc":
			if !m.auth.Authenticated && m.auth.Form != session.FormNone {
				return m, m.managerCmd(func(mgr *session.Manager) { mgr.HideForms() })
			}
			if m.auth.Authenticated && m.currentView != HomeView {
				m.currentView = HomeView
				return m, nil
			}

		case "ctrl+s":
			// Toggle between login and signup
			switch m.auth.Form {
			case session.FormLogin:
				return m, m.managerCmd(func(mgr *session.Manager) { mgr.ShowSignup() })
			case session.FormSignup:
				return m, m.managerCmd(func(mgr *session.Manager) { mgr.ShowLogin() })
			}
		}
	}

	if !m.auth.Authenticated {
		return m.updateGuest(msg)
	}
	return m.updateUser(msg)
}

func (m Model) onMenu() bool {
	if m.auth.Authenticated {
		return m.currentView == HomeView
	}
	return m.auth.Form == session.FormNone
}

func (m Model) updateGuest(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.auth.Form {
	case session.FormLogin:
		updatedLogin, cmd := m.login.Update(msg)
		m.login = updatedLogin.(*LoginModel)
		return m, cmd

	case session.FormSignup:
		updatedSignup, cmd := m.signup.Update(msg)
		m.signup = updatedSignup.(*SignupModel)
		return m, cmd
	}

	updatedMenu, cmd := m.guestMenu.Update(msg)
	m.guestMenu = updatedMenu.(*MenuModel)
	if m.guestMenu.selected != -1 {
		selected := m.guestMenu.selected
		m.guestMenu.selected = -1
		switch selected {
		case 0:
			return m, m.managerCmd(func(mgr *session.Manager) { mgr.ShowLogin() })
		case 1:
			return m, m.managerCmd(func(mgr *session.Manager) { mgr.ShowSignup() })
		}
	}
	return m, cmd
}

func (m Model) updateUser(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case HomeView:
		updatedMenu, cmd := m.userMenu.Update(msg)
		m.userMenu = updatedMenu.(*MenuModel)
		if m.userMenu.selected != -1 {
			selected := m.userMenu.selected
			m.userMenu.selected = -1
			switch selected {
			case 0:
				m.currentView = BookView
			case 1:
				m.currentView = ListView
			case 2:
				return m, logoutCmd(m.deps.Context, m.deps.Manager)
			}
		}
		return m, cmd

	case BookView:
		updatedBook, cmd := m.book.Update(msg)
		m.book = updatedBook.(*BookModel)
		return m, cmd

	case ListView:
		updatedList, cmd := m.list.Update(msg)
		m.list = updatedList.(*ListModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.auth.ShowUserInfo {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("👤 " + m.auth.Email)

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo)
	}

	var mainContent string
	if !m.auth.Authenticated {
		switch m.auth.Form {
		case session.FormLogin:
			mainContent = m.login.View()
		case session.FormSignup:
			mainContent = m.signup.View()
		default:
			mainContent = m.guestMenu.View()
			if m.tokenFound {
				mainContent = lipgloss.JoinVertical(lipgloss.Left, mainContent, centered(InfoStyle.Render(noticeFoundToken)))
			}
		}
	} else {
		switch m.currentView {
		case BookView:
			mainContent = m.book.View()
		case ListView:
			mainContent = m.list.View()
		default:
			mainContent = m.userMenu.View()
		}
	}

	parts := []string{}
	if notices := renderNotices(m.deps.Notices.Active()); notices != "" {
		parts = append(parts, notices)
	}
	if statusBar != "" {
		parts = append(parts, statusBar, "")
	}
	parts = append(parts, mainContent)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
