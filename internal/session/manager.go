package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Varun5711/autocare/internal/client"
	"github.com/Varun5711/autocare/internal/logger"
	"github.com/Varun5711/autocare/internal/models/user"
	"github.com/Varun5711/autocare/internal/storage"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*user.LoginResponse, error)
	Signup(ctx context.Context, email, password string) error
	Logout(ctx context.Context, token string) error
}

// Poller is the periodic appointment refresh owned by the session lifecycle.
type Poller interface {
	Start()
	Stop()
}

type Renderer interface {
	RenderAuth(view AuthView)
}

type Form int

const (
	FormNone Form = iota
	FormLogin
	FormSignup
)

// AuthView is what the screen should show for the current session.
type AuthView struct {
	Authenticated bool
	Email         string
	Form          Form

	ShowAuthButtons  bool
	ShowUserInfo     bool
	ShowAppointments bool
	ShowBooking      bool
	ShowLogout       bool
}

type Manager struct {
	session *Session
	api     AuthAPI
	store   storage.TokenStore
	poller  Poller
	log     *logger.Logger

	mu       sync.Mutex
	form     Form
	view     AuthView
	renderer Renderer
}

func NewManager(sess *Session, api AuthAPI, store storage.TokenStore, poller Poller, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Discard()
	}
	return &Manager{
		session: sess,
		api:     api,
		store:   store,
		poller:  poller,
		log:     log,
	}
}

func (m *Manager) SetRenderer(r Renderer) {
	m.mu.Lock()
	m.renderer = r
	m.mu.Unlock()
}

func (m *Manager) Session() *Session {
	return m.session
}

func (m *Manager) ShowLogin() AuthView {
	m.mu.Lock()
	m.form = FormLogin
	m.mu.Unlock()
	return m.UpdateAuthUI()
}

func (m *Manager) ShowSignup() AuthView {
	m.mu.Lock()
	m.form = FormSignup
	m.mu.Unlock()
	return m.UpdateAuthUI()
}

// HideForms closes whichever auth form is open.
func (m *Manager) HideForms() AuthView {
	m.mu.Lock()
	m.form = FormNone
	m.mu.Unlock()
	return m.UpdateAuthUI()
}

// Login authenticates and, on success, persists the token before the session
// exposes it to anyone else.
func (m *Manager) Login(ctx context.Context, email, password string) (*user.User, error) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.log.Warn("login for %s failed: %v", email, err)
		return nil, &Error{Kind: ErrLoginFailed, Message: client.UserMessage(err, ErrLoginFailed.Error()), Err: err}
	}

	if err := m.store.Save(ctx, resp.Token); err != nil {
		m.log.Error("failed to persist token: %v", err)
		return nil, &Error{Kind: ErrLoginFailed, Message: ErrLoginFailed.Error(), Err: err}
	}

	m.session.Set(resp.User, resp.Token)
	m.log.Info("logged in as %s", resp.User.Email)
	m.UpdateAuthUI()
	return resp.User, nil
}

// Signup creates an account. It never logs the user in; on success the login
// form is shown instead.
func (m *Manager) Signup(ctx context.Context, email, password, confirmPassword string) error {
	if password != confirmPassword {
		return &Error{Kind: ErrPasswordMismatch, Message: ErrPasswordMismatch.Error()}
	}

	if err := m.api.Signup(ctx, email, password); err != nil {
		m.log.Warn("signup for %s failed: %v", email, err)
		return &Error{Kind: ErrSignupFailed, Message: client.UserMessage(err, ErrSignupFailed.Error()), Err: err}
	}

	m.log.Info("account created for %s", email)
	m.ShowLogin()
	return nil
}

// Logout drops local credentials even when the backend call fails; the
// failure is still returned so it can be reported.
func (m *Manager) Logout(ctx context.Context) error {
	token := m.session.Token()
	apiErr := m.api.Logout(ctx, token)
	if apiErr != nil {
		m.log.Warn("backend logout failed: %v", apiErr)
	}

	if err := m.store.Clear(ctx); err != nil {
		m.log.Error("failed to clear stored token: %v", err)
	}

	m.session.Clear()
	m.mu.Lock()
	m.form = FormNone
	m.mu.Unlock()
	m.UpdateAuthUI()

	if apiErr != nil {
		return &Error{Kind: ErrLogoutFailed, Message: ErrLogoutFailed.Error(), Err: apiErr}
	}
	m.log.Info("logged out")
	return nil
}

// UpdateAuthUI derives the view from the session, arms or disarms the poller
// and hands the view to the renderer. Repeated calls with the same session
// give the same view and leave exactly one poller running.
func (m *Manager) UpdateAuthUI() AuthView {
	st := m.session.State()

	m.mu.Lock()
	view := AuthView{Authenticated: st.Authenticated()}
	if view.Authenticated {
		view.Email = st.Email()
		view.ShowUserInfo = true
		view.ShowAppointments = true
		view.ShowBooking = true
		view.ShowLogout = true
	} else {
		view.ShowAuthButtons = true
		view.Form = m.form
	}
	m.view = view
	r := m.renderer
	m.mu.Unlock()

	if m.poller != nil {
		if view.Authenticated {
			m.poller.Start()
		} else {
			m.poller.Stop()
		}
	}

	if r != nil {
		r.RenderAuth(view)
	}
	return view
}

func (m *Manager) View() AuthView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// RestoreToken reports whether a token survived from a previous run. It does
// not authenticate the session: the user is only known after a fresh login.
func (m *Manager) RestoreToken(ctx context.Context) (bool, error) {
	_, err := m.store.Load(ctx)
	if errors.Is(err, storage.ErrTokenNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
