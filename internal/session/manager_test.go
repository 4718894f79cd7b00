package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/Varun5711/autocare/internal/client"
	"github.com/Varun5711/autocare/internal/models/user"
	"github.com/Varun5711/autocare/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (*user.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.LoginResponse), args.Error(1)
}

func (m *MockAuthAPI) Signup(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockAuthAPI) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// fakePoller mirrors the refresher contract: Start is a no-op while running.
type fakePoller struct {
	mu       sync.Mutex
	running  bool
	launched int
	stops    int
}

func (p *fakePoller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.launched++
}

func (p *fakePoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.stops++
	}
	p.running = false
}

type recordingRenderer struct {
	views []AuthView
}

func (r *recordingRenderer) RenderAuth(v AuthView) {
	r.views = append(r.views, v)
}

// failingStore refuses every write.
type failingStore struct {
	storage.MemoryTokenStore
}

func (s *failingStore) Save(ctx context.Context, token string) error {
	return errors.New("disk full")
}

func newTestManager() (*Manager, *MockAuthAPI, *storage.MemoryTokenStore, *fakePoller) {
	api := new(MockAuthAPI)
	store := storage.NewMemoryTokenStore()
	poller := &fakePoller{}
	return NewManager(New(), api, store, poller, nil), api, store, poller
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success persists token and authenticates", func(t *testing.T) {
		m, api, store, poller := newTestManager()
		renderer := &recordingRenderer{}
		m.SetRenderer(renderer)

		api.On("Login", ctx, "a@b.com", "x").
			Return(&user.LoginResponse{Token: "T1", User: &user.User{Email: "a@b.com"}}, nil)

		u, err := m.Login(ctx, "a@b.com", "x")

		require.NoError(t, err)
		assert.Equal(t, "a@b.com", u.Email)

		token, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "T1", token)

		st := m.Session().State()
		assert.True(t, st.Authenticated())
		assert.Equal(t, "T1", st.Token)

		require.NotEmpty(t, renderer.views)
		view := renderer.views[len(renderer.views)-1]
		assert.True(t, view.Authenticated)
		assert.Equal(t, "a@b.com", view.Email)
		assert.True(t, view.ShowLogout)
		assert.True(t, view.ShowBooking)
		assert.True(t, view.ShowAppointments)
		assert.False(t, view.ShowAuthButtons)

		assert.True(t, poller.running)
		assert.Equal(t, 1, poller.launched)
	})

	t.Run("server message surfaces and session unchanged", func(t *testing.T) {
		m, api, store, poller := newTestManager()

		api.On("Login", ctx, "a@b.com", "bad").
			Return(nil, &client.APIError{Status: http.StatusUnauthorized, Message: "Incorrect username or password"})

		_, err := m.Login(ctx, "a@b.com", "bad")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLoginFailed)
		assert.Equal(t, "Incorrect username or password", err.Error())
		assert.False(t, m.Session().Authenticated())
		_, loadErr := store.Load(ctx)
		assert.ErrorIs(t, loadErr, storage.ErrTokenNotFound)
		assert.False(t, poller.running)
	})

	t.Run("transport failure uses generic message", func(t *testing.T) {
		m, api, _, _ := newTestManager()

		api.On("Login", ctx, "a@b.com", "x").Return(nil, client.ErrTransport)

		_, err := m.Login(ctx, "a@b.com", "x")

		assert.Equal(t, "login failed", err.Error())
		assert.ErrorIs(t, err, client.ErrTransport)
	})

	t.Run("token persist failure aborts login", func(t *testing.T) {
		api := new(MockAuthAPI)
		poller := &fakePoller{}
		m := NewManager(New(), api, &failingStore{}, poller, nil)

		api.On("Login", ctx, "a@b.com", "x").
			Return(&user.LoginResponse{Token: "T1", User: &user.User{Email: "a@b.com"}}, nil)

		_, err := m.Login(ctx, "a@b.com", "x")

		assert.ErrorIs(t, err, ErrLoginFailed)
		assert.False(t, m.Session().Authenticated())
		assert.False(t, poller.running)
	})
}

func TestManager_LoginLogoutLogin_NoStaleData(t *testing.T) {
	ctx := context.Background()
	m, api, store, poller := newTestManager()

	api.On("Login", ctx, "first@b.com", "x").
		Return(&user.LoginResponse{Token: "T1", User: &user.User{Email: "first@b.com"}}, nil)
	api.On("Logout", ctx, "T1").Return(nil)
	api.On("Login", ctx, "second@b.com", "y").
		Return(&user.LoginResponse{Token: "T2", User: &user.User{Email: "second@b.com"}}, nil)

	_, err := m.Login(ctx, "first@b.com", "x")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))
	_, err = m.Login(ctx, "second@b.com", "y")
	require.NoError(t, err)

	st := m.Session().State()
	assert.Equal(t, "T2", st.Token)
	assert.Equal(t, "second@b.com", st.Email())
	assert.Nil(t, st.User.Extra)

	token, _ := store.Load(ctx)
	assert.Equal(t, "T2", token)
	assert.Equal(t, "second@b.com", m.View().Email)
	assert.Equal(t, 2, poller.launched)
	assert.Equal(t, 1, poller.stops)
	api.AssertExpectations(t)
}

func TestManager_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("password mismatch never calls backend", func(t *testing.T) {
		m, api, _, _ := newTestManager()

		err := m.Signup(ctx, "a@b.com", "password1", "password2")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
		assert.Equal(t, "passwords do not match", err.Error())
		api.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success switches to login without a session", func(t *testing.T) {
		m, api, _, poller := newTestManager()
		m.ShowSignup()

		api.On("Signup", ctx, "a@b.com", "password1").Return(nil)

		require.NoError(t, m.Signup(ctx, "a@b.com", "password1", "password1"))

		assert.False(t, m.Session().Authenticated())
		assert.Equal(t, FormLogin, m.View().Form)
		assert.False(t, poller.running)
	})

	t.Run("server failure", func(t *testing.T) {
		m, api, _, _ := newTestManager()

		api.On("Signup", ctx, "a@b.com", "password1").
			Return(&client.APIError{Status: http.StatusBadRequest, Message: "User already exists"})

		err := m.Signup(ctx, "a@b.com", "password1", "password1")

		assert.ErrorIs(t, err, ErrSignupFailed)
		assert.Equal(t, "User already exists", err.Error())
		assert.False(t, m.Session().Authenticated())
	})

	t.Run("server failure without message", func(t *testing.T) {
		m, api, _, _ := newTestManager()

		api.On("Signup", ctx, "a@b.com", "password1").Return(&client.APIError{Status: http.StatusInternalServerError})

		err := m.Signup(ctx, "a@b.com", "password1", "password1")

		assert.Equal(t, "signup failed", err.Error())
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears everything", func(t *testing.T) {
		m, api, store, poller := newTestManager()
		api.On("Login", ctx, "a@b.com", "x").
			Return(&user.LoginResponse{Token: "T1", User: &user.User{Email: "a@b.com"}}, nil)
		api.On("Logout", ctx, "T1").Return(nil)

		_, err := m.Login(ctx, "a@b.com", "x")
		require.NoError(t, err)
		require.NoError(t, m.Logout(ctx))

		assert.False(t, m.Session().Authenticated())
		_, loadErr := store.Load(ctx)
		assert.ErrorIs(t, loadErr, storage.ErrTokenNotFound)
		assert.False(t, poller.running)

		view := m.View()
		assert.False(t, view.Authenticated)
		assert.True(t, view.ShowAuthButtons)
		assert.False(t, view.ShowLogout)
		assert.False(t, view.ShowAppointments)
	})

	t.Run("server failure still clears local state", func(t *testing.T) {
		m, api, store, poller := newTestManager()
		api.On("Login", ctx, "a@b.com", "x").
			Return(&user.LoginResponse{Token: "T1", User: &user.User{Email: "a@b.com"}}, nil)
		api.On("Logout", ctx, "T1").Return(&client.APIError{Status: http.StatusUnauthorized, Message: "Invalid token"})

		_, err := m.Login(ctx, "a@b.com", "x")
		require.NoError(t, err)

		err = m.Logout(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLogoutFailed)
		assert.Equal(t, "logout failed", err.Error())
		assert.False(t, m.Session().Authenticated())
		_, loadErr := store.Load(ctx)
		assert.ErrorIs(t, loadErr, storage.ErrTokenNotFound)
		assert.False(t, poller.running)
	})
}

func TestManager_UpdateAuthUI_Idempotent(t *testing.T) {
	m, _, _, poller := newTestManager()
	renderer := &recordingRenderer{}
	m.SetRenderer(renderer)

	m.Session().Set(&user.User{Email: "a@b.com"}, "T1")

	first := m.UpdateAuthUI()
	second := m.UpdateAuthUI()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, poller.launched, "exactly one poller while authenticated")
	require.Len(t, renderer.views, 2)
	assert.Equal(t, renderer.views[0], renderer.views[1])

	m.Session().Clear()
	third := m.UpdateAuthUI()
	fourth := m.UpdateAuthUI()
	assert.Equal(t, third, fourth)
	assert.False(t, poller.running)
	assert.Equal(t, 1, poller.stops)
}

func TestManager_ShowLoginShowSignup(t *testing.T) {
	m, api, _, _ := newTestManager()

	assert.Equal(t, FormLogin, m.ShowLogin().Form)
	assert.Equal(t, FormLogin, m.ShowLogin().Form)
	assert.Equal(t, FormSignup, m.ShowSignup().Form)
	assert.Equal(t, FormLogin, m.ShowLogin().Form)
	assert.Equal(t, FormNone, m.HideForms().Form)
	assert.True(t, m.View().ShowAuthButtons)

	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_RestoreToken(t *testing.T) {
	ctx := context.Background()
	m, _, store, poller := newTestManager()

	found, err := m.RestoreToken(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, "T1"))
	found, err = m.RestoreToken(ctx)
	require.NoError(t, err)
	assert.True(t, found)

	assert.False(t, m.Session().Authenticated(), "a stored token alone is not a session")
	assert.False(t, m.UpdateAuthUI().Authenticated)
	assert.False(t, poller.running)
}

func TestSession_Subscribe(t *testing.T) {
	sess := New()

	var seen []State
	unsubscribe := sess.Subscribe(func(st State) {
		seen = append(seen, st)
	})

	sess.Set(&user.User{Email: "a@b.com"}, "T1")
	sess.Clear()
	unsubscribe()
	sess.Set(&user.User{Email: "c@d.com"}, "T2")

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Authenticated())
	assert.Equal(t, "a@b.com", seen[0].Email())
	assert.False(t, seen[1].Authenticated())
	assert.Equal(t, "", seen[1].Email())
	assert.Less(t, seen[0].Gen, seen[1].Gen)
	assert.Equal(t, sess.Generation(), sess.State().Gen)
}

func TestSession_GenerationChangesOnSameTokenRelogin(t *testing.T) {
	sess := New()
	u := &user.User{Email: "a@b.com"}

	sess.Set(u, "T1")
	first := sess.Generation()
	sess.Clear()
	sess.Set(u, "T1")

	assert.NotEqual(t, first, sess.Generation())
	assert.Equal(t, "T1", sess.Token())
}
