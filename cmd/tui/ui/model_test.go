package ui

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Varun5711/autocare/internal/appointments"
	"github.com/Varun5711/autocare/internal/notify"
	"github.com/Varun5711/autocare/internal/session"
	"github.com/Varun5711/autocare/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() (Model, *notify.Board) {
	board := notify.NewBoard(time.Minute, nil)
	mgr := session.NewManager(session.New(), nil, storage.NewMemoryTokenStore(), nil, nil)
	return NewModel(Deps{Manager: mgr, Notices: board}), board
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_DropsStaleAuthViews(t *testing.T) {
	m, _ := newTestModel()

	m, _ = update(t, m, authViewMsg{seq: 2, view: session.AuthView{Authenticated: true, Email: "a@b.com", ShowUserInfo: true}})
	assert.True(t, m.auth.Authenticated)

	m, _ = update(t, m, authViewMsg{seq: 1, view: session.AuthView{ShowAuthButtons: true}})
	assert.True(t, m.auth.Authenticated, "older view must not overwrite a newer one")

	m, _ = update(t, m, authViewMsg{seq: 3, view: session.AuthView{ShowAuthButtons: true}})
	assert.False(t, m.auth.Authenticated)
	assert.Equal(t, HomeView, m.currentView)
}

func TestModel_AppointmentsUpdateMenuCount(t *testing.T) {
	m, _ := newTestModel()

	view := appointments.View{Visible: true, Cards: []appointments.Card{{Title: "repair"}, {Title: "oil-change"}}}
	m, _ = update(t, m, appointmentsMsg{seq: 1, view: view})

	assert.Equal(t, 2, m.list.Count())
	assert.Equal(t, "My Appointments (2)", m.userMenu.items[1])

	m, _ = update(t, m, appointmentsMsg{seq: 1, view: appointments.View{}})
	assert.Equal(t, 2, m.list.Count())
}

func TestModel_LoginResultNotices(t *testing.T) {
	m, board := newTestModel()

	m, _ = update(t, m, loginDoneMsg{email: "a@b.com", err: errors.New("Invalid credentials")})
	m, _ = update(t, m, loginDoneMsg{email: "a@b.com"})

	notices := board.Active()
	require.Len(t, notices, 2)
	assert.Equal(t, "Logged in successfully!", notices[0].Text)
	assert.Equal(t, notify.KindSuccess, notices[0].Kind)
	assert.Equal(t, "Invalid credentials", notices[1].Text)
	assert.Equal(t, notify.KindError, notices[1].Kind)
}

func TestModel_BookingResetsOnlyOnSuccess(t *testing.T) {
	m, board := newTestModel()
	m, _ = update(t, m, authViewMsg{seq: 1, view: session.AuthView{Authenticated: true, ShowBooking: true}})
	m.currentView = BookView

	m = typeText(t, m, "Honda")
	assert.Equal(t, "Honda", m.book.makeInput)

	m.book.loading = true
	m, _ = update(t, m, bookDoneMsg{serviceType: "oil-change", err: errors.New("image upload failed: S3 bucket not found")})
	assert.False(t, m.book.loading)
	assert.Equal(t, "Honda", m.book.makeInput, "input survives a failed booking")
	assert.Equal(t, BookView, m.currentView)

	m, _ = update(t, m, bookDoneMsg{serviceType: "oil-change"})
	assert.Empty(t, m.book.makeInput)
	assert.Equal(t, ListView, m.currentView)

	notices := board.Active()
	require.Len(t, notices, 2)
	assert.Equal(t, "Appointment booked successfully!", notices[0].Text)
	assert.Equal(t, "image upload failed: S3 bucket not found", notices[1].Text)
}

func TestBookModel_ValidationBlocksSubmit(t *testing.T) {
	b := NewBookModel()
	b.now = func() time.Time { return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC) }
	b.makeInput = "H"

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, b.loading)
	assert.EqualError(t, b.err, "car make must be at least 2 characters")
}

func TestBookModel_FormAndSelectors(t *testing.T) {
	b := NewBookModel()
	b.makeInput = " Honda "
	b.modelInput = "Civic"
	b.yearInput = "2019"
	b.dateInput = "2026-10-21"
	b.descriptionInput = "squeaky brakes"

	b.focusedInput = fieldService
	b.Update(tea.KeyMsg{Type: tea.KeyRight})
	b.focusedInput = fieldTime
	b.Update(tea.KeyMsg{Type: tea.KeyLeft})
	b.focusedInput = fieldNotify
	b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	f := b.Form()
	assert.Equal(t, "Honda", f.CarMake)
	assert.Equal(t, "tire-rotation", f.ServiceType)
	assert.Equal(t, "16:00", f.Time)
	assert.True(t, f.NotificationPreference)
	assert.Nil(t, f.Image)
}

func TestModel_ViewShowsNotices(t *testing.T) {
	m, board := newTestModel()
	board.Error("failed to load appointments: boom")

	assert.Contains(t, m.View(), "failed to load appointments: boom")
}

func TestBookModel_BackspaceRemovesWholeRune(t *testing.T) {
	b := NewBookModel()
	b.focusedInput = fieldModel
	for _, r := range "Škoda Octávia" {
		b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	b.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	b.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "Škoda Octáv", b.modelInput)
	assert.True(t, utf8.ValidString(b.modelInput))
}

func TestLoginModel_BackspaceAndMaskByRune(t *testing.T) {
	l := NewLoginModel()
	l.focusedInput = 1
	l.passwordInput = "pässwörd"

	l.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "pässwör", l.passwordInput)
	assert.Equal(t, strings.Repeat("•", 7), mask(l.passwordInput))

	l.passwordInput = ""
	l.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, l.passwordInput)
}

func TestTruncate_MultiByte(t *testing.T) {
	long := strings.Repeat("é", 70)

	out := truncate(long, 60)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, 60, utf8.RuneCountInString(out))
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.Equal(t, "née", truncate("née", 60))
}

func TestStatusStyle(t *testing.T) {
	for class, color := range statusColors {
		assert.Equal(t, color, StatusStyle(class).GetBackground(), class)
	}
	assert.Equal(t, Muted, StatusStyle("rescheduled").GetBackground())
}

func TestMenuModel_SetItemKeepsSelection(t *testing.T) {
	menu := NewMenuModel(menuBook, "My Appointments (0)", menuLogout)
	menu.Update(tea.KeyMsg{Type: tea.KeyDown})

	menu.SetItem(1, "My Appointments (3)")
	menu.SetItem(7, "ignored")
	menu.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{menuBook, "My Appointments (3)", menuLogout}, menu.items)
	assert.Equal(t, 1, menu.selected)
}
