package ui

import (
	"sync"

	"github.com/Varun5711/autocare/internal/appointments"
	"github.com/Varun5711/autocare/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

type authViewMsg struct {
	seq  uint64
	view session.AuthView
}

type appointmentsMsg struct {
	seq  uint64
	view appointments.View
}

// Bridge turns renderer callbacks from the session manager and the
// appointment refresher into program messages. Callbacks may come from the
// event loop itself, so messages are sent from their own goroutine and carry
// a sequence number; the model drops anything older than what it has drawn.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
	seq     uint64
}

func NewBridge() *Bridge {
	return &Bridge{}
}

func (b *Bridge) SetProgram(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	b.mu.Unlock()
}

func (b *Bridge) RenderAuth(view session.AuthView) {
	b.send(func(seq uint64) tea.Msg { return authViewMsg{seq: seq, view: view} })
}

func (b *Bridge) RenderAppointments(view appointments.View) {
	b.send(func(seq uint64) tea.Msg { return appointmentsMsg{seq: seq, view: view} })
}

func (b *Bridge) send(build func(seq uint64) tea.Msg) {
	b.mu.Lock()
	b.seq++
	msg := build(b.seq)
	p := b.program
	b.mu.Unlock()

	if p == nil {
		return
	}
	go p.Send(msg)
}
