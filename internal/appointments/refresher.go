package appointments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Varun5711/autocare/internal/logger"
	"github.com/Varun5711/autocare/internal/models"
	"github.com/Varun5711/autocare/internal/notify"
	"github.com/Varun5711/autocare/internal/session"
)

var ErrLoadFailed = errors.New("failed to load appointments")

type Lister interface {
	ListAppointments(ctx context.Context, token string) ([]models.Appointment, error)
}

type Sink interface {
	RenderAppointments(view View)
}

// Refresher keeps the rendered list in step with the backend and owns the one
// periodic poller for the authenticated session.
type Refresher struct {
	session  *session.Session
	api      Lister
	notifier notify.Notifier
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	sink   Sink
	cancel context.CancelFunc
	done   chan struct{}

	// drawMu makes "is this still the session the list was fetched for" and
	// the redraw one step, serialised against the clear issued by Watch.
	drawMu sync.Mutex
}

func NewRefresher(sess *session.Session, api Lister, notifier notify.Notifier, interval time.Duration, log *logger.Logger) *Refresher {
	if log == nil {
		log = logger.Discard()
	}
	return &Refresher{
		session:  sess,
		api:      api,
		notifier: notifier,
		interval: interval,
		log:      log,
	}
}

func (r *Refresher) SetSink(s Sink) {
	r.mu.Lock()
	r.sink = s
	r.mu.Unlock()
}

// Watch clears the drawn list whenever the session becomes anonymous so a
// later login never shows the previous user's cards.
func (r *Refresher) Watch() (unsubscribe func()) {
	return r.session.Subscribe(func(st session.State) {
		if st.Authenticated() {
			return
		}
		r.drawMu.Lock()
		defer r.drawMu.Unlock()
		r.render(View{})
	})
}

// Load fetches the list for the current token and redraws it in full. It
// does nothing without an active session.
func (r *Refresher) Load(ctx context.Context) error {
	st := r.session.State()
	if !st.Authenticated() {
		return nil
	}

	list, err := r.api.ListAppointments(ctx, st.Token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	r.log.Debug("loaded %d appointments", len(list))
	r.renderFor(st.Gen, Render(list))
	return nil
}

// Refresh runs one Load and reports a failure as a notice.
func (r *Refresher) Refresh(ctx context.Context) {
	err := r.Load(ctx)
	if err == nil || ctx.Err() != nil {
		return
	}
	if r.notifier != nil {
		r.notifier.Error(err.Error())
	}
}

// Start loads immediately and then every interval until Stop. Calling it
// while a poller is running does nothing.
func (r *Refresher) Start() {
	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	r.log.Info("appointment refresh started (every %s)", r.interval)
	go r.run(ctx, done)
}

// Stop cancels the poller and waits for it to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.log.Info("appointment refresh stopped")
}

func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

func (r *Refresher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	r.Refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

// renderFor draws view only if the session is still the one with generation
// gen. A logout or re-login while the request was in flight drops the result.
func (r *Refresher) renderFor(gen uint64, view View) {
	r.drawMu.Lock()
	defer r.drawMu.Unlock()

	if r.session.Generation() != gen {
		r.log.Debug("dropping appointment list fetched for a previous session")
		return
	}
	r.render(view)
}

func (r *Refresher) render(view View) {
	r.mu.Lock()
	sink := r.sink
	r.mu.Unlock()

	if sink != nil {
		sink.RenderAppointments(view)
	}
}
