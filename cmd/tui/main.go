package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Varun5711/autocare/cmd/tui/ui"
	"github.com/Varun5711/autocare/internal/appointments"
	"github.com/Varun5711/autocare/internal/booking"
	"github.com/Varun5711/autocare/internal/client"
	"github.com/Varun5711/autocare/internal/config"
	"github.com/Varun5711/autocare/internal/logger"
	"github.com/Varun5711/autocare/internal/notify"
	"github.com/Varun5711/autocare/internal/redis"
	"github.com/Varun5711/autocare/internal/session"
	"github.com/Varun5711/autocare/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	os.Exit(run())
}

// run owns every resource so its deferred cleanup happens before main exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}

	log, logFile, err := logger.OpenFile("tui", cfg.Log.File)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	log.SetStdLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := newTokenStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open token store: %v", err)
		fmt.Printf("Failed to open token store: %v\n", err)
		return 1
	}
	defer closeStore()

	api := client.New(client.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	}, log.With("client"))

	sess := session.New()
	notices := notify.NewBoard(cfg.Notice.TTL, log.With("notify"))
	refresher := appointments.NewRefresher(sess, api, notices, cfg.Refresh.Interval, log.With("appointments"))
	manager := session.NewManager(sess, api, store, refresher, log.With("session"))
	submitter := booking.NewSubmitter(sess, api, refresher, log.With("booking"))

	unwatch := refresher.Watch()
	defer unwatch()

	unsubscribe := sess.Subscribe(func(st session.State) {
		if st.Authenticated() {
			log.Debug("session is now %s", st.Email())
		} else {
			log.Debug("session is anonymous")
		}
	})
	defer unsubscribe()

	bridge := ui.NewBridge()
	manager.SetRenderer(bridge)
	refresher.SetSink(bridge)

	log.Info("AutoCare client starting against %s (token store: %s)", api.BaseURL(), cfg.Token.Store)

	p := tea.NewProgram(
		ui.NewModel(ui.Deps{
			Context:   ctx,
			Manager:   manager,
			Submitter: submitter,
			Refresher: refresher,
			Notices:   notices,
		}),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	bridge.SetProgram(p)

	_, runErr := p.Run()

	cancel()
	refresher.Stop()
	log.Info("AutoCare client stopped")

	if runErr != nil {
		log.Error("program exited: %v", runErr)
		fmt.Printf("Error: %v\n", runErr)
		return 1
	}
	return 0
}

func newTokenStore(ctx context.Context, cfg *config.Config) (storage.TokenStore, func(), error) {
	switch cfg.Token.Store {
	case config.TokenStoreRedis:
		rc, err := redis.NewRedisClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisTokenStore(rc.GetClient(), cfg.Token.Key), func() { rc.Close() }, nil
	case config.TokenStoreMemory:
		return storage.NewMemoryTokenStore(), func() {}, nil
	default:
		return storage.NewFileTokenStore(cfg.Token.File), func() {}, nil
	}
}
