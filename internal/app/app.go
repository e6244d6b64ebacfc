// Package app assembles the assistant from its parts and manages the
// process lifecycle. New wires the session store, turn controller, voice
// pipeline and admin server from a validated config; Run blocks until the
// console exits or the context is cancelled; Shutdown drains in-flight
// work in reverse wiring order.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/ruralconnect/sahayak/internal/config"
	"github.com/ruralconnect/sahayak/internal/gateway"
	"github.com/ruralconnect/sahayak/internal/health"
	"github.com/ruralconnect/sahayak/internal/i18n"
	"github.com/ruralconnect/sahayak/internal/observe"
	"github.com/ruralconnect/sahayak/internal/session"
	"github.com/ruralconnect/sahayak/internal/transcript"
	"github.com/ruralconnect/sahayak/internal/turn"
	"github.com/ruralconnect/sahayak/internal/voice"
	"github.com/ruralconnect/sahayak/pkg/audio"
	"github.com/ruralconnect/sahayak/pkg/provider/llm"
	"github.com/ruralconnect/sahayak/pkg/provider/stt"
	"github.com/ruralconnect/sahayak/pkg/provider/tts"
	"github.com/ruralconnect/sahayak/pkg/provider/tts/device"
)

const adminShutdownTimeout = 5 * time.Second

// Providers bundles the external service implementations the app wires in.
// Any field may be nil; the corresponding capability degrades gracefully
// (unconfigured gateway advisories, device-only speech, no voice input).
type Providers struct {
	LLM llm.Provider
	TTS tts.Provider
	STT stt.Recognizer
}

type options struct {
	localEngine voice.LocalEngine
	localSet    bool
	player      audio.Player
	playerSet   bool
	metrics     *observe.Metrics
	logger      *slog.Logger
	stdin       io.Reader
	stdout      io.Writer
}

// Option overrides a default dependency, mainly for tests.
type Option func(*options)

// WithLocalEngine replaces the probed on-device speech engine. Pass nil to
// run without one.
func WithLocalEngine(e voice.LocalEngine) Option {
	return func(o *options) { o.localEngine = e; o.localSet = true }
}

// WithPlayer replaces the probed audio playback backend.
func WithPlayer(p audio.Player) Option {
	return func(o *options) { o.player = p; o.playerSet = true }
}

// WithMetrics replaces the default metrics instruments.
func WithMetrics(m *observe.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithConsole redirects the interactive console, mainly for tests.
func WithConsole(in io.Reader, out io.Writer) Option {
	return func(o *options) { o.stdin = in; o.stdout = out }
}

type closer struct {
	name string
	fn   func(context.Context) error
}

// App is the assembled assistant process.
type App struct {
	cfg     config.Config
	log     *slog.Logger
	store   *session.Store
	ctrl    *turn.Controller
	input   *voice.Input
	console *Console
	admin   *http.Server

	closers  []closer
	stopOnce sync.Once
	stopErr  error
}

// New wires the application. The config must already be validated.
func New(cfg config.Config, providers Providers, opts ...Option) (*App, error) {
	o := options{
		logger: slog.Default(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = observe.DefaultMetrics()
	}
	log := o.logger

	if !o.localSet {
		if engine, ok := device.Probe(); ok {
			o.localEngine = engine
		} else {
			log.Warn("no on-device speech engine found, local speech disabled")
		}
	}
	if !o.playerSet {
		if player, ok := audio.Probe(); ok {
			o.player = player
		} else {
			log.Warn("no audio playback command found, remote speech disabled")
		}
	}

	lang, err := i18n.Parse(cfg.Assistant.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("app: default language: %w", err)
	}

	store := session.New(lang)
	gw := gateway.New(providers.LLM)
	dispatcher := voice.NewDispatcher(voice.DispatcherConfig{
		Remote:  providers.TTS,
		Player:  o.player,
		Local:   o.localEngine,
		Metrics: o.metrics,
		Logger:  log,
	})
	ctrl := turn.New(turn.Config{
		Store:   store,
		Gateway: gw,
		Speaker: dispatcher,
		Metrics: o.metrics,
		Logger:  log,
	})
	input := voice.NewInput(voice.InputConfig{
		Recognizer: providers.STT,
		Store:      store,
		Submitter:  ctrl,
		Corrector:  transcript.New(i18n.KeywordLexicon()),
		Metrics:    o.metrics,
		Logger:     log,
	})

	a := &App{
		cfg:   cfg,
		log:   log,
		store: store,
		ctrl:  ctrl,
		input: input,
	}
	a.console = NewConsole(ConsoleConfig{
		Store:      store,
		Controller: ctrl,
		Input:      input,
		Location:   cfg.Assistant.Location,
		In:         o.stdin,
		Out:        o.stdout,
		Logger:     log,
	})

	if cfg.Server.ListenAddr != "" {
		a.admin = newAdminServer(cfg.Server.ListenAddr, gw, o.localEngine, o.metrics)
	}

	a.closers = []closer{
		{name: "voice input", fn: func(context.Context) error {
			input.Stop()
			return nil
		}},
		{name: "turn controller", fn: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				ctrl.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}},
	}
	return a, nil
}

func newAdminServer(addr string, gw *gateway.Gateway, engine voice.LocalEngine, m *observe.Metrics) *http.Server {
	checkers := []health.Checker{health.Gateway(gw)}
	if engine != nil {
		checkers = append(checkers, health.Speech(engine))
	}
	h := health.New(checkers...)

	mux := http.NewServeMux()
	h.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           observe.Middleware(m)(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Store exposes the session store, mainly for tests.
func (a *App) Store() *session.Store { return a.store }

// Run serves the admin endpoints and the interactive console until the
// console exits or ctx is cancelled. It does not drain in-flight turns;
// call Shutdown afterwards.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if a.admin != nil {
		g.Go(func() error {
			a.log.Info("admin server listening", "addr", a.admin.Addr)
			if err := a.admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("app: admin server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shCtx, shCancel := context.WithTimeout(context.Background(), adminShutdownTimeout)
			defer shCancel()
			if err := a.admin.Shutdown(shCtx); err != nil {
				return fmt.Errorf("app: admin shutdown: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		return a.console.Run(gctx)
	})
	return g.Wait()
}

// Shutdown stops voice capture and waits for in-flight turns to resolve.
// Safe to call more than once; later calls return the first result.
func (a *App) Shutdown(ctx context.Context) error {
	a.stopOnce.Do(func() {
		for _, c := range a.closers {
			select {
			case <-ctx.Done():
				a.stopErr = errors.Join(a.stopErr, fmt.Errorf("app: shutdown interrupted before %s: %w", c.name, ctx.Err()))
				return
			default:
			}
			if err := c.fn(ctx); err != nil {
				a.stopErr = errors.Join(a.stopErr, fmt.Errorf("app: stop %s: %w", c.name, err))
			}
		}
	})
	return a.stopErr
}
