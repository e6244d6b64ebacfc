// Command sahayak runs the multilingual farm advisory assistant: an
// interactive console chat with optional voice input and output, plus an
// admin HTTP server for health probes and metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/ruralconnect/sahayak/internal/app"
	"github.com/ruralconnect/sahayak/internal/config"
	"github.com/ruralconnect/sahayak/internal/dotenv"
	"github.com/ruralconnect/sahayak/internal/observe"
	"github.com/ruralconnect/sahayak/internal/resilience"
	"github.com/ruralconnect/sahayak/pkg/provider/llm"
	"github.com/ruralconnect/sahayak/pkg/provider/llm/anyllm"
	"github.com/ruralconnect/sahayak/pkg/provider/llm/gemini"
	llmmock "github.com/ruralconnect/sahayak/pkg/provider/llm/mock"
	"github.com/ruralconnect/sahayak/pkg/provider/stt"
	"github.com/ruralconnect/sahayak/pkg/provider/stt/whisper"
	"github.com/ruralconnect/sahayak/pkg/provider/tts"
	"github.com/ruralconnect/sahayak/pkg/provider/tts/googletts"
)

const shutdownTimeout = 15 * time.Second

// errNoAPIKey marks a provider that is configured by name but has no usable
// credential. The app starts anyway and answers with the not-configured
// advisory until a key is supplied.
var errNoAPIKey = errors.New("no api key resolved")

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	envPath := flag.String("env", ".env", "path to an optional dotenv file with credentials")
	flag.Parse()

	if err := dotenv.LoadFile(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", *envPath, err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "config file %q not found; copy configs/example.yaml and adjust it\n", *configPath)
			return 1
		}
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	log := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "sahayak"})
	if err != nil {
		log.Error("init telemetry", "error", err)
		return 1
	}
	defer func() {
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(shCtx); err != nil {
			log.Warn("telemetry shutdown", "error", err)
		}
	}()

	reg := config.NewRegistry()
	registerBuiltinProviders(reg)

	providers, err := buildProviders(log, reg, cfg)
	if err != nil {
		log.Error("build providers", "error", err)
		return 1
	}

	a, err := app.New(*cfg, providers, app.WithLogger(log))
	if err != nil {
		log.Error("assemble app", "error", err)
		return 1
	}

	printStartupSummary(cfg, providers)

	runErr := a.Run(ctx)
	stop()

	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shCtx); err != nil {
		log.Error("shutdown incomplete", "error", err)
	}

	if runErr != nil {
		log.Error("run failed", "error", runErr)
		return 1
	}
	return 0
}

func newLogger(level config.LogLevel) *slog.Logger {
	var l slog.Level
	switch level {
	case config.LogDebug:
		l = slog.LevelDebug
	case config.LogWarn:
		l = slog.LevelWarn
	case config.LogError:
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// registerBuiltinProviders wires the provider names the config accepts to
// their constructors.
func registerBuiltinProviders(reg *config.Registry) {
	reg.RegisterLLM("gemini", func(e config.ProviderEntry) (llm.Provider, error) {
		key := e.ResolvedAPIKey()
		if key == "" {
			return nil, fmt.Errorf("llm/gemini: %w", errNoAPIKey)
		}
		var opts []gemini.Option
		if e.Model != "" {
			opts = append(opts, gemini.WithModel(e.Model))
		}
		if e.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(e.BaseURL))
		}
		return gemini.New(key, opts...)
	})
	for _, name := range []string{"openai", "anthropic", "ollama", "mistral"} {
		reg.RegisterLLM(name, func(e config.ProviderEntry) (llm.Provider, error) {
			if e.Model == "" {
				return nil, fmt.Errorf("llm/%s: model is required", e.Name)
			}
			var opts []anyllmlib.Option
			if key := e.ResolvedAPIKey(); key != "" {
				opts = append(opts, anyllmlib.WithAPIKey(key))
			}
			if e.BaseURL != "" {
				opts = append(opts, anyllmlib.WithBaseURL(e.BaseURL))
			}
			return anyllm.New(e.Name, e.Model, opts...)
		})
	}
	reg.RegisterLLM("mock", func(config.ProviderEntry) (llm.Provider, error) {
		return &llmmock.Provider{
			Response: &llm.CompletionResponse{Text: "This is a canned reply from the mock model."},
		}, nil
	})

	reg.RegisterTTS("google", func(e config.ProviderEntry) (tts.Provider, error) {
		key := e.ResolvedAPIKey()
		if key == "" {
			return nil, fmt.Errorf("tts/google: %w", errNoAPIKey)
		}
		var opts []googletts.Option
		if e.BaseURL != "" {
			opts = append(opts, googletts.WithBaseURL(e.BaseURL))
		}
		return googletts.New(key, opts...)
	})

	reg.RegisterSTT("whisper", func(e config.ProviderEntry) (stt.Recognizer, error) {
		var opts []whisper.Option
		if d := optDuration(e.Options, "capture_window"); d > 0 {
			opts = append(opts, whisper.WithCaptureWindow(d))
		}
		return whisper.New(e.BaseURL, opts...)
	})
}

// buildProviders instantiates every configured provider. A provider whose
// credential is missing is skipped with a warning so the assistant can still
// start in degraded text-only mode.
func buildProviders(log *slog.Logger, reg *config.Registry, cfg *config.Config) (app.Providers, error) {
	var p app.Providers

	if e := cfg.Providers.LLM; e.Configured() {
		prov, err := reg.CreateLLM(e)
		switch {
		case errors.Is(err, errNoAPIKey):
			log.Warn("model provider has no usable api key, remote queries disabled", "provider", e.Name)
		case err != nil:
			return p, fmt.Errorf("create llm provider: %w", err)
		default:
			log.Info("model provider created", "provider", e.Name)
			p.LLM = resilience.NewLLM(e.Name, prov, resilience.BreakerConfig{})
		}
	}

	if e := cfg.Providers.TTS; e.Configured() {
		prov, err := reg.CreateTTS(e)
		switch {
		case errors.Is(err, errNoAPIKey):
			log.Warn("speech provider has no usable api key, remote speech disabled", "provider", e.Name)
		case err != nil:
			return p, fmt.Errorf("create tts provider: %w", err)
		default:
			log.Info("speech provider created", "provider", e.Name)
			p.TTS = resilience.NewTTS(e.Name, prov, resilience.BreakerConfig{})
		}
	}

	if e := cfg.Providers.STT; e.Configured() {
		prov, err := reg.CreateSTT(e)
		if err != nil {
			// A missing recorder binary is a host limitation, not a
			// config mistake.
			log.Warn("voice input unavailable", "provider", e.Name, "error", err)
		} else {
			log.Info("recognition provider created", "provider", e.Name)
			p.STT = prov
		}
	}

	return p, nil
}

func printStartupSummary(cfg *config.Config, p app.Providers) {
	rows := [][2]string{
		{"Language", cfg.Assistant.DefaultLanguage},
		{"Location", cfg.Assistant.Location},
		{"Admin", orNone(cfg.Server.ListenAddr)},
		{"Model", onOff(p.LLM != nil, cfg.Providers.LLM.Name)},
		{"Speech", onOff(p.TTS != nil, cfg.Providers.TTS.Name)},
		{"Voice in", onOff(p.STT != nil, cfg.Providers.STT.Name)},
	}

	width := 0
	for _, r := range rows {
		if n := len(r[0]) + len(r[1]); n > width {
			width = n
		}
	}
	width += 4

	fmt.Println("┌" + strings.Repeat("─", width+2) + "┐")
	for _, r := range rows {
		pad := width - len(r[0]) - len(r[1])
		fmt.Printf("│ %s%s%s │\n", r[0], strings.Repeat(" ", pad), r[1])
	}
	fmt.Println("└" + strings.Repeat("─", width+2) + "┘")
	fmt.Println("Type /help for commands.")
}

func orNone(s string) string {
	if s == "" {
		return "disabled"
	}
	return s
}

func onOff(on bool, name string) string {
	if !on {
		return "disabled"
	}
	return name
}

func optDuration(opts map[string]any, key string) time.Duration {
	v, ok := opts[key]
	if !ok {
		return 0
	}
	s, ok := v.(string)
	if !ok {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
