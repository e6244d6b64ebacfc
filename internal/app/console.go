package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/ruralconnect/sahayak/internal/advisory"
	"github.com/ruralconnect/sahayak/internal/i18n"
	"github.com/ruralconnect/sahayak/internal/session"
	"github.com/ruralconnect/sahayak/internal/turn"
	"github.com/ruralconnect/sahayak/internal/voice"
)

// ConsoleConfig wires the interactive console.
type ConsoleConfig struct {
	Store      *session.Store
	Controller *turn.Controller
	Input      *voice.Input
	Location   string
	In         io.Reader
	Out        io.Writer
	Logger     *slog.Logger
}

// Console is the line-oriented chat surface. Free text becomes a turn,
// a leading slash runs a command, and a bare number picks the matching
// quick reply from the last completed turn.
type Console struct {
	store *session.Store
	ctrl  *turn.Controller
	input *voice.Input

	location string
	in       io.Reader
	log      *slog.Logger

	mu  sync.Mutex
	out io.Writer

	// render state, touched only by the snapshot goroutine
	printed int
	loading bool
}

// NewConsole builds a console over the given session.
func NewConsole(cfg ConsoleConfig) *Console {
	location := cfg.Location
	if location == "" {
		location = advisory.DefaultLocation
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Console{
		store:    cfg.Store,
		ctrl:     cfg.Controller,
		input:    cfg.Input,
		location: location,
		in:       cfg.In,
		out:      cfg.Out,
		log:      log,
	}
}

// Run reads lines until EOF, /quit or ctx cancellation. Session updates
// are rendered as they arrive, including turns submitted by voice.
func (c *Console) Run(ctx context.Context) error {
	snaps, cancel := c.store.Subscribe()
	rendered := make(chan struct{})
	defer func() {
		cancel()
		<-rendered
	}()

	lang := c.store.Language()
	c.store.AppendBot(i18n.Text(i18n.KeyWelcome, lang))
	c.printQuickActions(lang)

	go func() {
		defer close(rendered)
		for snap := range snaps {
			c.render(snap)
		}
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			c.log.Warn("console read failed", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if !c.handle(ctx, line) {
				return nil
			}
		}
	}
}

// handle reports false when the console should exit.
func (c *Console) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, "/") {
		return c.command(ctx, line)
	}
	if n, err := strconv.Atoi(line); err == nil {
		c.pick(ctx, n)
		return true
	}
	c.ctrl.Submit(ctx, line)
	return true
}

func (c *Console) command(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit", "/exit":
		return false
	case "/help":
		c.printHelp()
	case "/lang":
		c.setLanguage(arg)
	case "/talk":
		if c.input.Start(ctx) {
			c.printf("%s\n", i18n.Text(i18n.KeyListening, c.store.Language()))
		}
	case "/stop":
		c.input.Stop()
	case "/prices":
		c.printf("%s\n", advisory.FormatMarketPrices(advisory.MarketPrices()))
	case "/weather":
		c.printf("%s\n", advisory.FormatWeather(advisory.CurrentWeather(c.location)))
	case "/loans":
		c.printf("%s\n", advisory.FormatLoanSchemes(advisory.LoanSchemes()))
	default:
		c.printf("unknown command %s, try /help\n", cmd)
	}
	return true
}

func (c *Console) setLanguage(arg string) {
	lang, err := i18n.Parse(arg)
	if err != nil {
		names := make([]string, 0, len(i18n.Languages()))
		for _, l := range i18n.Languages() {
			names = append(names, string(l))
		}
		c.printf("unknown language %q, choose one of: %s\n", arg, strings.Join(names, ", "))
		return
	}
	c.store.SetLanguage(lang)
	c.printf("language set to %s\n", lang.DisplayName())
	c.printQuickActions(lang)
}

// pick submits the n-th quick reply from the last completed turn, or the
// n-th starter action when no turn has run yet.
func (c *Console) pick(ctx context.Context, n int) {
	snap := c.store.Snapshot()
	if n >= 1 && n <= len(snap.Suggestions) {
		c.ctrl.Submit(ctx, snap.Suggestions[n-1])
		return
	}
	actions := i18n.QuickActions(snap.Language)
	if n >= 1 && n <= len(actions) {
		c.ctrl.Submit(ctx, actions[n-1].Prompt)
		return
	}
	c.printf("no quick reply %d\n", n)
}

func (c *Console) render(snap session.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range snap.Messages[c.printed:] {
		prefix := "you"
		if m.Sender == session.SenderBot {
			prefix = "bot"
		}
		fmt.Fprintf(c.out, "%s> %s\n", prefix, m.Text)
	}
	c.printed = len(snap.Messages)

	if snap.Loading && !c.loading {
		fmt.Fprintf(c.out, "... %s\n", i18n.Text(i18n.KeyThinking, snap.Language))
	}
	if !snap.Loading && c.loading && len(snap.Suggestions) > 0 {
		for i, s := range snap.Suggestions {
			fmt.Fprintf(c.out, "  [%d] %s\n", i+1, s)
		}
	}
	c.loading = snap.Loading
}

func (c *Console) printQuickActions(lang i18n.Language) {
	actions := i18n.QuickActions(lang)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, a := range actions {
		fmt.Fprintf(c.out, "  [%d] %s\n", i+1, a.Title)
	}
}

func (c *Console) printHelp() {
	c.printf(`commands:
  /lang <name>  switch language (english, hindi, kannada)
  /talk         start voice input
  /stop         stop voice input
  /prices       show market prices
  /weather      show the weather outlook
  /loans        show loan schemes
  /quit         exit
type a message to ask, or a number to pick a quick reply
`)
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}
