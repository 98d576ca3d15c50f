// Package commands holds the blogdigest CLI actions.
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/srinijamadireddy19/Blog-Digest/config"
	"github.com/srinijamadireddy19/Blog-Digest/internal/app"
	"github.com/srinijamadireddy19/Blog-Digest/internal/clients"
	"github.com/srinijamadireddy19/Blog-Digest/internal/dispatch"
	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/monitoring"
	"github.com/srinijamadireddy19/Blog-Digest/internal/results"
	"github.com/srinijamadireddy19/Blog-Digest/internal/view"
)

// session bundles what one CLI invocation needs to drive the screens.
type session struct {
	nav      *app.Navigator
	client   *clients.ProcessingClient
	renderer *view.TextRenderer
	out      io.Writer
}

func newSession(c *cli.Context) (*session, error) {
	settings := config.LoadClientSettings()
	if u := strings.TrimSpace(c.String("api-url")); u != "" {
		settings.APIBaseURL = strings.TrimRight(u, "/")
	}

	cache, err := results.NewBundleCache(settings.CacheSize)
	if err != nil {
		return nil, err
	}
	client := clients.NewProcessingClient(settings.APIBaseURL, settings.RequestTimeout)
	return &session{
		nav:      app.NewNavigator(client, client, cache),
		client:   client,
		renderer: view.NewTextRenderer(c.App.Writer),
		out:      c.App.Writer,
	}, nil
}

// SubmitAction sends one piece of content and shows the selected tab.
func SubmitAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	action, err := models.ParseFormatKind(c.String("action"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if err := fillInput(c, s.nav); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	ctx := c.Context
	if err := s.submit(ctx, action); err != nil {
		return err
	}
	if !c.Bool("interactive") {
		return s.settle(ctx)
	}
	return s.interactive(ctx, action, c.App.Reader)
}

// ResultAction opens the result screen directly for a known id.
func ResultAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	tab := models.FormatSummary
	if raw := c.String("tab"); raw != "" {
		if tab, err = models.ParseFormatKind(raw); err != nil {
			return cli.Exit(err.Error(), 2)
		}
	}

	s.nav.OpenResult(c.Context, app.NavigationState{Ref: models.ResultReference(c.String("id")), Tab: tab})
	return s.settle(c.Context)
}

// HealthAction probes GET /health once, or keeps watching with --watch.
func HealthAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	if !c.Bool("watch") {
		if !s.client.HealthCheck(c.Context) {
			return cli.Exit("processing service unreachable at "+s.client.BaseURL, 1)
		}
		fmt.Fprintf(s.out, "processing service healthy at %s\n", s.client.BaseURL)
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var healthy atomic.Bool
	fmt.Fprintf(s.out, "watching %s every %s\n", s.client.BaseURL, c.Duration("interval"))
	report := func(ok bool) {
		if ok {
			fmt.Fprintln(s.out, "healthy")
		} else {
			fmt.Fprintln(s.out, "unreachable")
		}
	}
	monitoring.MonitorServiceHealth(ctx, s.client, c.Duration("interval"), &healthy, report)
	return nil
}

// fillInput moves the submit flags into the navigator's input model.
func fillInput(c *cli.Context, nav *app.Navigator) error {
	var set []string
	for _, name := range []string{"link", "text", "text-file", "picture"} {
		if c.IsSet(name) {
			set = append(set, "--"+name)
		}
	}
	if len(set) > 1 {
		return fmt.Errorf("only one input may be given, got %s", strings.Join(set, ", "))
	}

	in := nav.Input()
	switch {
	case c.IsSet("text"):
		_ = in.SelectMode(models.InputText)
		return in.SetLinkOrText(c.String("text"))
	case c.IsSet("text-file"):
		data, err := os.ReadFile(c.String("text-file"))
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		_ = in.SelectMode(models.InputText)
		return in.SetLinkOrText(string(data))
	case c.IsSet("picture"):
		blob, err := readBlob(c.String("picture"))
		if err != nil {
			return err
		}
		_ = in.SelectMode(models.InputPicture)
		if !in.Drop(blob) {
			return fmt.Errorf("%s is not an image (%s)", blob.Name, blob.MediaType)
		}
		return nil
	default:
		_ = in.SelectMode(models.InputLink)
		return in.SetLinkOrText(c.String("link"))
	}
}

func readBlob(path string) (*models.Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read picture: %w", err)
	}
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = mt
	}
	return &models.Blob{Name: filepath.Base(path), MediaType: mediaType, Data: data}, nil
}

func (s *session) submit(ctx context.Context, action models.FormatKind) error {
	err := s.nav.Submit(ctx, action)
	if err == nil {
		fmt.Fprintf(s.out, "Submitted. Result id: %s\n", s.nav.Reference())
		return nil
	}

	var rejected *dispatch.RejectedError
	switch {
	case errors.Is(err, dispatch.ErrMissingInput):
		return cli.Exit("Please provide some input before processing.", 2)
	case errors.As(err, &rejected):
		return cli.Exit("Submission rejected: "+rejected.Message, 1)
	case errors.Is(err, dispatch.ErrUnreachable):
		slog.Debug("[CLI] Submission transport error", slog.String("error", err.Error()))
		return cli.Exit("Could not reach the processing service.", 1)
	default:
		return cli.Exit(err.Error(), 1)
	}
}

// settle waits for the result screen and renders the selected tab. An empty
// state exits non-zero.
func (s *session) settle(ctx context.Context) error {
	if st, ok := s.nav.Await(ctx); !ok || st.Phase != results.PhaseReady {
		if err := s.show(); err != nil {
			return err
		}
		return cli.Exit("", 1)
	}
	return s.show()
}

func (s *session) show() error {
	state := s.nav.View()
	if state.Kind != view.ShowEmptyState {
		if err := s.renderer.Tabs(s.nav.SelectedTab()); err != nil {
			return err
		}
	}
	return s.renderer.Render(state)
}

// interactive reads commands from in: a tab name switches tabs, "back"
// returns to input and the next line is submitted, "quit" ends.
func (s *session) interactive(ctx context.Context, action models.FormatKind, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	s.nav.Await(ctx)
	if err := s.show(); err != nil {
		return err
	}
	s.prompt()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "quit" || line == "exit":
			return nil
		case s.nav.Screen() == app.ScreenInput:
			if err := s.resubmit(ctx, line, action); err != nil {
				fmt.Fprintln(s.out, err)
			}
		case line == "back":
			s.nav.GoBack()
		default:
			kind, err := models.ParseFormatKind(line)
			if err != nil {
				fmt.Fprintf(s.out, "unknown command %q\n", line)
				break
			}
			s.nav.SelectTab(kind)
			if err := s.show(); err != nil {
				return err
			}
		}
		s.prompt()
	}
	return scanner.Err()
}

func (s *session) resubmit(ctx context.Context, line string, action models.FormatKind) error {
	in := s.nav.Input()
	mode := models.InputText
	if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
		mode = models.InputLink
	}
	_ = in.SelectMode(mode)
	_ = in.SetLinkOrText(line)

	if err := s.submit(ctx, action); err != nil {
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			return errors.New(exit.Error())
		}
		return err
	}
	s.nav.Await(ctx)
	return s.show()
}

func (s *session) prompt() {
	if s.nav.Screen() == app.ScreenInput {
		fmt.Fprint(s.out, "text or link> ")
		return
	}
	fmt.Fprint(s.out, "tab, back or quit> ")
}
