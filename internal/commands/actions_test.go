package commands

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/srinijamadireddy19/Blog-Digest/internal/db"
	"github.com/srinijamadireddy19/Blog-Digest/internal/processing"
	"github.com/srinijamadireddy19/Blog-Digest/internal/stubservice"
)

const post = "Go makes building reliable network software simple. " +
	"Developers enjoy the fast compiler and the great standard library. " +
	"Software teams ship services quickly with Go."

func stubServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := stubservice.NewHandler(processing.NewProcessor(nil, nil, nil), db.NewMemoryRepository(time.Hour), 1<<20)
	srv := httptest.NewServer(stubservice.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

// run executes the CLI and returns stdout and the exit code carried by the
// returned error, without exiting the test binary.
func run(t *testing.T, stdin string, args ...string) (string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"blogdigest"}, args...))
	code := 0
	if err != nil {
		code = 1
		if exit, ok := err.(cli.ExitCoder); ok {
			code = exit.ExitCode()
		}
	}
	return out.String(), code
}

func TestSubmitTextShowsSelectedTab(t *testing.T) {
	srv := stubServer(t)
	out, code := run(t, "", "--api-url", srv.URL, "submit", "--text", post, "--action", "keywords")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Submitted. Result id: ")
	assert.Contains(t, out, "[keywords]")
	assert.Contains(t, out, "== Keyword Extraction ==")
	assert.Contains(t, out, "Software")
}

func TestSubmitBlankTextNeedsInput(t *testing.T) {
	srv := stubServer(t)
	out, code := run(t, "", "--api-url", srv.URL, "submit", "--text", "   ")
	assert.Equal(t, 2, code)
	assert.NotContains(t, out, "Submitted")
}

func TestSubmitRejectsTwoInputs(t *testing.T) {
	_, code := run(t, "", "submit", "--text", "a", "--link", "https://example.com")
	assert.Equal(t, 2, code)
}

func TestSubmitRejectedByService(t *testing.T) {
	srv := stubServer(t)
	_, code := run(t, "", "--api-url", srv.URL, "submit", "--link", "not a url")
	assert.Equal(t, 1, code)
}

func TestSubmitTextFile(t *testing.T) {
	srv := stubServer(t)
	path := filepath.Join(t.TempDir(), "post.txt")
	require.NoError(t, os.WriteFile(path, []byte(post), 0o600))

	out, code := run(t, "", "--api-url", srv.URL, "submit", "--text-file", path, "--action", "sentiment")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "== Sentiment Analysis ==")
}

func TestSubmitPictureMustBeImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	_, code := run(t, "", "submit", "--picture", path)
	assert.Equal(t, 2, code)
}

func TestInteractiveSwitchesTabsAndGoesBack(t *testing.T) {
	srv := stubServer(t)
	stdin := "topics\ntranslation\nback\n" + post + "\nquit\n"
	out, code := run(t, stdin, "--api-url", srv.URL, "submit", "-i", "--text", post)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "== Summary ==")
	assert.Contains(t, out, "== Topic Classification ==")
	assert.Contains(t, out, "Nothing to show for Multi-lingual Translation.")
	assert.Contains(t, out, "text or link> ")
	assert.Equal(t, 2, strings.Count(out, "Submitted. Result id: "))
}

func TestResultUnknownIDShowsEmptyState(t *testing.T) {
	srv := stubServer(t)
	out, code := run(t, "", "--api-url", srv.URL, "result", "--id", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "No results available.")
}

func TestResultWithoutIDShowsEmptyState(t *testing.T) {
	srv := stubServer(t)
	out, code := run(t, "", "--api-url", srv.URL, "result")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "No results available.")
}

func TestHealth(t *testing.T) {
	srv := stubServer(t)
	out, code := run(t, "", "--api-url", srv.URL, "health")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "healthy")

	srv.Close()
	_, code = run(t, "", "--api-url", srv.URL, "health")
	assert.Equal(t, 1, code)
}
