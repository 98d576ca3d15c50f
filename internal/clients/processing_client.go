package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

var (
	// ErrMalformedResponse means a 2xx body did not have the expected shape.
	ErrMalformedResponse = errors.New("malformed response from processing service")
	// ErrResultNotReady means GET /result answered without the success marker.
	ErrResultNotReady = errors.New("result is not ready")

	ErrMissingReference = fmt.Errorf("%w: response missing result reference", ErrMalformedResponse)
)

// StatusError is a non-2xx answer from the Processing Service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("processing service returned %d: %s", e.StatusCode, e.Message)
}

// ProcessingClient talks to the Processing Service. It never retries.
type ProcessingClient struct {
	Client  *http.Client
	BaseURL string
}

func NewProcessingClient(baseURL string, timeout time.Duration) *ProcessingClient {
	slog.Info("[ProcessingClient] Initializing Client",
		slog.String("base_url", baseURL),
		slog.Duration("timeout", timeout))
	return &ProcessingClient{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Submit sends one POST /process and returns the reference from the body.
func (p *ProcessingClient) Submit(ctx context.Context, req models.SubmissionRequest) (models.ResultReference, error) {
	body, contentType, err := encodeSubmission(req)
	if err != nil {
		return "", err
	}

	slog.Info("[ProcessingClient] Submitting content",
		slog.String("type", string(req.Payload().Kind())),
		slog.String("action", req.Action().String()))
	start := time.Now()

	var out models.ProcessResponse
	if err := p.do(ctx, http.MethodPost, PROCESS_PATH, body, contentType, &out); err != nil {
		slog.Error("[ProcessingClient] Submission failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", err
	}

	ref := models.ResultReference(strings.TrimSpace(out.ID))
	if ref.IsZero() {
		return "", ErrMissingReference
	}

	slog.Info("[ProcessingClient] Submission accepted",
		slog.String("id", ref.String()),
		slog.Duration("elapsed", time.Since(start)))
	return ref, nil
}

// FetchResult reads GET /result/{id} once.
func (p *ProcessingClient) FetchResult(ctx context.Context, ref models.ResultReference) (*models.ResultBundle, error) {
	start := time.Now()
	raw, err := p.get(ctx, RESULT_PATH+url.PathEscape(ref.String()))
	if err != nil {
		slog.Warn("[ProcessingClient] Result request failed",
			slog.String("id", ref.String()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	res, err := models.DecodeResult(raw)
	if err != nil {
		slog.Error("[ProcessingClient] Failed to decode result",
			slog.String("id", ref.String()),
			getPreview(raw))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !res.Success() {
		return nil, fmt.Errorf("%w: status %q", ErrResultNotReady, res.Status)
	}

	for _, kind := range models.AllFormats {
		if rej := res.Bundle.Rejected(kind); rej != nil {
			slog.Warn("[ProcessingClient] Dropping incomplete format",
				slog.String("id", ref.String()),
				slog.String("format", kind.String()),
				slog.String("error", rej.Error()))
		}
	}

	slog.Info("[ProcessingClient] Result retrieved",
		slog.String("id", ref.String()),
		slog.Int("formats", res.Bundle.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return res.Bundle, nil
}

// HealthCheck reports whether GET /health answers 2xx.
func (p *ProcessingClient) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, HEALTH_TIMEOUT)
	defer cancel()

	if _, err := p.get(ctx, HEALTH_PATH); err != nil {
		slog.Warn("[ProcessingClient] Health check failed", slog.String("error", err.Error()))
		return false
	}
	return true
}

func (p *ProcessingClient) get(ctx context.Context, path string) ([]byte, error) {
	var raw json.RawMessage
	if err := p.do(ctx, http.MethodGet, path, nil, "", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// do sends a request and decodes a 2xx JSON body into output. Non-2xx
// answers become *StatusError.
func (p *ProcessingClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, output any) error {
	endpoint := p.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MAX_RESPONSE_BYTES))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[ProcessingClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// encodeSubmission writes the multipart body: the file for picture input,
// otherwise inputValue and type; action is always present.
func encodeSubmission(req models.SubmissionRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	switch payload := req.Payload().(type) {
	case models.PicturePayload:
		if payload.File == nil {
			return nil, "", errors.New("picture payload without file")
		}
		if err := writeFilePart(w, payload.File); err != nil {
			return nil, "", err
		}
	case models.LinkPayload:
		if err := writeFields(w, payload.URL, models.InputLink); err != nil {
			return nil, "", err
		}
	case models.TextPayload:
		if err := writeFields(w, payload.Body, models.InputText); err != nil {
			return nil, "", err
		}
	default:
		return nil, "", fmt.Errorf("unsupported payload %T", payload)
	}

	if err := w.WriteField("action", req.Action().String()); err != nil {
		return nil, "", fmt.Errorf("failed to write action: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFields(w *multipart.Writer, value string, kind models.InputKind) error {
	if err := w.WriteField("inputValue", value); err != nil {
		return fmt.Errorf("failed to write inputValue: %w", err)
	}
	if err := w.WriteField("type", string(kind)); err != nil {
		return fmt.Errorf("failed to write type: %w", err)
	}
	return nil
}

func writeFilePart(w *multipart.Writer, file *models.Blob) error {
	name := file.Name
	if name == "" {
		name = "upload"
	}
	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     "file",
		"filename": name,
	}))
	header.Set("Content-Type", mediaType)

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("failed to write file part: %w", err)
	}
	return nil
}

func errorMessage(status int, body []byte) string {
	var e models.ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		if msg := strings.TrimSpace(e.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(e.Error); msg != "" {
			return msg
		}
	}
	return http.StatusText(status)
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
