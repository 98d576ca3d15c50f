package stubservice

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/processing"
)

var urlPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// ValidationError is reported to the caller as 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func ValidURL(raw string) bool {
	return urlPattern.MatchString(raw)
}

// parseSubmission reads a POST /process multipart body. A file part makes it
// a picture submission; otherwise inputValue and type are required.
func parseSubmission(r *http.Request, maxBytes int64) (processing.Submission, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return processing.Submission{}, err
		}
		return processing.Submission{}, invalid("Request must be multipart form data")
	}

	action := strings.TrimSpace(r.FormValue("action"))
	if action == "" {
		return processing.Submission{}, invalid("Action must be specified")
	}
	kind, err := models.ParseFormatKind(action)
	if err != nil {
		return processing.Submission{}, invalid("Invalid action: %s", action)
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		return pictureSubmission(file, header, kind)
	}

	value := strings.TrimSpace(r.FormValue("inputValue"))
	if value == "" {
		return processing.Submission{}, invalid("Input cannot be empty")
	}
	inputType := r.FormValue("type")
	switch models.InputKind(inputType) {
	case models.InputText:
	case models.InputLink:
		if !ValidURL(value) {
			return processing.Submission{}, invalid("Invalid URL format")
		}
	default:
		return processing.Submission{}, invalid("Invalid input type: %s", inputType)
	}

	return processing.Submission{Kind: models.InputKind(inputType), Value: value, Action: kind}, nil
}

func pictureSubmission(file multipart.File, header *multipart.FileHeader, action models.FormatKind) (processing.Submission, error) {
	if header.Filename == "" {
		return processing.Submission{}, invalid("No file selected")
	}
	blob := &models.Blob{Name: header.Filename, MediaType: header.Header.Get("Content-Type")}
	if !blob.IsImage() {
		return processing.Submission{}, invalid("Uploaded file is not an image")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return processing.Submission{}, fmt.Errorf("failed to read upload: %w", err)
	}
	blob.Data = data
	return processing.Submission{Kind: models.InputPicture, File: blob, Action: action}, nil
}
