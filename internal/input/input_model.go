// Package input holds the submission screen's input state.
package input

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

var (
	ErrModeMismatch = errors.New("value does not match the active input mode")
	ErrUnknownMode  = errors.New("unknown input mode")
)

// InputModel tracks the active input mode and the data entered for each
// mode. Only the active mode's data is ever submitted; the others are kept
// so switching back restores them.
type InputModel struct {
	mode          models.InputKind
	link          string
	text          string
	file          *models.Blob
	inputRequired bool
}

// NewInputModel starts in link mode.
func NewInputModel() *InputModel {
	return &InputModel{mode: models.InputLink}
}

func (m *InputModel) Mode() models.InputKind { return m.mode }

// SelectMode switches the active mode and clears the input-required warning.
func (m *InputModel) SelectMode(kind models.InputKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, kind)
	}
	m.mode = kind
	m.inputRequired = false
	return nil
}

// SetLinkOrText sets the value of the active link or text mode.
func (m *InputModel) SetLinkOrText(value string) error {
	switch m.mode {
	case models.InputLink:
		m.link = value
	case models.InputText:
		m.text = value
	default:
		return ErrModeMismatch
	}
	m.clearWarningIfValid()
	return nil
}

// SetFile attaches a file to picture mode. Unlike Drop it does not check the
// media type; the file picker already filters to images.
func (m *InputModel) SetFile(blob *models.Blob) error {
	if m.mode != models.InputPicture {
		return ErrModeMismatch
	}
	m.file = blob
	m.clearWarningIfValid()
	return nil
}

func (m *InputModel) ClearFile() {
	m.file = nil
}

// Drop ingests a dragged file. Only image media types are accepted; anything
// else is ignored without surfacing an error.
func (m *InputModel) Drop(blob *models.Blob) bool {
	if m.mode != models.InputPicture || !blob.IsImage() {
		slog.Debug("[InputModel] Ignoring dropped file",
			slog.String("mode", string(m.mode)),
			slog.String("media_type", mediaType(blob)))
		return false
	}
	m.file = blob
	m.clearWarningIfValid()
	return true
}

// Payload returns the active variant.
func (m *InputModel) Payload() models.InputPayload {
	switch m.mode {
	case models.InputText:
		return models.TextPayload{Body: m.text}
	case models.InputPicture:
		return models.PicturePayload{File: m.file}
	default:
		return models.LinkPayload{URL: m.link}
	}
}

// Validate reports whether the active variant has content. It has no side
// effects.
func (m *InputModel) Validate() bool {
	return m.Payload().HasContent()
}

// MarkInputRequired raises the inline "input required" warning.
func (m *InputModel) MarkInputRequired() { m.inputRequired = true }

func (m *InputModel) InputRequired() bool { return m.inputRequired }

func (m *InputModel) clearWarningIfValid() {
	if m.inputRequired && m.Validate() {
		m.inputRequired = false
	}
}

func mediaType(b *models.Blob) string {
	if b == nil {
		return ""
	}
	return b.MediaType
}
