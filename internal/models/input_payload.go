package models

import (
	"fmt"
	"strings"
)

// InputKind is the input mode tag. Link and text values are sent to the
// Processing Service as the "type" field.
type InputKind string

const (
	InputLink    InputKind = "link"
	InputText    InputKind = "text"
	InputPicture InputKind = "picture"
)

func (k InputKind) Valid() bool {
	return k == InputLink || k == InputText || k == InputPicture
}

func ParseInputKind(s string) (InputKind, error) {
	k := InputKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown input kind %q", s)
	}
	return k, nil
}

// Blob is an uploaded file as declared by its source.
type Blob struct {
	Name      string
	MediaType string
	Data      []byte
}

func (b *Blob) IsImage() bool {
	return b != nil && strings.HasPrefix(strings.ToLower(b.MediaType), "image/")
}

// InputPayload is one of LinkPayload, TextPayload or PicturePayload.
type InputPayload interface {
	Kind() InputKind
	// HasContent reports whether the payload is complete enough to submit.
	HasContent() bool
	isInputPayload()
}

type LinkPayload struct {
	URL string
}

func (LinkPayload) Kind() InputKind { return InputLink }
func (p LinkPayload) HasContent() bool { return strings.TrimSpace(p.URL) != "" }
func (LinkPayload) isInputPayload() {}

type TextPayload struct {
	Body string
}

func (TextPayload) Kind() InputKind { return InputText }
func (p TextPayload) HasContent() bool { return strings.TrimSpace(p.Body) != "" }
func (TextPayload) isInputPayload() {}

type PicturePayload struct {
	File *Blob
}

func (PicturePayload) Kind() InputKind { return InputPicture }
func (p PicturePayload) HasContent() bool { return p.File != nil }
func (PicturePayload) isInputPayload() {}
