package models

import "strings"

// ResultReference is the opaque id the Processing Service returns for a
// submission. The zero value means "no reference".
type ResultReference string

func (r ResultReference) IsZero() bool { return strings.TrimSpace(string(r)) == "" }

func (r ResultReference) String() string { return string(r) }

// SubmissionRequest is built once at submission time and never changed.
type SubmissionRequest struct {
	payload InputPayload
	action  FormatKind
}

func NewSubmissionRequest(payload InputPayload, action FormatKind) SubmissionRequest {
	if p, ok := payload.(PicturePayload); ok && p.File != nil {
		// the request owns its own copy of the blob
		file := *p.File
		file.Data = append([]byte(nil), p.File.Data...)
		payload = PicturePayload{File: &file}
	}
	return SubmissionRequest{payload: payload, action: action}
}

func (r SubmissionRequest) Payload() InputPayload { return r.payload }
func (r SubmissionRequest) Action() FormatKind { return r.action }

// ProcessResponse is the body of a successful POST /process.
type ProcessResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body the Processing Service sends with a failure status.
type ErrorResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
