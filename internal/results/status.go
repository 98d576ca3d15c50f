package results

import (
	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RetrievalStatus is one observation of a result fetch. Bundle is set only
// when Ready, Err only when Failed.
type RetrievalStatus struct {
	Phase  Phase
	Ref    models.ResultReference
	Bundle *models.ResultBundle
	Err    error
}

func Loading(ref models.ResultReference) RetrievalStatus {
	return RetrievalStatus{Phase: PhaseLoading, Ref: ref}
}

func Ready(ref models.ResultReference, bundle *models.ResultBundle) RetrievalStatus {
	return RetrievalStatus{Phase: PhaseReady, Ref: ref, Bundle: bundle}
}

func Failed(ref models.ResultReference, err error) RetrievalStatus {
	return RetrievalStatus{Phase: PhaseFailed, Ref: ref, Err: err}
}

func (s RetrievalStatus) Terminal() bool { return s.Phase != PhaseLoading }
