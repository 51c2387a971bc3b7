package loam

import (
	"errors"

	"github.com/loamdb/loam-go/internal/domain"
)

// ErrNotFound signals that no document matched the requested id.
var ErrNotFound = errors.New("document not found")

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrConnection        = domain.ErrConnection
	ErrServer            = domain.ErrServer
	ErrDuplicateID       = domain.ErrDuplicateID
	ErrLengthMismatch    = domain.ErrLengthMismatch
	ErrMissingContent    = domain.ErrMissingContent
	ErrInvalidCollection = domain.ErrInvalidCollection
	ErrNoEmbedder        = domain.ErrNoEmbedder
	ErrEmbeddingProvider = domain.ErrEmbeddingProvider
	ErrClientNotReady    = domain.ErrClientNotReady
)

// Typed errors re-exported for errors.As().
type (
	// DuplicateIDError names every repeated id in a rejected batch.
	DuplicateIDError = domain.DuplicateIDError
	// LengthMismatchError names the parallel array whose length disagrees with ids.
	LengthMismatchError = domain.LengthMismatchError
	// MissingContentError names documents lacking both contents and embedding.
	MissingContentError = domain.MissingContentError
	// ServerError carries the HTTP status and the server message verbatim.
	ServerError = domain.ServerError
)
