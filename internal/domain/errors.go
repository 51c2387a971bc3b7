package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConnection signals an unreachable store.
	ErrConnection = errors.New("connection failed")
	// ErrServer signals a non-success response from the store.
	ErrServer = errors.New("server error")
	// ErrDuplicateID signals repeated document ids within one batch.
	ErrDuplicateID = errors.New("duplicate document id")
	// ErrLengthMismatch signals a parallel array whose length disagrees with ids.
	ErrLengthMismatch = errors.New("parallel array length mismatch")
	// ErrMissingContent signals a document lacking both contents and embedding.
	ErrMissingContent = errors.New("document has neither contents nor embedding")
	// ErrInvalidCollection signals an operation on a collection that no longer exists.
	ErrInvalidCollection = errors.New("invalid collection")
	// ErrNoEmbedder signals that no embedding capability is configured.
	ErrNoEmbedder = errors.New("embedder not configured")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrClientNotReady signals a failed client initialization.
	ErrClientNotReady = errors.New("client initialization failed")
)

// DuplicateIDError wraps ErrDuplicateID with every repeated id in the batch.
type DuplicateIDError struct {
	IDs []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateID.Error(), strings.Join(e.IDs, ", "))
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// LengthMismatchError wraps ErrLengthMismatch with the offending array name.
type LengthMismatchError struct {
	Field string
	Want  int
	Got   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: %s has %d elements, want %d", ErrLengthMismatch.Error(), e.Field, e.Got, e.Want)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// MissingContentError wraps ErrMissingContent with the offending documents.
// Refs are document ids, or "#<position>" for id-less query documents.
type MissingContentError struct {
	Refs []string
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingContent.Error(), strings.Join(e.Refs, ", "))
}

func (e *MissingContentError) Unwrap() error { return ErrMissingContent }

// ServerError wraps ErrServer with the HTTP status and the server message verbatim.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrServer.Error(), e.Status, e.Message)
}

func (e *ServerError) Unwrap() error { return ErrServer }
