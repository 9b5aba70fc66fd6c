package contract

import "context"

// Gateway executes a validated Query against its backend. Failures are
// returned as data, never as an error crossing this boundary.
type Gateway interface {
	Execute(ctx context.Context, q Query) BackendResult
}

// Transcriber turns a voice-note byte buffer into text. The transport layer
// treats an error or empty text as "could not understand".
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
