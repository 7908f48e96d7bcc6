package service

import "context"

// Confirmer gates irreversible actions behind an explicit user confirmation.
// A dismissed confirmation must result in zero network calls and zero state
// change on the caller's side.
type Confirmer interface {
	// Confirm presents the prompt and reports whether the user affirmed.
	Confirm(ctx context.Context, prompt string) (bool, error)
}
