// Package download runs the password-gated retrieval flow for protected
// files. Password verification lives entirely upstream; the flow only
// tracks prompt state and maps outcomes to the texts the user sees.
package download

import (
	"context"
	"errors"
	"fmt"

	"go-registry-console/internal/registry"
)

// DeniedMessage is the fixed text shown when the registry refuses a
// candidate password. It carries no detail about why.
const DeniedMessage = "Acceso denegado. Verifique la contraseña."

// State is the phase of one protected-download attempt.
type State int

const (
	StateIdle State = iota
	StatePasswordPrompt
	StateVerifying
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePasswordPrompt:
		return "password-prompt"
	case StateVerifying:
		return "verifying"
	case StateSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// VerifyFunc submits a candidate password upstream and opens the
// resource on success. registry.Client.DownloadProtectedFile satisfies
// it.
type VerifyFunc func(ctx context.Context, fileID uint, password string) (*registry.ProtectedResource, error)

// Flow is the state machine for one protected file in one tab. Retries
// are unlimited: a refused password returns to the prompt with the
// denial message, never to a terminal state.
type Flow struct {
	verify  VerifyFunc
	fileID  uint
	state   State
	message string
}

func NewFlow(verify VerifyFunc) *Flow {
	return &Flow{verify: verify, state: StateIdle}
}

// State returns the current phase.
func (f *Flow) State() State { return f.state }

// Message returns the text to show next to the prompt, "" when none.
func (f *Flow) Message() string { return f.message }

// FileID returns the file the active prompt is for, 0 when idle.
func (f *Flow) FileID() uint { return f.fileID }

// Start opens the password prompt for a protected file.
func (f *Flow) Start(fileID uint) error {
	if fileID == 0 {
		return fmt.Errorf("download: file id required")
	}
	f.fileID = fileID
	f.state = StatePasswordPrompt
	f.message = ""
	return nil
}

// Submit sends the candidate password upstream. On success the flow
// reaches StateSuccess and returns the opened resource exactly once;
// the caller owns its Body. On refusal or error the flow returns to the
// prompt with the message already set, and the error is also returned
// for logging.
func (f *Flow) Submit(ctx context.Context, password string) (*registry.ProtectedResource, error) {
	if f.state != StatePasswordPrompt {
		return nil, fmt.Errorf("download: no prompt active (state %s)", f.state)
	}
	f.state = StateVerifying

	resource, err := f.verify(ctx, f.fileID, password)
	if err != nil {
		f.state = StatePasswordPrompt
		switch {
		case errors.Is(err, registry.ErrDenied):
			f.message = DeniedMessage
		default:
			f.message = registry.UserMessage(err, "No se pudo descargar el archivo.")
		}
		return nil, err
	}

	f.state = StateSuccess
	f.message = ""
	return resource, nil
}

// Reset abandons the attempt, e.g. when the prompt is dismissed.
func (f *Flow) Reset() {
	f.fileID = 0
	f.state = StateIdle
	f.message = ""
}
