package biometric

import (
	"context"
	"fmt"
)

// Env modes for the stub authenticator.
const (
	ModeApprove     = "approve"
	ModeDeny        = "deny"
	ModeUnavailable = "unavailable"
	ModeUnenrolled  = "unenrolled"
)

// Stub is a fixed-outcome authenticator for development and the CLI,
// where no real biometric hardware is reachable. The mode decides how
// each gate answers.
type Stub struct {
	mode string
}

// NewStub returns a stub authenticator for the given mode. An empty
// mode defaults to approve.
func NewStub(mode string) (*Stub, error) {
	switch mode {
	case "":
		mode = ModeApprove
	case ModeApprove, ModeDeny, ModeUnavailable, ModeUnenrolled:
	default:
		return nil, fmt.Errorf("unknown biometric mode %q", mode)
	}
	return &Stub{mode: mode}, nil
}

func (s *Stub) Available(_ context.Context) (bool, error) {
	return s.mode != ModeUnavailable, nil
}

func (s *Stub) Enrolled(_ context.Context) (bool, error) {
	return s.mode != ModeUnavailable && s.mode != ModeUnenrolled, nil
}

func (s *Stub) Prompt(_ context.Context, _ string) (bool, error) {
	return s.mode == ModeApprove, nil
}
