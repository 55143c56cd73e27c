package biometric

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStub(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode      string
		available bool
		enrolled  bool
		verified  bool
	}{
		{mode: "", available: true, enrolled: true, verified: true},
		{mode: ModeApprove, available: true, enrolled: true, verified: true},
		{mode: ModeDeny, available: true, enrolled: true, verified: false},
		{mode: ModeUnenrolled, available: true, enrolled: false, verified: false},
		{mode: ModeUnavailable, available: false, enrolled: false, verified: false},
	}

	ctx := context.Background()
	for _, tt := range tests {
		name := tt.mode
		if name == "" {
			name = "default"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := NewStub(tt.mode)
			require.NoError(t, err)

			available, err := s.Available(ctx)
			require.NoError(t, err)
			require.Equal(t, tt.available, available)

			enrolled, err := s.Enrolled(ctx)
			require.NoError(t, err)
			require.Equal(t, tt.enrolled, enrolled)

			verified, err := s.Prompt(ctx, "verify")
			require.NoError(t, err)
			require.Equal(t, tt.verified, verified)
		})
	}
}

func TestNewStub_UnknownMode(t *testing.T) {
	t.Parallel()

	_, err := NewStub("sometimes")
	require.Error(t, err)
}
