// Package biometric abstracts the device biometric authenticator.
package biometric

import "context"

// Authenticator answers the hardware and enrolment checks that gate
// biometric auto-login, and prompts the holder for verification.
type Authenticator interface {
	// Available reports whether the device has biometric hardware.
	Available(ctx context.Context) (bool, error)

	// Enrolled reports whether the holder has biometrics enrolled on
	// the device. Only meaningful when Available returns true.
	Enrolled(ctx context.Context) (bool, error)

	// Prompt shows the system biometric prompt with the given message
	// and reports whether the holder passed verification. A false
	// result covers both failure and cancellation.
	Prompt(ctx context.Context, message string) (bool, error)
}
