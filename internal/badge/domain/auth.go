package domain

// AuthState is the (token, profile) pair the renderer observes. It has a
// single writer, the session lifecycle manager.
//
// Invariant: an empty Token implies an empty Profile, and a non-empty Token
// was always issued together with its Profile by the same authentication.
type AuthState struct {
	Token   string
	Profile Profile
}

// LoggedIn reports whether the state carries a session token.
func (s AuthState) LoggedIn() bool { return s.Token != "" }

// StoredCredential is the (userId, password) pair kept in the secure vault
// for biometric auto-login. It only exists in process memory for the
// duration of a biometric login attempt.
type StoredCredential struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}
