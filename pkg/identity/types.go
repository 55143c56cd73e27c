package identity

// Profile is the employee record as the HR service serialises it. The
// record id ("id") is only populated by the QR profile endpoint.
type Profile struct {
	RecordID    string `json:"id,omitempty"`
	UserID      string `json:"userId,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	Department  string `json:"department,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// LoginResult is the successful response of POST /api/auth/login.
type LoginResult struct {
	// Token is the opaque bearer token for subsequent requests. Validity
	// is server-determined; the client tracks no expiry locally.
	Token string `json:"token"`

	// Data is the profile of the authenticated employee.
	Data Profile `json:"data"`
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type qrCodeRequest struct {
	UserID string `json:"userId"`
}

type qrCodeResponse struct {
	Data Profile `json:"data"`
}

// HealthResponse is returned by the service's liveness endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
