package domain

import "strings"

// Profile is the employee identity record served by the HR service. All
// fields are optional: a Profile starts empty at process start and is only
// populated by a successful login or profile fetch.
type Profile struct {
	// RecordID is the HR-service-issued record id. It is empty until the
	// first QR profile fetch and is the id embedded in the badge URL.
	RecordID    string `json:"id,omitempty"`
	UserID      string `json:"userId,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	Department  string `json:"department,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// IsEmpty reports whether no field of the profile has been populated.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// FormatPhone renders a phone number as space-separated groups of four
// digits then threes, e.g. "0901234567" -> "0901 234 567". Non-digit
// characters are stripped first.
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()
	if cleaned == "" {
		return ""
	}

	var parts []string
	if len(cleaned) > 3 {
		parts = append(parts, cleaned[:4])
		for i := 4; i < len(cleaned); i += 3 {
			end := min(i+3, len(cleaned))
			parts = append(parts, cleaned[i:end])
		}
	} else {
		parts = append(parts, cleaned)
	}
	return strings.Join(parts, " ")
}
