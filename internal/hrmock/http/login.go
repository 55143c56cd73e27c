package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/idbadge/internal/hrmock/domain"
	"github.com/aussiebroadwan/idbadge/internal/hrmock/service"
	"github.com/aussiebroadwan/idbadge/pkg/httpx"
	"github.com/aussiebroadwan/idbadge/pkg/identity"
)

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// LoginHandler authenticates an employee and returns a bearer token plus
// the directory profile.
type LoginHandler struct {
	AuthService *service.AuthService
	Logger      *slog.Logger
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "userId and password are required")
		return
	}

	token, emp, err := h.AuthService.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid employee id or password")
			return
		}
		h.Logger.ErrorContext(r.Context(), "login failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identity.LoginResult{
		Token: token,
		Data:  wireProfile(emp, false),
	})
}

// wireProfile maps a directory record to the wire shape. The record id is
// only exposed on the QR endpoint.
func wireProfile(emp domain.Employee, includeRecordID bool) identity.Profile {
	p := identity.Profile{
		UserID:      emp.UserID,
		FullName:    emp.FullName,
		Department:  emp.Department,
		Email:       emp.Email,
		PhoneNumber: emp.PhoneNumber,
	}
	if includeRecordID {
		p.RecordID = emp.ID
	}
	return p
}
