package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/idbadge/internal/hrmock/service"
	"github.com/aussiebroadwan/idbadge/pkg/httpx"
	"github.com/aussiebroadwan/idbadge/pkg/identity"
)

type qrCodeRequest struct {
	UserID string `json:"userId"`
}

type qrCodeResponse struct {
	Data identity.Profile `json:"data"`
}

// QrCodeHandler returns the profile used for the QR badge, including the
// directory record id. Requires a valid bearer token.
type QrCodeHandler struct {
	AuthService *service.AuthService
	Logger      *slog.Logger
}

func (h *QrCodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if _, err := h.AuthService.VerifyToken(token); err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
		return
	}

	var req qrCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "userId is required")
		return
	}

	emp, err := h.AuthService.QrProfile(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "employee not found")
			return
		}
		h.Logger.ErrorContext(r.Context(), "qr profile lookup failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, qrCodeResponse{Data: wireProfile(emp, true)})
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, prefix))
	return token, token != ""
}
