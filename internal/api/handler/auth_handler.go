package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"

	"studio_cms/internal/api/middleware"
	"studio_cms/internal/app/service"
	"studio_cms/internal/common"
	"studio_cms/internal/common/security"
	"studio_cms/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/status", h.status)
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.authService.Login(r.Context(), req, clientIP(r))
	if err != nil {
		status := common.HTTPStatusFromError(err)
		if status == http.StatusInternalServerError {
			log.Printf("ERROR: login failed: %v", err)
			common.RespondWithError(w, status, "An error occurred during login")
			return
		}
		common.RespondWithError(w, status, err.Error())
		return
	}

	setAuthCookie(w, r, result.Token)
	common.RespondWithJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User: userPayload{
			ID:    result.User.ID,
			Email: result.User.Email,
			Role:  result.User.Role,
		},
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	// Stateless tokens: logout is just dropping the cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     security.AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   -1,
	})
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) status(w http.ResponseWriter, r *http.Request) {
	claims, err := h.authService.Status(r.Context(), middleware.TokenFromRequest(r))
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			common.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user": userPayload{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		},
	})
}

func setAuthCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     security.AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(config.AppConfig.SessionTTL.Seconds()),
	})
}

func clientIP(r *http.Request) string {
	// RealIP middleware has already rewritten RemoteAddr when the
	// request came through a proxy.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
