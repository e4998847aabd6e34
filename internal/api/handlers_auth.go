package api

import (
	"net/http"

	"github.com/stockfolio/stockfolio/internal/logging"
	"github.com/stockfolio/stockfolio/internal/service"
	"github.com/stockfolio/stockfolio/internal/types"
)

// handleRegister handles POST /api/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := parseJSONBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, types.CodeInvalidInput, "Invalid request body", nil)
		return
	}

	user, err := s.accountService.Register(r.Context(), &input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// A new account is logged in immediately. If the session store is
	// unavailable the account still exists, so registration succeeds and the
	// client logs in separately.
	if token, err := s.sessions.Create(r.Context(), user.ID); err != nil {
		logging.GetGlobalLogger().WithError(err).Warn("failed to create session on registration")
	} else {
		s.setSessionCookie(w, token)
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "registration successful",
		"user_id": user.ID,
	})
}

// setSessionCookie delivers a session token as an HTTP-only cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.config.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// loginRequest is the body of POST /api/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin handles POST /api/login. A successful login issues a session
// token delivered as an HTTP-only cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, types.CodeInvalidInput, "Invalid request body", nil)
		return
	}

	user, err := s.accountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := s.sessions.Create(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.setSessionCookie(w, token)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "login successful",
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// handleLogout handles POST /api/logout. Logout succeeds even without a
// valid session so the client always ends in a logged-out state.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.config.SessionCookieName); err == nil {
		if err := s.sessions.Delete(r.Context(), cookie.Value); err != nil {
			logging.GetGlobalLogger().WithError(err).Warn("failed to delete session on logout")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
