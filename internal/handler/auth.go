package handler

import (
	"context"
	"net/http"

	"github.com/pkordes/roamlog/backend/internal/auth"
	"github.com/pkordes/roamlog/backend/internal/domain"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /auth/signup.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	s.startSession(w, r, s.auth.Signup)
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	s.startSession(w, r, s.auth.Login)
}

// startSession is shared by signup and login: both read credentials, call the
// service and hand back the session cookie plus the public user.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, username, password string) (domain.Session, error),
) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if err := s.check(req); err != nil {
		s.fail(w, r, err, "")
		return
	}

	sess, err := fn(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}

	s.cookies.Set(w, sess.Token, sess.ExpiresAt)
	writeJSON(w, http.StatusOK, userToResponse(sess.User.ID, sess.User.Username))
}

// Logout handles POST /auth/logout. Sessions are stateless, so clearing the
// cookie is all there is to do; it never fails.
func (s *Server) Logout(w http.ResponseWriter, _ *http.Request) {
	s.cookies.Clear(w)
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

// Me handles GET /auth/me. It reports the current user or null and never
// fails, so the frontend can call it unconditionally on load.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	var resp MeResponse
	if id := s.auth.CurrentUser(auth.TokenFromRequest(r)); id != nil {
		u := userToResponse(id.UserID, id.Username)
		resp.User = &u
	}
	writeJSON(w, http.StatusOK, resp)
}
