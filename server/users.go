package server

import (
	"encoding/json"
	"net/http"

	"github.com/noisersup/files-manager-api/auth"
	"github.com/noisersup/files-manager-api/database"
)

// Handler function for POST /users.
// Registers a new account; the password is stored bcrypt-hashed.
func (s *Server) postUsers(w http.ResponseWriter, r *http.Request, _ []string) {
	req := NewUserRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.l.SWarn("postUsers", "malformed body: %s", err.Error())
	}

	if req.Email == "" {
		errResponse(w, http.StatusBadRequest, "Missing email")
		return
	}
	if req.Password == "" {
		errResponse(w, http.StatusBadRequest, "Missing password")
		return
	}

	user, err := s.auth.Register(req.Email, req.Password)
	if err != nil {
		if err == database.UserExists {
			errResponse(w, http.StatusBadRequest, "Already exist")
			return
		}
		s.l.SErr("postUsers", "Internal error: %s", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, UserResponse{Id: user.Id.String(), Email: user.Email}, http.StatusCreated)
}

// Handler function for GET /connect.
// Exchanges Basic credentials for a session token held in the cache.
func (s *Server) getConnect(w http.ResponseWriter, r *http.Request, _ []string) {
	email, password, ok := r.BasicAuth()
	if !ok {
		errResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := s.auth.Connect(email, password)
	if err != nil {
		if err == auth.Unauthorized {
			errResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		s.l.SErr("getConnect", "Internal error: %s", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, ConnectResponse{Token: token}, http.StatusOK)
}

// Handler function for GET /disconnect.
// Destroys the caller's session.
func (s *Server) getDisconnect(w http.ResponseWriter, r *http.Request, _ []string) {
	err := s.auth.Disconnect(r.Header.Get(auth.TokenHeader))
	if err != nil {
		if err == auth.Unauthorized {
			errResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		s.l.SErr("getDisconnect", "Internal error: %s", err.Error())
		serverError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Handler function for GET /users/me.
func (s *Server) getMe(w http.ResponseWriter, r *http.Request, _ []string) {
	user := s.authorize(w, r)
	if user == nil {
		return
	}

	writeResponse(w, UserResponse{Id: user.Id.String(), Email: user.Email}, http.StatusOK)
}
