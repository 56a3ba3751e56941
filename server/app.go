package server

import "net/http"

// Handler function for GET /status.
// Reports liveness of the cache and the store.
func (s *Server) getStatus(w http.ResponseWriter, r *http.Request, _ []string) {
	writeResponse(w, StatusResponse{
		Redis: s.cache.IsAlive(),
		Db:    s.db.IsAlive(),
	}, http.StatusOK)
}

// Handler function for GET /stats.
// Reports user and file counts.
func (s *Server) getStats(w http.ResponseWriter, r *http.Request, _ []string) {
	users, err := s.db.CountUsers()
	if err != nil {
		s.l.SErr("getStats", "Internal error: %s", err.Error())
		serverError(w)
		return
	}

	files, err := s.db.CountFiles()
	if err != nil {
		s.l.SErr("getStats", "Internal error: %s", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, StatsResponse{Users: users, Files: files}, http.StatusOK)
}
