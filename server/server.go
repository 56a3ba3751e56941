package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"

	"github.com/noisersup/files-manager-api/auth"
	"github.com/noisersup/files-manager-api/logger"
	"github.com/noisersup/files-manager-api/models"
	"github.com/noisersup/files-manager-api/storage"
)

const itemsPerPage = 20

// Server is a structure responsible for handling all http requests.
type Server struct {
	maxUpload int64 //TODO: enforce a request body limit on uploads
	l         *logger.Logger
	auth      *auth.Auth
	cache     models.Cache
	db        models.Database
	store     *storage.Storage
	queue     models.Queue
}

func NewServer(l *logger.Logger, c models.Cache, db models.Database, store *storage.Storage, q models.Queue) *Server {
	return &Server{
		maxUpload: 1024 << 20,
		l:         l,
		auth:      auth.InitAuth(c, db),
		cache:     c,
		db:        db,
		store:     store,
		queue:     q,
	}
}

// Handler builds the routing table and returns the root handler.
func (s *Server) Handler() http.Handler {
	handlers := []struct {
		regex   *regexp.Regexp
		methods []string
		handle  func(w http.ResponseWriter, r *http.Request, paths []string) // paths are regex matches (here they capture the file id)
	}{
		{regexp.MustCompile(`^/status$`), []string{"GET"}, s.getStatus},
		{regexp.MustCompile(`^/stats$`), []string{"GET"}, s.getStats},
		{regexp.MustCompile(`^/connect$`), []string{"GET"}, s.getConnect},
		{regexp.MustCompile(`^/disconnect$`), []string{"GET"}, s.getDisconnect},
		{regexp.MustCompile(`^/users$`), []string{"POST"}, s.postUsers},
		{regexp.MustCompile(`^/users/me$`), []string{"GET"}, s.getMe},
		{regexp.MustCompile(`^/files$`), []string{"POST"}, s.postUpload},
		{regexp.MustCompile(`^/files$`), []string{"GET"}, s.getIndex},
		{regexp.MustCompile(`^/files/([^/]+)$`), []string{"GET"}, s.getShow},
		{regexp.MustCompile(`^/files/([^/]+)/publish$`), []string{"PUT"}, s.putPublish},
		{regexp.MustCompile(`^/files/([^/]+)/unpublish$`), []string{"PUT"}, s.putUnpublish},
	}

	hanFunc := func(w http.ResponseWriter, r *http.Request) {
		for _, handler := range handlers {
			match := handler.regex.FindStringSubmatch(r.URL.Path)
			if match == nil {
				continue
			}
			for _, allowed := range handler.methods {
				if r.Method == allowed {
					handler.handle(w, r, match[1:])
					return
				}
			}
		}
		s.l.SWarn("hanFunc", "Cannot handle request: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	}

	return http.HandlerFunc(hanFunc)
}

func (s *Server) Listen(port int) error {
	s.l.Log("Waiting for connection on port: :%d...", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.Handler())
}

// authorize resolves the session token of the request, writing the
// uniform 401 body on failure. Returns nil if the caller could not
// be authenticated (response already written).
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) *models.User {
	user, err := s.auth.Authenticate(r)
	if err != nil {
		if err == auth.Unauthorized {
			errResponse(w, http.StatusUnauthorized, "Unauthorized")
		} else {
			s.l.SErr("authorize", "Internal error: %s", err.Error())
			serverError(w)
		}
		return nil
	}
	return user
}

func writeResponse(w http.ResponseWriter, response interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("JSON encoding error: %s", err)
	}
}

func serverError(w http.ResponseWriter) {
	errResponse(w, http.StatusInternalServerError, "Server error")
}

func errResponse(w http.ResponseWriter, status int, msg string) {
	writeResponse(w, ErrResponse{Error: msg}, status)
}
