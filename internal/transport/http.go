package transport

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fastwell/fastwell/internal/domain/circle"
	"github.com/fastwell/fastwell/internal/domain/user"
	"github.com/go-chi/chi/v5"
)

// Services bundles the domain services the HTTP surface exposes.
type Services struct {
	Users   *user.Service
	Circles *circle.Service
}

// Server wires HTTP handlers.
type Server struct {
	services Services
}

// NewServer creates the HTTP router. Auth and circle routes sit behind
// the bearer-token middleware; registration, login, and health do not.
func NewServer(services Services, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestLogging(logger))

	srv := &Server{services: services}

	r.Get("/health", srv.handleHealth)
	r.Post("/auth/register", srv.handleRegister)
	r.Post("/auth/login", srv.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(services.Users))

		r.Get("/me", srv.handleMe)

		r.Post("/circles", srv.handleCreateCircle)
		r.Get("/circles", srv.handleListCircles)
		r.Post("/circles/join", srv.handleJoinCircle)
		r.Get("/circles/{id}", srv.handleGetCircle)
		r.Delete("/circles/{id}", srv.handleDeleteCircle)
		r.Post("/circles/{id}/leave", srv.handleLeaveCircle)
		r.Post("/circles/{id}/messages", srv.handlePostMessage)
		r.Get("/circles/{id}/messages", srv.handleListMessages)
		r.Get("/circles/{id}/messages/search", srv.handleSearchMessages)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.services.Users.Register(r.Context(), user.RegisterRequest{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, u, err := s.services.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	u, err := s.services.Users.Get(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type createCircleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleCreateCircle(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req createCircleRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.services.Circles.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleListCircles(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	circles, err := s.services.Circles.ListForUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circles)
}

func (s *Server) handleGetCircle(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	c, err := s.services.Circles.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCircle(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	if err := s.services.Circles.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type joinCircleRequest struct {
	InviteCode string `json:"invite_code"`
}

func (s *Server) handleJoinCircle(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req joinCircleRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.services.Circles.Join(r.Context(), userID, req.InviteCode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleLeaveCircle(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	if err := s.services.Circles.Leave(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type postMessageRequest struct {
	Body string `json:"body"`
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req postMessageRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := s.services.Circles.PostMessage(r.Context(), userID, chi.URLParam(r, "id"), req.Body)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var since int64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be unix milliseconds")
			return
		}
		since = parsed
	}

	messages, err := s.services.Circles.MessagesSince(r.Context(), userID, chi.URLParam(r, "id"), since)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleSearchMessages(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	messages, err := s.services.Circles.SearchMessages(r.Context(), userID, chi.URLParam(r, "id"), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
