package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"jobboard/internal/auth"
	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/postings"
)

const maxBodyBytes = 1 << 20

type ctxKey struct{}

type Handler struct {
	sessions *auth.Manager
	postings *postings.Service
	log      logging.Logger
}

func New(sessions *auth.Manager, board *postings.Service, log logging.Logger) *Handler {
	return &Handler{sessions: sessions, postings: board, log: log}
}

// Routes wires the API onto a chi router.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.log))
	r.Use(WithRecover(h.log))
	r.Use(CORS(allowedOrigins))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/health", http.StatusFound)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/ofertas", h.ListPostings)
		r.Post("/ofertas", h.RequireAuth(h.CreatePosting))
	})

	// listing alias kept for older frontends
	r.Get("/ofertas", h.ListPostings)

	return r
}

// RequireAuth resolves the Authorization header to a user and stores it in
// the request context, or answers 401.
func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := h.sessions.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
	}
}

// CurrentUser returns the user placed in ctx by RequireAuth.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*models.User)
	return u, ok
}

// -------- API

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Servidor funcionando ✅",
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token  string `json:"token"`
	Name   string `json:"name"`
	Nombre string `json:"nombre"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}
	s, err := h.sessions.Register(r.Context(), firstNonEmpty(req.Name, req.Nombre), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: s.Token, Name: s.Name, Nombre: s.Name})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	s, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: s.Token, Name: s.Name, Nombre: s.Name})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromHeader(r.Header.Get("Authorization"))
	if err := h.sessions.Logout(r.Context(), token); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Sesión cerrada correctamente ✅"})
}

func (h *Handler) ListPostings(w http.ResponseWriter, r *http.Request) {
	ps, err := h.postings.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]postingResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, newPostingResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// postingResponse carries every field under its English key and again under
// the Spanish key the browser frontend reads.
type postingResponse struct {
	models.Posting
	Titulo       string  `json:"titulo"`
	Empresa      string  `json:"empresa"`
	Contacto     string  `json:"contacto"`
	Salario      *string `json:"salario"`
	Descripcion  string  `json:"descripcion"`
	CreadoEn     string  `json:"creado_en"`
	PublicadoPor *int64  `json:"publicado_por"`
}

func newPostingResponse(p models.Posting) postingResponse {
	return postingResponse{
		Posting:      p,
		Titulo:       p.Title,
		Empresa:      p.Company,
		Contacto:     p.Contact,
		Salario:      p.Salary,
		Descripcion:  p.Description,
		CreadoEn:     p.CreatedAt.UTC().Format(time.RFC3339),
		PublicadoPor: p.PublishedBy,
	}
}

type postingRequest struct {
	Title       string  `json:"title"`
	Titulo      string  `json:"titulo"`
	Company     string  `json:"company"`
	Empresa     string  `json:"empresa"`
	Contact     string  `json:"contact"`
	Contacto    string  `json:"contacto"`
	Salary      *string `json:"salary"`
	Salario     *string `json:"salario"`
	Description *string `json:"description"`
	Descripcion *string `json:"descripcion"`
}

func (h *Handler) CreatePosting(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	var req postingRequest
	if !h.decode(w, r, &req) {
		return
	}
	in := postings.Input{
		Title:       firstNonEmpty(req.Title, req.Titulo),
		Company:     firstNonEmpty(req.Company, req.Empresa),
		Contact:     firstNonEmpty(req.Contact, req.Contacto),
		Salary:      firstNonNil(req.Salary, req.Salario),
		Description: firstNonNil(req.Description, req.Descripcion),
	}
	if _, err := h.postings.Create(r.Context(), in, u); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageBody{Message: "Oferta creada correctamente ✅"})
}

// -------- helpers

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// decode reads a JSON body into v. An empty body leaves v zero so the
// service reports the missing fields.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
	return false
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, models.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	default:
		h.log.Error(r.Context(), "request failed",
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonNil(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
