package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/hospcare-be/internal/http/respond"
	"github.com/hongminglow/hospcare-be/internal/models/dto"
	"github.com/hongminglow/hospcare-be/internal/service"
	"github.com/hongminglow/hospcare-be/internal/upload"
)

// ProfilePicField is the multipart field carrying the optional image.
const ProfilePicField = "profilePic"

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// AuthHandler owns the signup, login and session validation endpoints.
type AuthHandler struct {
	registrar *service.Registrar
	authn     *service.Authenticator
	sessions  *service.SessionValidator
	maxUpload int64
	logger    *slog.Logger
}

// NewAuthHandler constructs the handler. maxUpload bounds the size of a signup body.
func NewAuthHandler(registrar *service.Registrar, authn *service.Authenticator, sessions *service.SessionValidator, maxUpload int64, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthHandler{registrar: registrar, authn: authn, sessions: sessions, maxUpload: maxUpload, logger: logger}
}

// MountRoutes attaches auth routes; the caller mounts them under /api/auth.
func (h *AuthHandler) MountRoutes(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
	r.Post("/user", h.handleValidate)
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	in, cleanup, err := h.readSignup(w, r)
	defer cleanup()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		respond.Error(w, http.StatusBadRequest, "invalid signup payload")
		return
	}

	res, err := h.registrar.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, service.MsgSignupError)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    res.User,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	res, err := h.authn.Login(r.Context(), req.Email, req.Password, req.Category)
	if err != nil {
		h.writeError(w, r, err, service.MsgLoginError)
		return
	}
	respond.JSON(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User,
	})
}

func (h *AuthHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	claims, err := h.sessions.Validate(req.Token)
	if err != nil {
		h.writeError(w, r, err, service.MsgNotLoggedIn)
		return
	}
	respond.JSON(w, http.StatusOK, dto.ValidateResponse{Message: "Valid user", User: claims})
}

// readSignup decodes either a multipart form (with optional image) or a JSON
// body. The returned cleanup releases multipart temp files.
func (h *AuthHandler) readSignup(w http.ResponseWriter, r *http.Request) (service.SignupInput, func(), error) {
	noop := func() {}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartMemory)

	if mediaType != "multipart/form-data" {
		var req dto.SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return service.SignupInput{}, noop, err
		}
		return signupFromJSON(req), noop, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return service.SignupInput{}, noop, err
	}
	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	form := r.MultipartForm.Value
	in := service.SignupInput{
		Category:       first(form, "category"),
		FirstName:      first(form, "firstName"),
		LastName:       first(form, "lastName"),
		Email:          first(form, "email"),
		Mobile:         first(form, "mobile"),
		DOB:            first(form, "dob"),
		Address:        first(form, "address"),
		Password:       first(form, "password"),
		Specialization: first(form, "specialization"),
		Organization:   first(form, "organization"),
		Organizations:  organizationsFromForm(form),
	}

	files := r.MultipartForm.File[ProfilePicField]
	if len(files) > 0 {
		header := files[0]
		if header.Size > h.maxUpload {
			return service.SignupInput{}, cleanup, &http.MaxBytesError{Limit: h.maxUpload}
		}
		f, err := header.Open()
		if err != nil {
			return service.SignupInput{}, cleanup, err
		}
		in.Picture = &upload.File{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        f,
		}
		return in, func() { f.Close(); cleanup() }, nil
	}
	return in, cleanup, nil
}

func signupFromJSON(req dto.SignupRequest) service.SignupInput {
	return service.SignupInput{
		Category:       req.Category,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Mobile:         req.Mobile,
		DOB:            req.DOB,
		Address:        req.Address,
		Password:       req.Password,
		Specialization: req.Specialization,
		Organization:   req.Organization,
		Organizations:  req.Organizations,
	}
}

func first(form map[string][]string, key string) string {
	if values := form[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// organizationsFromForm accepts repeated "organizations" fields,
// "organizations[]" fields, or a single JSON array string.
func organizationsFromForm(form map[string][]string) []string {
	values := append(append([]string{}, form["organizations"]...), form["organizations[]"]...)
	if len(values) == 1 {
		raw := strings.TrimSpace(values[0])
		if strings.HasPrefix(raw, "[") {
			var parsed []string
			if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
				return parsed
			}
		}
	}
	return values
}
