package http

import (
	"errors"
	"log"
	"net/http"

	"ledgerly/internal/domain/user"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *UserHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var params user.RegisterParams
	if err := decodeJSON(w, r, &params); err != nil {
		log.Printf("Error decoding register request: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.svc.Register(r.Context(), params)
	if err != nil {
		h.writeUserError(w, err, "Error registering user %q: %v", params.Username)
		return
	}

	log.Printf("User registered: id=%d", id)
	writeJSON(w, http.StatusCreated, createdResponse{Message: "User created successfully", ID: id})
}

// HandleLogin exchanges credentials for a bearer token.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Printf("Error decoding login request: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Printf("Error logging in: %v", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", Token: token})
}
