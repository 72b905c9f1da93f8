package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"ledgerly/internal/domain/resource"
	"ledgerly/internal/domain/user"
	"ledgerly/internal/shared/middleware"
)

type UserService interface {
	Register(ctx context.Context, params user.RegisterParams) (int64, error)
	Login(ctx context.Context, username, password string) (string, error)
	Get(ctx context.Context, id int64) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Update(ctx context.Context, id int64, params user.UpdateParams) error
	Delete(ctx context.Context, id int64) error
}

// UserHandler serves /users. Registration and login are always public.
// When requireAuth is set, listing requires a token and the by-id routes
// only resolve the caller's own id.
type UserHandler struct {
	svc         UserService
	requireAuth bool
	authMW      func(http.Handler) http.Handler
}

func NewUserHandler(svc UserService, requireAuth bool, authMW func(http.Handler) http.Handler) *UserHandler {
	return &UserHandler{svc: svc, requireAuth: requireAuth, authMW: authMW}
}

// HandleUsers serves POST (register) and GET (list) on /users.
func (h *UserHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRegister(w, r)
	case http.MethodGet:
		h.guard(http.HandlerFunc(h.handleList)).ServeHTTP(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// HandleUserByID serves GET, PUT and DELETE on /users/{id}.
func (h *UserHandler) HandleUserByID(w http.ResponseWriter, r *http.Request) {
	var next http.HandlerFunc
	switch r.Method {
	case http.MethodGet:
		next = h.handleGet
	case http.MethodPut:
		next = h.handleUpdate
	case http.MethodDelete:
		next = h.handleDelete
	default:
		methodNotAllowed(w, "GET, PUT, DELETE")
		return
	}
	h.guard(next).ServeHTTP(w, r)
}

func (h *UserHandler) guard(next http.Handler) http.Handler {
	if !h.requireAuth || h.authMW == nil {
		return next
	}
	return h.authMW(next)
}

// targetID resolves the {id} path value, applying caller scoping when enabled.
func (h *UserHandler) targetID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return 0, false
	}
	if h.requireAuth {
		callerID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return 0, false
		}
		if callerID != id {
			writeError(w, http.StatusNotFound, "User not found")
			return 0, false
		}
	}
	return id, true
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		log.Printf("Error listing users: %v", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetID(w, r)
	if !ok {
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeUserError(w, err, "Error getting user %d: %v", id)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetID(w, r)
	if !ok {
		return
	}

	var params user.UpdateParams
	if err := decodeJSON(w, r, &params); err != nil {
		log.Printf("Error decoding user update request: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.Update(r.Context(), id, params); err != nil {
		h.writeUserError(w, err, "Error updating user %d: %v", id)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User updated successfully"})
}

func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeUserError(w, err, "Error deleting user %d: %v", id)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

func (h *UserHandler) writeUserError(w http.ResponseWriter, err error, format string, args ...any) {
	var ve *resource.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, user.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, user.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "Username already exists")
	default:
		log.Printf(format, append(args, err)...)
		writeError(w, http.StatusInternalServerError, "Database error")
	}
}
