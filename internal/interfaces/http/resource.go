package http

import (
	"context"
	"log"
	"net/http"

	"ledgerly/internal/domain/resource"
)

// ResourceService is the owner-scoped CRUD surface served by ResourceHandler.
// *resource.Service satisfies it, as do services that embed one.
type ResourceService[R any, C resource.CreateParams, U resource.UpdateParams] interface {
	List(ctx context.Context, userID int64) ([]*R, error)
	Get(ctx context.Context, userID, id int64) (*R, error)
	Create(ctx context.Context, userID int64, params C) (int64, error)
	Update(ctx context.Context, userID, id int64, params U) error
	Delete(ctx context.Context, userID, id int64) error
}

// Labels holds the user-facing wording for one resource.
type Labels struct {
	// Entity prefixes success messages, e.g. "Budgeting entry" created successfully.
	Entity string
	// Plural names the collection in log lines.
	Plural string
	// NotFound is returned by GET /{id}.
	NotFound string
	// NotOwned is returned by PUT and DELETE when no owned row matched.
	NotOwned string
}

type ResourceHandler[R any, C resource.CreateParams, U resource.UpdateParams] struct {
	svc    ResourceService[R, C, U]
	labels Labels
}

func NewResourceHandler[R any, C resource.CreateParams, U resource.UpdateParams](svc ResourceService[R, C, U], labels Labels) *ResourceHandler[R, C, U] {
	return &ResourceHandler[R, C, U]{svc: svc, labels: labels}
}

// HandleCollection serves GET and POST on the collection path.
func (h *ResourceHandler[R, C, U]) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// HandleByID serves GET, PUT and DELETE on /{id}.
func (h *ResourceHandler[R, C, U]) HandleByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		methodNotAllowed(w, "GET, PUT, DELETE")
	}
}

func (h *ResourceHandler[R, C, U]) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	records, err := h.svc.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing %s for user %d: %v", h.labels.Plural, userID, err)
		writeServiceError(w, err, h.labels.NotFound)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *ResourceHandler[R, C, U]) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, h.labels.NotFound)
		return
	}

	record, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		logUnexpected(err, "Error getting %s %d for user %d: %v", h.labels.Plural, id, userID)
		writeServiceError(w, err, h.labels.NotFound)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *ResourceHandler[R, C, U]) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var params C
	if err := decodeJSON(w, r, &params); err != nil {
		log.Printf("Error decoding create %s request: %v", h.labels.Plural, err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.svc.Create(r.Context(), userID, params)
	if err != nil {
		logUnexpected(err, "Error creating %s for user %d: %v", h.labels.Plural, userID)
		writeServiceError(w, err, h.labels.NotFound)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{
		Message: h.labels.Entity + " created successfully",
		ID:      id,
	})
}

func (h *ResourceHandler[R, C, U]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, h.labels.NotOwned)
		return
	}

	var params U
	if err := decodeJSON(w, r, &params); err != nil {
		log.Printf("Error decoding update %s request: %v", h.labels.Plural, err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.Update(r.Context(), userID, id, params); err != nil {
		logUnexpected(err, "Error updating %s %d for user %d: %v", h.labels.Plural, id, userID)
		writeServiceError(w, err, h.labels.NotOwned)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: h.labels.Entity + " updated successfully"})
}

func (h *ResourceHandler[R, C, U]) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, h.labels.NotOwned)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		logUnexpected(err, "Error deleting %s %d for user %d: %v", h.labels.Plural, id, userID)
		writeServiceError(w, err, h.labels.NotOwned)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: h.labels.Entity + " deleted successfully"})
}
