package http

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

// HandleHealth reports liveness. It does not touch the database.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "GET, HEAD")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "Server is running"})
}

// HandleNotFound answers any unrouted path with a JSON 404.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}
