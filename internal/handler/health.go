package handler

import (
	"net/http"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// Health reports liveness and the number of live sessions.
func Health(sessions func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok"}
		if sessions != nil {
			resp.Sessions = sessions()
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
