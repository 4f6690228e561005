package main

import (
	"net/http"

	"github.com/petrikoro/liftlog/internal/contexthelpers"
)

type searchRequest struct {
	Query string `json:"query"`
}

func (app *application) searchPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	var req searchRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	positions, err := app.workoutService.Search(r.Context(), userID, req.Query)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if positions == nil {
		positions = []int{}
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "workout_indices": positions})
}
