package main

import (
	"net/http"

	"github.com/petrikoro/liftlog/internal/contexthelpers"
)

func (app *application) suggestionsPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	var req workoutRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Workout == "" {
		app.clientError(w, r, http.StatusBadRequest, "workout text required")
		return
	}

	suggestions, err := app.workoutService.Suggestions(r.Context(), userID, req.Workout)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "suggestions": suggestions})
}

func (app *application) applyProgressionPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	var req workoutRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Workout == "" {
		app.clientError(w, r, http.StatusBadRequest, "workout text required")
		return
	}

	improved, err := app.workoutService.ApplyProgression(r.Context(), userID, req.Workout)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "could not parse workout")
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "workout": improved})
}
