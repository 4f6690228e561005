package main

import (
	"net/http"

	"github.com/petrikoro/liftlog/internal/contexthelpers"
)

func (app *application) insightPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	var req workoutRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Workout == "" {
		app.clientError(w, r, http.StatusBadRequest, "workout text required")
		return
	}

	insight, achievements, err := app.workoutService.Insight(r.Context(), userID, req.Workout)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{
		"success":      true,
		"insight":      insight,
		"achievements": achievements,
	})
}

func (app *application) recoveryGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	report, err := app.workoutService.Recovery(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "recovery": report})
}
