package main

import (
	"net/http"

	"github.com/petrikoro/liftlog/internal/contexthelpers"
)

type themeRequest struct {
	WorkoutDate string `json:"workout_date"`
	WorkoutText string `json:"workout_text"`
	Theme       string `json:"theme,omitempty"`
}

func (app *application) themePOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	var req themeRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.WorkoutText == "" {
		app.clientError(w, r, http.StatusBadRequest, "workout text required")
		return
	}

	theme, cached, err := app.workoutService.Theme(r.Context(), userID, req.WorkoutDate, req.WorkoutText)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "theme": theme, "cached": cached})
}

func (app *application) themePUT(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	var req themeRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.WorkoutText == "" || req.Theme == "" {
		app.clientError(w, r, http.StatusBadRequest, "workout text and theme required")
		return
	}

	if err := app.workoutService.SetTheme(r.Context(), userID, req.WorkoutDate, req.WorkoutText, req.Theme); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "theme": req.Theme})
}
