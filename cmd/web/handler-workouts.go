package main

import (
	"net/http"

	"github.com/petrikoro/liftlog/internal/contexthelpers"
	"github.com/petrikoro/liftlog/internal/errors"
	"github.com/petrikoro/liftlog/internal/workout"
)

func (app *application) workoutsGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	views, err := app.workoutService.Workouts(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "workouts": views})
}

type workoutRequest struct {
	Workout string `json:"workout"`
}

func (app *application) workoutLogPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	var req workoutRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Workout == "" {
		app.clientError(w, r, http.StatusBadRequest, "workout text required")
		return
	}

	entry, err := app.workoutService.Log(r.Context(), userID, req.Workout)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "workout": entry})
}

func (app *application) workoutUpdatePUT(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	id, ok := app.idParam(w, r)
	if !ok {
		return
	}
	var req workoutRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Workout == "" {
		app.clientError(w, r, http.StatusBadRequest, "workout text required")
		return
	}

	entry, err := app.workoutService.Update(r.Context(), userID, id, req.Workout)
	if errors.Is(err, workout.ErrNotFound) {
		app.clientError(w, r, http.StatusNotFound, "workout not found")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "workout": entry})
}

func (app *application) workoutDELETE(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	id, ok := app.idParam(w, r)
	if !ok {
		return
	}

	err := app.workoutService.Delete(r.Context(), userID, id)
	if errors.Is(err, workout.ErrNotFound) {
		app.clientError(w, r, http.StatusNotFound, "workout not found")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

type importRequest struct {
	Content string `json:"content"`
}

func (app *application) workoutImportPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	var req importRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	count, err := app.workoutService.Import(r.Context(), userID, req.Content)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "imported": count})
}

func (app *application) lastWorkoutGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	text, err := app.workoutService.LastWorkout(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "workout": text})
}
