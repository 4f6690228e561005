package main

import (
	"net/http"

	"github.com/petrikoro/liftlog/internal/errors"
	"github.com/petrikoro/liftlog/internal/users"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) registerPOST(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	user, err := app.userService.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, users.ErrUsernameTaken):
		app.clientError(w, r, http.StatusConflict, "username already taken")
		return
	case errors.Is(err, users.ErrInvalidUsername), errors.Is(err, users.ErrWeakPassword):
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		app.serverError(w, r, err)
		return
	}

	app.startSession(w, r, user)
}

func (app *application) loginPOST(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	user, err := app.userService.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		app.clientError(w, r, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.startSession(w, r, user)
}

func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// startSession rotates the session token before binding it to the user.
func (app *application) startSession(w http.ResponseWriter, r *http.Request, user users.User) {
	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyUserID, user.ID)

	app.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "user": user})
}
