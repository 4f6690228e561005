package main

import "net/http"

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authenticate(app.logAndTraceRequest(secureHeaders(next))))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
	)

	mux.Handle("POST /api/register", session(http.HandlerFunc(app.registerPOST)))
	mux.Handle("POST /api/login", session(http.HandlerFunc(app.loginPOST)))
	mux.Handle("POST /api/logout", session(http.HandlerFunc(app.logoutPOST)))

	mux.Handle("GET /api/workouts", mustSession(http.HandlerFunc(app.workoutsGET)))
	mux.Handle("POST /api/workouts", mustSession(http.HandlerFunc(app.workoutLogPOST)))
	mux.Handle("PUT /api/workouts/{id}", mustSession(http.HandlerFunc(app.workoutUpdatePUT)))
	mux.Handle("DELETE /api/workouts/{id}", mustSession(http.HandlerFunc(app.workoutDELETE)))
	mux.Handle("POST /api/workouts/import", mustSession(http.HandlerFunc(app.workoutImportPOST)))
	mux.Handle("GET /api/last-workout", mustSession(http.HandlerFunc(app.lastWorkoutGET)))

	mux.Handle("POST /api/workout-insight", mustSession(http.HandlerFunc(app.insightPOST)))
	mux.Handle("GET /api/recovery", mustSession(http.HandlerFunc(app.recoveryGET)))
	mux.Handle("POST /api/progression/suggestions", mustSession(http.HandlerFunc(app.suggestionsPOST)))
	mux.Handle("POST /api/progression/apply", mustSession(http.HandlerFunc(app.applyProgressionPOST)))

	mux.Handle("POST /api/search", mustSession(http.HandlerFunc(app.searchPOST)))
	mux.Handle("POST /api/theme", mustSession(http.HandlerFunc(app.themePOST)))
	mux.Handle("PUT /api/theme", mustSession(http.HandlerFunc(app.themePUT)))

	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))

	return mux
}
