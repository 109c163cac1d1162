package handlers

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"brandpress/internal/middleware"
	"brandpress/internal/render"
	"brandpress/internal/session"
)

// hashPassword bcrypt-hashes the shared admin password at startup.
func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// LoginPage renders the login form. With SKIP_PASSWORD set (local dev),
// it creates a session immediately and goes straight to the home page.
func (a *App) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if a.cfg.SkipPassword {
		if _, err := a.sessions.Create(r.Context(), w, &session.Data{Authenticated: true}); err != nil {
			slog.Error("session create failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Log in",
		Data:  map[string]any{"Error": r.URL.Query().Get("error") != ""},
	})
}

// LoginSubmit checks the shared password and opens a session.
func (a *App) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		http.Redirect(w, r, "/login?error=1", http.StatusSeeOther)
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{Authenticated: true}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and returns to the login page.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
