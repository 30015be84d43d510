package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/sbilibin2017/gw-login-console/internal/logger"
	"github.com/sbilibin2017/gw-login-console/internal/services"
)

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
{{if .Error}}
<form method="post" action="/login/clean-errors">
  <p role="alert">{{.Error}}</p>
  <button type="submit">Dismiss</button>
</form>
{{end}}
<form method="post" action="/login">
  <label>Email <input type="email" name="email" value="{{.Email}}"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Sign in</button>
</form>
</body>
</html>
`))

var sessionPage = template.Must(template.New("session").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Signed in</title></head>
<body>
<h1>Signed in</h1>
<p>User: {{.UserID}}</p>
<form method="post" action="/logout"><button type="submit">Sign out</button></form>
</body>
</html>
`))

type loginPageData struct {
	Email string
	Error string
}

// LoginPage renders the login form with the currently displayed error.
func LoginPage(view LoginViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, http.StatusOK, loginPage, loginPageData{Error: view.Error()})
	}
}

// LoginForm handles submission of the login form.
// On success the browser is sent to the session page; otherwise the form is
// rendered again with the error.
func LoginForm(view LoginViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		email := r.PostForm.Get("email")

		_, err := view.Login(r.Context(), email, r.PostForm.Get("password")).Await(r.Context())
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			renderPage(w, http.StatusOK, loginPage, loginPageData{Email: email, Error: services.DisplayMessage(err)})
			return
		}

		http.Redirect(w, r, "/session", http.StatusSeeOther)
	}
}

// CleanErrorsForm clears the displayed error and returns to the login form.
func CleanErrorsForm(view LoginViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.CleanErrors()
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// SessionPage renders the stored session.
func SessionPage(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessions.Session(r.Context())
		if err != nil {
			if !errors.Is(err, services.ErrNoSession) {
				logger.Log.Errorw("failed to read session", "error", err)
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		renderPage(w, http.StatusOK, sessionPage, session)
	}
}

// LogoutForm removes the stored session and returns to the login form.
func LogoutForm(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Logout(r.Context()); err != nil {
			logger.Log.Errorw("failed to log out", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func renderPage(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		logger.Log.Errorw("failed to render page", "page", tmpl.Name(), "error", err)
	}
}
