package main

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "aims_session"

var sessionStore *sessions.CookieStore

func initSessions(secret string) {
	sessionStore = sessions.NewCookieStore([]byte(secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionUser returns the logged-in username and role, or ok=false.
func sessionUser(r *http.Request) (username, role string, ok bool) {
	sess, err := sessionStore.Get(r, sessionName)
	if err != nil {
		return "", "", false
	}
	username, _ = sess.Values["username"].(string)
	role, _ = sess.Values["role"].(string)
	return username, role, username != ""
}

func setSessionUser(w http.ResponseWriter, r *http.Request, username, role string) error {
	sess, _ := sessionStore.Get(r, sessionName)
	sess.Values["username"] = username
	sess.Values["role"] = role
	return sess.Save(r, w)
}

func clearSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionStore.Get(r, sessionName)
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}
