package main

import (
	"net/http"

	"aims/internal/sheetdb"
)

// handleListUsers exposes usernames, emails and roles to admins. Password
// hashes stay in the sheet.
func handleListUsers(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	rows := store.GetAll(sheetdb.SheetUsers)
	users := make([]UserInfo, 0, len(rows))
	for _, row := range rows {
		users = append(users, UserInfo{
			Username: row["Username"],
			Email:    row["Email"],
			Role:     row["Role"],
		})
	}
	jsonRespMeta(w, users, len(users))
}
