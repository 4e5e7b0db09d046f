package main

import (
	"net/http"
	"sort"
	"strings"

	"aims/internal/sheetdb"
)

// collectLogs merges stored activity records with asset movements rendered
// as log entries, newest first.
func collectLogs() []LogEntry {
	var entries []LogEntry

	for _, row := range store.GetAll(sheetdb.SheetActivityLogs) {
		entries = append(entries, LogEntry{
			ID:          row["ID"],
			Timestamp:   row["Date & Time"],
			Type:        row["Type"],
			User:        row["User"],
			Action:      row["Action"],
			EntityType:  row["Entity Type"],
			EntityID:    row["Entity ID"],
			Description: row["Description"],
			Details:     row["Details"],
		})
	}

	for _, row := range store.GetAll(sheetdb.SheetAssetMovements) {
		entries = append(entries, LogEntry{
			ID:          "mv-" + row["ID"],
			Timestamp:   row["Movement Date"],
			Type:        "movement",
			User:        row["Moved By"],
			Action:      "move",
			EntityType:  "asset",
			EntityID:    row["Asset Code"],
			Description: "Moved from " + row["From Location"] + " to " + row["To Location"],
			Details:     row["Notes"],
		})
	}

	// Timestamps are ISO-ordered strings, so lexicographic sort works.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries
}

func filterLogs(entries []LogEntry, r *http.Request) []LogEntry {
	q := r.URL.Query()
	logType := q.Get("type")
	user := q.Get("user")
	dateFrom := q.Get("date_from")
	dateTo := q.Get("date_to")

	out := make([]LogEntry, 0, len(entries))
	for _, e := range entries {
		if logType != "" && e.Type != logType {
			continue
		}
		if user != "" && !strings.EqualFold(e.User, user) {
			continue
		}
		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}
		if dateFrom != "" && day < dateFrom {
			continue
		}
		if dateTo != "" && day > dateTo {
			continue
		}
		out = append(out, e)
	}
	return out
}

func handleListLogs(w http.ResponseWriter, r *http.Request) {
	entries := filterLogs(collectLogs(), r)
	jsonRespMeta(w, entries, len(entries))
}

func handleExportLogs(w http.ResponseWriter, r *http.Request) {
	entries := filterLogs(collectLogs(), r)

	headers := []string{"ID", "Date & Time", "Type", "User", "Action", "Entity Type", "Entity ID", "Description", "Details"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID, e.Timestamp, e.Type, e.User, e.Action,
			e.EntityType, e.EntityID, e.Description, e.Details,
		})
	}
	exportTabular(w, r, "activity_logs", "Activity Logs", headers, rows)
}
