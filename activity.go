package main

import (
	"fmt"
	"time"

	"aims/internal/sheetdb"
	"aims/internal/websocket"
)

const timestampLayout = "2006-01-02 15:04:05"

// logActivity appends a row to the ActivityLogs sheet and fans the event out
// to websocket clients. Logging is best-effort; a failed write never blocks
// the action that triggered it.
func logActivity(user, action, entityType, entityID, description string, details ...string) {
	if store == nil {
		return
	}
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	now := time.Now().Format(timestampLayout)
	id := store.NextID(sheetdb.SheetActivityLogs)

	store.Insert(sheetdb.SheetActivityLogs, sheetdb.Row{
		"ID":          fmt.Sprint(id),
		"Date & Time": now,
		"Type":        "activity",
		"User":        user,
		"Action":      action,
		"Entity Type": entityType,
		"Entity ID":   entityID,
		"Description": description,
		"Details":     detail,
	})

	if hub != nil {
		hub.Broadcast(websocket.Event{
			Type:        "activity",
			User:        user,
			Action:      action,
			EntityType:  entityType,
			EntityID:    entityID,
			Description: description,
			Timestamp:   now,
		})
	}
}
