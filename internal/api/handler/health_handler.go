package handler

import (
	"database/sql"
	"net/http"
	"time"

	"studio_cms/internal/common"
)

// Health reports whether the database behind the API is reachable.
func Health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			common.RespondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"connected": false,
				"status":    "error",
				"message":   "database not initialized",
			})
			return
		}
		if err := db.PingContext(r.Context()); err != nil {
			common.RespondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"connected": false,
				"status":    "error",
				"message":   err.Error(),
			})
			return
		}
		common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"connected": true,
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
