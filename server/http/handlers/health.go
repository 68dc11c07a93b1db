package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

type Loaded interface {
	Loaded() bool
}

// Health: живость процесса; "data" показывает, загружены ли таблицы.
func Health(l Loaded) http.HandlerFunc {
	started := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"data":   l.Loaded(),
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	}
}
