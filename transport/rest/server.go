package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/lobby"
)

// Start serves the operational HTTP surface: a liveness probe and a
// read-only view of the room registry. Game traffic never crosses this
// server.
func Start(port string, registry *lobby.Registry) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/rooms", roomsHandler(registry))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

type roomView struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func roomsHandler(registry *lobby.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		rooms := registry.List()

		views := make([]roomView, 0, len(rooms))
		for _, room := range rooms {
			status := "waiting"
			if room.Full {
				status = "full"
			}

			views = append(views, roomView{Name: room.Name, Status: status})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(views); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}
