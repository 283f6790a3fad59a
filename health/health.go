// Package health serves the bot's liveness, version and journal endpoints.
package health

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gobridge/rolebot/journal"
)

// Checker returns an error while the bot is not usable.
type Checker func() error

// NewRouter returns the HTTP routes. store may be nil.
func NewRouter(version string, check Checker, store journal.Store) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := check(); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(version))
	}).Methods(http.MethodGet)

	r.HandleFunc("/guilds/{guild:[0-9]+}/boards", func(w http.ResponseWriter, req *http.Request) {
		if store == nil {
			http.Error(w, "journal disabled", http.StatusNotFound)
			return
		}

		limit := 0
		if l := req.URL.Query().Get("limit"); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		entries, err := store.List(req.Context(), mux.Vars(req)["guild"], limit)
		if err != nil {
			http.Error(w, "reading journal", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []journal.Entry{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}).Methods(http.MethodGet)

	return r
}
