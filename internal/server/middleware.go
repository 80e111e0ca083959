package server

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/alnah/go-md2tex/internal/jobs"
)

// allowCORS lets browser frontends on any origin call the API.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			h.Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// artifactServer serves files from the job directories in store. Paths must
// be "<job id>/<file>"; directory listings are not served.
func artifactServer(store *jobs.Store) http.Handler {
	files := http.FileServer(http.Dir(store.Root()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, name, ok := strings.Cut(r.URL.Path, "/")
		if !ok || name == "" || strings.Contains(name, "/") {
			http.NotFound(w, r)
			return
		}
		if _, err := store.Lookup(id); err != nil {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// checkToken compares a presented token with its bcrypt hash.
func checkToken(hash []byte, token string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(token)) == nil
}

// HashToken returns the bcrypt hash to store in server.tokenHash.
func HashToken(token string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
