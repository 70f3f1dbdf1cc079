package route

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Template returns the mux path template of the matched route, so metrics
// are labelled by /contracts/{id}/pay rather than by each contract id.
func Template(r *http.Request) string {
	if current := mux.CurrentRoute(r); current != nil {
		if template, err := current.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unmatched"
}
