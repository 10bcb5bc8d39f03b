// Package httpx holds the JSON response helpers shared by every
// handler package.
package httpx

import (
	"encoding/json"
	"net/http"
)

func RespondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func RespondError(w http.ResponseWriter, code int, message string) {
	RespondJSON(w, code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
