package common

import (
	"encoding/json"
	"net/http"
)

// Fields carries the named payload of a successful response, e.g.
// {"products": [...]}. The envelope adds "success" alongside them.
type Fields map[string]interface{}

// RespondJSON writes the success envelope with the given payload fields.
func RespondJSON(w http.ResponseWriter, status int, fields Fields) {
	body := make(map[string]interface{}, len(fields)+1)
	body["success"] = status >= 200 && status < 300
	for k, v := range fields {
		body[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// RespondMessage writes a success envelope carrying only a message.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Fields{"message": message})
}

// ParseJSONBody parses a JSON request body with a size limit.
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(v)
}
