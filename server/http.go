package server

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respond encodes data (or an errorResponse when data is an error) to JSON
// and responds with it and the http code. If the encoding fails the client
// gets an InternalServerError instead.
func respond(w http.ResponseWriter, data interface{}, httpCode int) {
	if err, ok := data.(error); ok {
		data = errorResponse{Error: err.Error()}
	}

	w.Header().Set("Content-Type", "application/json")

	if data == nil || httpCode == http.StatusNoContent {
		w.WriteHeader(httpCode)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		httpCode = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: err.Error()})
	}

	w.WriteHeader(httpCode)
	_, _ = w.Write(append(body, '\n'))
}
