package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
)

func decode(r *http.Request, into any) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, into)
}

func respond(w http.ResponseWriter, status int, data any) {
	if status == http.StatusNoContent || data == nil {
		w.WriteHeader(status)
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(raw)
}

func respondErr(w http.ResponseWriter, status int, err error) {
	respond(w, status, map[string]string{
		"code":  http.StatusText(status),
		"error": err.Error(),
	})
}
