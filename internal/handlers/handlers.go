package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// SendJSONWithStatus marshals v before touching w, so a marshalling failure
// leaves the response unwritten.
func SendJSONWithStatus(w http.ResponseWriter, code int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	sendStatusJSONOrLog(w, logger, http.StatusOK, v)
}

func sendStatusJSONOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	code int,
	v any,
) {
	_, err := SendJSONWithStatus(w, code, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
