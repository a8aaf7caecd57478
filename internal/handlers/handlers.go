package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jordan-pw/minesweeper/internal/command"
	"github.com/jordan-pw/minesweeper/internal/mines"
	"github.com/jordan-pw/minesweeper/internal/session"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *logrus.Logger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.WithFields(logrus.Fields{
			"response": v,
			"error":    err,
		}).Error("unable to send response")
	}
}

type errorDTO struct {
	Error string          `json:"error"`
	Game  *mines.Snapshot `json:"game,omitempty"`
}

func wrapError(err error) errorDTO {
	return errorDTO{Error: err.Error()}
}

func wrapGameError(err error, game mines.Snapshot) errorDTO {
	return errorDTO{Error: err.Error(), Game: &game}
}

// statusFor maps a rejected request to its response code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, command.ErrUnknownCommand),
		errors.Is(err, command.ErrArgCount),
		errors.Is(err, command.ErrBadArgument):
		return http.StatusBadRequest
	case errors.Is(err, mines.ErrNotStarted),
		errors.Is(err, mines.ErrTerminalPhase):
		return http.StatusConflict
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
