package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Jeomhps/happier-hour-api/internal/errs"
)

// Package common holds the reply shape shared by every resource handler:
// the response formatter and the single error normalizer.

// Reply is what a dispatched request produces: a status code and the
// JSON-serialized body.
type Reply struct {
	StatusCode int
	Body       string
}

// Null is the body of every 204 reply.
const Null = "null"

// Respond serializes payload to JSON. A nil payload becomes the JSON null
// literal. A payload that cannot be serialized yields a 500.
func Respond(status int, payload any) Reply {
	b, err := json.Marshal(payload)
	if err != nil {
		return fallback(http.StatusInternalServerError)
	}
	return Reply{StatusCode: status, Body: string(b)}
}

// NoContent is Respond(204, nil).
func NoContent() Reply { return Respond(http.StatusNoContent, nil) }

// HandleError turns any error into a reply. Classified errors use their
// kind's status; anything else is a 500. The body is the error's message,
// or the status text when the message is empty.
func HandleError(err error) Reply {
	status := http.StatusInternalServerError
	var e *errs.Error
	if errors.As(err, &e) {
		status = e.Kind.Status()
	}

	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		return fallback(status)
	}
	return Respond(status, msg)
}

func fallback(status int) Reply {
	b, _ := json.Marshal(http.StatusText(status))
	return Reply{StatusCode: status, Body: string(b)}
}
