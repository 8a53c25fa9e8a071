// Package envelope provides the response shape shared by every successful
// API call.
package envelope

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body written for successful requests.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	status  int
}

// Data wraps a payload for a 200 response.
func Data(v any) Envelope {
	return Envelope{
		Success: true,
		Data:    v,
		status:  http.StatusOK,
	}
}

// Created wraps a payload for a 201 response.
func Created(v any) Envelope {
	return Envelope{
		Success: true,
		Data:    v,
		status:  http.StatusCreated,
	}
}

// Message constructs a 200 response that only carries a message.
func Message(msg string) Envelope {
	return Envelope{
		Success: true,
		Message: msg,
		status:  http.StatusOK,
	}
}

// WithMessage attaches a message to the envelope.
func (e Envelope) WithMessage(msg string) Envelope {
	e.Message = msg
	return e
}

// Encode implements the web.Encoder interface.
func (e Envelope) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus implements the web package httpStatus interface.
func (e Envelope) HTTPStatus() int {
	if e.status == 0 {
		return http.StatusOK
	}
	return e.status
}
