package response

import (
	"encoding/json"
	"listo/shared/constant"
	"listo/shared/failure"
	"listo/shared/logger"
	"net/http"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithPayload sends a JSON response without the data envelope
func WithPayload(writer http.ResponseWriter, code int, payload interface{}) {
	response(writer, code, payload)
}

// WithText sends a plain text response
func WithText(writer http.ResponseWriter, code int, text string) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeText)
	writer.WriteHeader(code)

	if _, err := writer.Write([]byte(text)); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithError sends a response with an error message. Errors that are not a failure.Failure
// become a generic internal server error so store details never reach the client.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := failure.Message(err, constant.ResponseErrorInternal)

	response(writer, code, Error{Error: &errMsg})
}

// WithRouteNotFound sends a default response for unknown API routes
func WithRouteNotFound(writer http.ResponseWriter) {
	errMsg := constant.ResponseErrorRouteNotFound

	response(writer, http.StatusNotFound, Error{Error: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
