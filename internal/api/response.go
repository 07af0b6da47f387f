// Package api is the operation-layer boundary of OctoFit Tracker. Every
// operation returns a uniform Response; any front end (CLI, a future HTTP
// layer, tests) consumes only this surface.
package api

// Response is the uniform envelope returned by every operation.
type Response struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Data         any    `json:"data,omitempty"`
	StatusCode   int    `json:"status_code"`
	ErrorDetails string `json:"error_details,omitempty"`
}

// successResponse builds a success envelope.
func successResponse(data any, message string, statusCode int) Response {
	return Response{
		Success:    true,
		Message:    message,
		Data:       data,
		StatusCode: statusCode,
	}
}

// errorResponse builds an error envelope.
func errorResponse(message string, statusCode int, errorDetails string) Response {
	return Response{
		Success:      false,
		Message:      message,
		StatusCode:   statusCode,
		ErrorDetails: errorDetails,
	}
}
