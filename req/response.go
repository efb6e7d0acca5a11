package req

import "fmt"

// Response reports whether a request succeeded and describes the action
// taken or the rule that blocked it.
type Response struct {
	OK      bool   `json:"success"`
	Message string `json:"message"`
}

// Success creates a successful response.
func Success(format string, args ...any) Response {
	return Response{OK: true, Message: fmt.Sprintf(format, args...)}
}

// Failure creates a failed response.
func Failure(format string, args ...any) Response {
	return Response{OK: false, Message: fmt.Sprintf(format, args...)}
}
