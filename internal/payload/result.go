package payload

import "net/http"

// Result is an operation outcome. A nil Body means the response carries
// no payload.
type Result struct {
	Status int
	Body   interface{}
}

func Status(code int) Result {
	return Result{Status: code}
}

func JSON(code int, body interface{}) Result {
	return Result{Status: code, Body: body}
}

var (
	BadRequest = Status(http.StatusBadRequest)
	NotFound   = Status(http.StatusNotFound)
	NoContent  = Status(http.StatusNoContent)
)
