package client

import (
	"errors"
	"fmt"
	"net/http"
)

const maxErrorBody = 512

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Op         string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Status)
	}
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Status, body)
}

// IsStatus reports whether err is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == code
}

// checkResp returns an *HTTPError if the response is not 2xx.
func checkResp(res *http.Response, opName string, body []byte) error {
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &HTTPError{Op: opName, StatusCode: res.StatusCode, Status: res.Status, Body: body}
	}
	return nil
}
