package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the lab API answers with an envelope code
// other than 200. The transport succeeded; the API itself refused.
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lab api %s: code %d: %s", e.Path, e.Code, e.Message)
}

// IsNotFound reports whether err is a lab API 404 envelope.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
