package http

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/webwhiz/hrms-backend/internal/handler/http/response"
)

const maxMultipartMemory = 10 << 20

var errMissingData = errors.New("field 'data' is required")

// errInvalidBody marks a body that could not be decoded at all.
type errInvalidBody struct{ err error }

func (e errInvalidBody) Error() string { return e.err.Error() }

func (e errInvalidBody) Unwrap() error { return e.err }

// writeDecodeError answers 400 for undecodable bodies and maps anything else
// through the domain error table.
func writeDecodeError(w http.ResponseWriter, op string, err error) {
	var bodyErr errInvalidBody
	if errors.As(err, &bodyErr) {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	response.HandleError(w, err)
}

// isMultipart reports whether the request carries multipart/form-data.
func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
