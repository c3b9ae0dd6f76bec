package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/auth/service"
	userdomain "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/domain"
)

// Application error codes carried in problem responses, stable across
// releases so clients can switch on them instead of matching detail text.
const (
	CodeInternal           = 1000
	CodeValidation         = 1001
	CodeEmailTaken         = 1002
	CodeInvalidCredentials = 1003
	CodeEmailNotConfirmed  = 1004
	CodeInvalidSession     = 1005
	CodeInvalidActionToken = 1006
	CodeUserNotFound       = 1007
	CodePermissionDenied   = 1008
)

// Problem is an RFC 7807 problem details body extended with a numeric
// application code.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Code     int    `json:"code"`
}

func writeProblem(w http.ResponseWriter, r *http.Request, status, code int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
		Code:     code,
	})
}

var validationErrs = []error{
	service.ErrWeakPassword,
	userdomain.ErrEmailRequired,
	userdomain.ErrEmailTooLong,
	userdomain.ErrEmailInvalid,
	userdomain.ErrDisplayNameTooLong,
	userdomain.ErrAvatarTooLarge,
	userdomain.ErrAvatarType,
	userdomain.ErrAvatarNotSquare,
	userdomain.ErrAvatarTooSmall,
	userdomain.ErrInvalidRole,
}

// writeServiceError maps auth service errors to problem responses. Unknown
// errors become an opaque 500 so internals never leak to clients.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		writeProblem(w, r, http.StatusConflict, CodeEmailTaken, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeProblem(w, r, http.StatusUnauthorized, CodeInvalidCredentials, err.Error())
	case errors.Is(err, service.ErrEmailNotConfirmed):
		writeProblem(w, r, http.StatusForbidden, CodeEmailNotConfirmed, err.Error())
	case errors.Is(err, service.ErrInvalidSession):
		writeProblem(w, r, http.StatusUnauthorized, CodeInvalidSession, err.Error())
	case errors.Is(err, service.ErrInvalidActionToken):
		writeProblem(w, r, http.StatusBadRequest, CodeInvalidActionToken, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		writeProblem(w, r, http.StatusNotFound, CodeUserNotFound, err.Error())
	default:
		for _, v := range validationErrs {
			if errors.Is(err, v) {
				writeProblem(w, r, http.StatusBadRequest, CodeValidation, err.Error())
				return
			}
		}
		writeProblem(w, r, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}
