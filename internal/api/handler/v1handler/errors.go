package v1handler

import (
	"context"
	"errors"
	"net/http"
	"typeracer/pkg/logger"
	"typeracer/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

var kindStatus = map[serrors.Kind]struct { //nolint: gochecknoglobals
	status  int
	message string
}{
	serrors.ErrNotFound:     {http.StatusNotFound, "resource not found"},
	serrors.ErrBadRequest:   {http.StatusBadRequest, "bad request"},
	serrors.ErrUnauthorized: {http.StatusUnauthorized, "unauthorized"},
	serrors.ErrForbidden:    {http.StatusForbidden, "forbidden"},
	serrors.ErrConflict:     {http.StatusConflict, "conflict"},
	serrors.ErrUnavailable:  {http.StatusServiceUnavailable, "service unavailable"},
}

// NewError maps err onto a response. Errors without a known kind become 500s
// and their details are only logged.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	k := serrors.KindOf(err)
	mapped, ok := kindStatus[k]
	if !ok {
		logger.Error(ctx, "request failed", zap.Error(err))

		return &ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       serrors.ErrInternal.Error(),
			Message:    "internal error",
		}
	}

	msg := mapped.message
	var e *serrors.Error
	if errors.As(err, &e) && e.Message() != "" {
		msg = e.Message()
	}

	return &ErrorResponse{StatusCode: mapped.status, Code: k.Error(), Message: msg}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, h.NewError(r.Context(), err))
}

func writeError(w http.ResponseWriter, res *ErrorResponse) {
	writeJSON(w, res.StatusCode, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.FieldStart("code")
			e.Str(res.Code)
			e.FieldStart("message")
			e.Str(res.Message)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, fn func(e *jx.Encoder)) {
	var e jx.Encoder
	fn(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}
