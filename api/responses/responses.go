package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
	"github.com/OmerAlfiel/Shahen-website/pkg/types"
)

// WriteSuccess writes a 200 success envelope. A nil data is omitted.
func WriteSuccess(w http.ResponseWriter, message string, data any) {
	WriteSuccessStatus(w, http.StatusOK, message, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, types.Envelope{
		Status:  types.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// WriteError maps err onto the error envelope. Untyped errors become
// internal errors with the generic public message and no detail.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if m := typed.Message(); m != "" {
		msg = m
	}

	payload := types.Envelope{
		Status:  types.StatusError,
		Message: msg,
	}
	if meta.DetailsAllowed {
		payload.Error = detailText(typed.Details())
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, pkgerrors.Dump(err).Fields())
		ctx = logg.WithField(ctx, "status", meta.HTTPStatus)
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.rejected")
		}
	}

	WriteJSON(w, meta.HTTPStatus, payload)
}

func detailText(details any) string {
	switch d := details.(type) {
	case string:
		return d
	case []string:
		return strings.Join(d, "; ")
	case error:
		return d.Error()
	}
	return ""
}

// WriteJSON writes payload as-is, outside the envelope.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
