package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
)

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError renders err as a localized status body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorStatus(w, r, err, apperrors.GetCode(err).HTTPStatus())
}

// writeErrorStatus is writeError with an explicit HTTP status, for transport
// failures that have no domain code of their own.
func writeErrorStatus(w http.ResponseWriter, r *http.Request, err error, httpStatus int) {
	if apperrors.GetCode(err) == apperrors.CodeUnknown {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	_, locale := apperrors.Localize(err, resolveLocale(r))
	st := status.Convert(apperrors.HandleError(err, locale))
	body, marshalErr := protojson.Marshal(st.Proto())
	if marshalErr != nil {
		log.Printf("marshal error status: %v", marshalErr)
		http.Error(w, st.Message(), httpStatus)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Language", locale)
	w.WriteHeader(httpStatus)
	_, _ = w.Write(body)
}

// readJSON decodes the request body into dst. An empty body leaves dst
// untouched.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return invalidArgument(fmt.Sprintf("invalid request body: %v", err))
	}
	if decoder.More() {
		return invalidArgument("invalid request body: trailing data")
	}
	return nil
}

func invalidArgument(reason string) error {
	return apperrors.WithMetadata(
		apperrors.CodeInvalidArgument,
		reason,
		map[string]string{apperrors.MetaReason: reason},
	)
}

func notFound(what string) error {
	return apperrors.New(apperrors.CodeNotFound, what+" not found")
}
