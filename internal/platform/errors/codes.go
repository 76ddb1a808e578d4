// Package errors provides structured error handling with i18n support.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog errors
	CodeMalformedCatalog  Code = "MALFORMED_CATALOG"
	CodeIncompleteCatalog Code = "INCOMPLETE_CATALOG"

	// Figure composition errors
	CodeUnknownPart     Code = "UNKNOWN_PART"
	CodeGenderMismatch  Code = "GENDER_MISMATCH"
	CodePremiumRequired Code = "PREMIUM_REQUIRED"
	CodeColorNotLegal   Code = "COLOR_NOT_LEGAL"
	CodeNotColorable    Code = "NOT_COLORABLE"
	CodeFamilyNotSet    Code = "FAMILY_NOT_SET"
	CodeInvalidGender   Code = "INVALID_GENDER"
	CodeInvalidFigure   Code = "INVALID_FIGURE"

	// Request errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// Metadata keys shared by figure errors and their message templates.
const (
	MetaFamily  = "Family"
	MetaPartID  = "PartID"
	MetaColorID = "ColorID"
	MetaGender  = "Gender"
	MetaReason  = "Reason"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - the request names something the catalog rejects
	case CodeUnknownPart,
		CodeGenderMismatch,
		CodeColorNotLegal,
		CodeNotColorable,
		CodeInvalidGender,
		CodeInvalidFigure,
		CodeInvalidArgument:
		return codes.InvalidArgument

	// FailedPrecondition - figure state doesn't allow operation
	case CodeFamilyNotSet:
		return codes.FailedPrecondition

	// PermissionDenied - club-only content without eligibility
	case CodePremiumRequired:
		return codes.PermissionDenied

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// Internal - the loaded catalog cannot serve avatar editing
	case CodeMalformedCatalog,
		CodeIncompleteCatalog:
		return codes.Internal

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes through their gRPC code.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Fatal reports whether the code signals a configuration fault that stops
// avatar editing altogether rather than failing a single operation.
func (c Code) Fatal() bool {
	return c == CodeMalformedCatalog || c == CodeIncompleteCatalog
}
