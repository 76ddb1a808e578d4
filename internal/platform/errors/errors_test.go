package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := WithMetadata(CodeUnknownPart, "part 999 missing", Part("hr", 999))
	wrapped := fmt.Errorf("set part: %w", err)

	if !stderrors.Is(wrapped, New(CodeUnknownPart, "")) {
		t.Fatal("expected wrapped error to match by code")
	}
	if stderrors.Is(wrapped, New(CodeGenderMismatch, "")) {
		t.Fatal("expected different code not to match")
	}
	if GetCode(wrapped) != CodeUnknownPart {
		t.Fatalf("GetCode() = %s, want %s", GetCode(wrapped), CodeUnknownPart)
	}
	if got := GetMetadata(wrapped)[MetaPartID]; got != "999" {
		t.Fatalf("metadata part id = %q, want 999", got)
	}
}

func TestGetCodeUnknownForPlainErrors(t *testing.T) {
	if GetCode(stderrors.New("boom")) != CodeUnknown {
		t.Fatal("expected unknown code")
	}
	if IsCode(nil, CodeNotFound) {
		t.Fatal("nil error must not carry a code")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := stderrors.New("disk gone")
	err := Wrap(CodeMalformedCatalog, "load catalog", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestCodeMappings(t *testing.T) {
	tests := []struct {
		code     Code
		grpcCode codes.Code
		http     int
		fatal    bool
	}{
		{CodeUnknownPart, codes.InvalidArgument, http.StatusBadRequest, false},
		{CodeGenderMismatch, codes.InvalidArgument, http.StatusBadRequest, false},
		{CodeColorNotLegal, codes.InvalidArgument, http.StatusBadRequest, false},
		{CodeNotColorable, codes.InvalidArgument, http.StatusBadRequest, false},
		{CodeInvalidArgument, codes.InvalidArgument, http.StatusBadRequest, false},
		{CodePremiumRequired, codes.PermissionDenied, http.StatusForbidden, false},
		{CodeFamilyNotSet, codes.FailedPrecondition, http.StatusConflict, false},
		{CodeNotFound, codes.NotFound, http.StatusNotFound, false},
		{CodeMalformedCatalog, codes.Internal, http.StatusInternalServerError, true},
		{CodeIncompleteCatalog, codes.Internal, http.StatusInternalServerError, true},
		{CodeUnknown, codes.Internal, http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.GRPCCode(); got != tt.grpcCode {
				t.Errorf("GRPCCode() = %v, want %v", got, tt.grpcCode)
			}
			if got := tt.code.HTTPStatus(); got != tt.http {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.http)
			}
			if got := tt.code.Fatal(); got != tt.fatal {
				t.Errorf("Fatal() = %v, want %v", got, tt.fatal)
			}
		})
	}
}

func TestHandleErrorAttachesDetails(t *testing.T) {
	err := WithMetadata(CodePremiumRequired, "club part", Part("ch", 3030))

	st, ok := status.FromError(HandleError(err, "pt-BR"))
	if !ok {
		t.Fatal("expected gRPC status")
	}
	if st.Code() != codes.PermissionDenied {
		t.Fatalf("code = %v, want PermissionDenied", st.Code())
	}
	var (
		info      *errdetails.ErrorInfo
		localized *errdetails.LocalizedMessage
	)
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.Reason != string(CodePremiumRequired) || info.Domain != Domain {
		t.Fatalf("unexpected error info: %+v", info)
	}
	if localized == nil || localized.Locale != "pt-BR" {
		t.Fatalf("unexpected localized message: %+v", localized)
	}
	if localized.Message != "A peça 3030 de ch é exclusiva do Habbo Club" {
		t.Fatalf("localized message = %q", localized.Message)
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	if HandleError(nil, "") != nil {
		t.Fatal("expected nil for nil error")
	}
	st, _ := status.FromError(HandleError(stderrors.New("boom"), ""))
	if st.Code() != codes.Internal {
		t.Fatalf("code = %v, want Internal", st.Code())
	}
}

func TestLocalizeFallsBackToBaseLocale(t *testing.T) {
	msg, locale := Localize(WithMetadata(CodeFamilyNotSet, "", map[string]string{MetaFamily: "hr"}), "de-DE")
	if locale != DefaultLocale {
		t.Fatalf("locale = %q, want %q", locale, DefaultLocale)
	}
	if msg != "Choose a hr part before picking its color" {
		t.Fatalf("message = %q", msg)
	}
}
