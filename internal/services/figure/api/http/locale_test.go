package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{name: "default", target: "/", want: "en-US"},
		{name: "accept language", target: "/", accept: "pt-BR,pt;q=0.9,en;q=0.5", want: "pt-BR"},
		{name: "generic portuguese", target: "/", accept: "pt", want: "pt-BR"},
		{name: "query wins", target: "/?lang=en-US", accept: "pt-BR", want: "en-US"},
		{name: "query only", target: "/?lang=pt-BR", want: "pt-BR"},
		{name: "unsupported", target: "/", accept: "ja-JP", want: "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			if got := resolveLocale(req); got != tt.want {
				t.Fatalf("resolveLocale = %q, want %q", got, tt.want)
			}
		})
	}
	if got := resolveLocale(nil); got != "en-US" {
		t.Fatalf("resolveLocale(nil) = %q", got)
	}
}

func TestValidateIssuesUseQueryLocale(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/v1/figures/validate?lang=pt-BR", `{"figure":"hr-999-1"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	got := decodeBody[validateResponse](t, rec)
	if len(got.Issues) != 1 || got.Issues[0].Message != "A peça 999 não existe em hr" {
		t.Fatalf("issues = %+v", got.Issues)
	}
}
