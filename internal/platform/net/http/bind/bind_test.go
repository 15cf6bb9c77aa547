package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "juryduty/internal/platform/errors"
)

type createReq struct {
	Topic string `json:"topic" validate:"required,notblank,max=10"`
	Kind  string `json:"kind" validate:"omitempty,oneof=dispute solo"`
}

func req(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/disputes", strings.NewReader(body))
}

func TestParseJSONOK(t *testing.T) {
	got, err := ParseJSON[createReq](req(`{"topic":"dishes","kind":"solo"}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Topic != "dishes" || got.Kind != "solo" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSONRejects(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{"empty", "", perr.ErrorCodeJSON, "", "empty body"},
		{"garbage", "{", perr.ErrorCodeJSON, "", "invalid JSON"},
		{"unknown field", `{"topic":"x","extra":1}`, perr.ErrorCodeJSON, "", "invalid JSON"},
		{"trailing", `{"topic":"x"}{}`, perr.ErrorCodeJSON, "", "trailing"},
		{"missing", `{}`, perr.ErrorCodeValidation, "topic", "topic is required"},
		{"blank", `{"topic":"   "}`, perr.ErrorCodeValidation, "topic", "topic must not be blank"},
		{"too long", `{"topic":"0123456789a"}`, perr.ErrorCodeValidation, "topic", "topic must be at most 10 characters"},
		{"bad kind", `{"topic":"x","kind":"trio"}`, perr.ErrorCodeValidation, "kind", "kind must be one of"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[createReq](req(c.body))
			e, ok := perr.As(err)
			if !ok {
				t.Fatalf("want *perr.Error, got %v", err)
			}
			if e.Code() != c.code || e.Field() != c.field || !strings.Contains(e.Message(), c.msg) {
				t.Fatalf("got code=%v field=%q msg=%q", e.Code(), e.Field(), e.Message())
			}
		})
	}
}

func TestParseJSONCountsRunes(t *testing.T) {
	// ten multibyte runes fit a max=10 rule
	if _, err := ParseJSON[createReq](req(`{"topic":"éééééééééé"}`)); err != nil {
		t.Fatalf("runes should be counted, got %v", err)
	}
}

func TestParseJSONBodyLimit(t *testing.T) {
	body := `{"topic":"` + strings.Repeat("a", 64) + `"}`
	_, err := ParseJSON[createReq](req(body), Options{MaxBytes: 16, DisallowUnknown: true})
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want json error, got %v", err)
	}
}

func TestParseJSONAllowEmpty(t *testing.T) {
	type noRules struct {
		Token string `json:"token"`
	}
	if _, err := ParseJSON[noRules](req(""), Options{MaxBytes: 1 << 10, AllowEmptyBody: true}); err != nil {
		t.Fatalf("empty body should pass: %v", err)
	}
}
