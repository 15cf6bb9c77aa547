package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeLocked, http.StatusLocked},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	root := stderrs.New("boom")
	err := Wrap(root, ErrorCodeDB, "load dispute")
	if !stderrs.Is(err, root) {
		t.Fatalf("cause lost")
	}
	if got := err.Error(); got != "load dispute: boom" {
		t.Fatalf("Error() = %q", got)
	}
	if Root(err) != root {
		t.Fatalf("Root did not reach cause")
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
}

func TestMutatorsCopy(t *testing.T) {
	base := Conflictf("already voted")
	withDetails := WithDetails(base, map[string]int{"a": 1})
	withField := WithField(withDetails, "choice")

	e, _ := As(base)
	if e.Details() != nil || e.Field() != "" {
		t.Fatalf("base mutated: %+v", e)
	}
	w := WireFrom(withField)
	if w.Code != ErrorCodeConflict || w.Field != "choice" || w.Details == nil {
		t.Fatalf("wire = %+v", w)
	}
	if WithOp(base, "vote.cast").(*Error).Op() != "vote.cast" {
		t.Fatalf("op not attached")
	}

	foreign := stderrs.New("plain")
	if WithDetails(foreign, 1) != foreign {
		t.Fatalf("foreign error should pass through")
	}
}

func TestWireFromForeign(t *testing.T) {
	w := WireFrom(stderrs.New("plain"))
	if w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("wire = %+v", w)
	}
	if (WireFrom(nil) != Wire{}) {
		t.Fatalf("nil should give zero wire")
	}
}

func TestHTTPHelper(t *testing.T) {
	status, w := HTTP(Lockedf("held by another session"))
	if status != http.StatusLocked || w.Message != "held by another session" {
		t.Fatalf("HTTP = %d %+v", status, w)
	}
	if s, _ := HTTP(nil); s != http.StatusOK {
		t.Fatalf("HTTP(nil) = %d", s)
	}
	if !IsCode(Upstreamf("llm"), ErrorCodeUpstream) {
		t.Fatalf("IsCode mismatch")
	}
}
