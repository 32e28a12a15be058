package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorCode_Status(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{ErrorCode(999), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.Status(); got != tc.want {
			t.Errorf("ErrorCode(%d).Status() = %d, want %d", tc.code, got, tc.want)
		}
	}
}

// the numbering is a wire contract shared with the admin client
func TestErrorCode_WireValues(t *testing.T) {
	if ErrorCodeNotFound != 10 || ErrorCodeDuplicateKey != 11 || ErrorCodeDB != 12 {
		t.Fatalf("error codes renumbered: notfound=%d dup=%d db=%d", ErrorCodeNotFound, ErrorCodeDuplicateKey, ErrorCodeDB)
	}
}

func TestWrapAndRender(t *testing.T) {
	cause := stderrs.New("conn reset")
	err := Wrapf(cause, ErrorCodeDB, "load discord bot %d", 7)

	if err.Error() != "load discord bot 7: conn reset" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) || Root(fmt.Errorf("svc: %w", err)) != cause {
		t.Fatal("cause not reachable")
	}
	if w := WireFrom(err); w.Message != "load discord bot 7" || w.Code != ErrorCodeDB {
		t.Fatalf("wire leaked the cause or lost the code: %+v", w)
	}

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}
}

func TestWithField_CopyOnWrite(t *testing.T) {
	base := DuplicateKeyf("a discord bot with this token already exists")
	withField := WithField(base, "bot_token")

	if e, _ := As(base); e.Field() != "" {
		t.Fatal("original mutated")
	}
	status, w := HTTP(withField)
	if status != http.StatusConflict || w.Field != "bot_token" || w.Code != ErrorCodeDuplicateKey {
		t.Fatalf("HTTP() = %d %+v", status, w)
	}

	foreign := stderrs.New("plain")
	if WithField(foreign, "x") != foreign {
		t.Fatal("foreign errors must pass through")
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{name: "nil", err: nil, code: ErrorCodeUnknown, status: http.StatusOK},
		{name: "foreign", err: stderrs.New("x"), code: ErrorCodeUnknown, status: http.StatusInternalServerError},
		{name: "not found", err: NotFoundf("channel config %d not found", 3), code: ErrorCodeNotFound, status: http.StatusNotFound},
		{name: "wrapped by fmt", err: fmt.Errorf("svc: %w", InvalidArgf("bot id is immutable")), code: ErrorCodeInvalidArgument, status: http.StatusUnprocessableEntity},
		{name: "unauthorized", err: Unauthorizedf("missing bearer token"), code: ErrorCodeUnauthorized, status: http.StatusUnauthorized},
		{name: "json", err: JSONErrf("bad body"), code: ErrorCodeJSON, status: http.StatusBadRequest},
		{name: "conflict", err: Conflictf("busy"), code: ErrorCodeConflict, status: http.StatusConflict},
		{name: "panic", err: PanicErrf("boom"), code: ErrorCodePanic, status: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(tc.err); got != tc.code {
				t.Fatalf("CodeOf = %d, want %d", got, tc.code)
			}
			if tc.err != nil && !IsCode(tc.err, tc.code) {
				t.Fatal("IsCode disagrees with CodeOf")
			}
			if got := HTTPStatus(tc.err); got != tc.status {
				t.Fatalf("HTTPStatus = %d, want %d", got, tc.status)
			}
		})
	}
}
