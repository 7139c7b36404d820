package apperr

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	e := New(NotFound)
	if e.Error() != "NotFound" {
		t.Errorf("Error() = %q, want %q", e.Error(), "NotFound")
	}

	wrapped := Wrap(InternalServerError, errors.New("boom"))
	if wrapped.Error() != "InternalServerError: boom" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	e := Wrap(Network, cause)
	if !errors.Is(e, cause) {
		t.Error("Unwrap did not expose the wrapped cause")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{NotFound, 404},
		{MethodNotAllowed, 405},
		{InternalServerError, 500},
		{Unknown, 500},
		{Network, 500},
		{BadRequest, 400},
		{SubmissionTooLong, 400},
	}
	for _, c := range cases {
		if got := c.code.HTTPStatus(); got != c.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(nil) != "" {
		t.Error("CodeOf(nil) should be empty")
	}
	if CodeOf(errors.New("plain")) != Unknown {
		t.Error("CodeOf(plain error) should be Unknown")
	}
	if CodeOf(New(TournamentArchived)) != TournamentArchived {
		t.Error("CodeOf(*Error) should return the wrapped code")
	}
}
