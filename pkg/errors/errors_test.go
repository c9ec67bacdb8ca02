package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Op:   "playback.PrepareForAnimation",
		Kind: KindDecode,
		Err:  fmt.Errorf("not a gif"),
	}
	got := err.Error()
	if !strings.Contains(got, "decode") || !strings.Contains(got, "not a gif") {
		t.Errorf("error string %q missing kind or cause", got)
	}
}

func TestErrorStringWithResource(t *testing.T) {
	err := &Error{
		Op:       "playback.PrepareForAnimationNamed",
		Kind:     KindResource,
		Resource: "assets/spin.gif",
		Err:      fmt.Errorf("no such file"),
	}
	if got := err.Error(); !strings.Contains(got, "resource=assets/spin.gif") {
		t.Errorf("error string %q should contain the resource name", got)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindDecode, "decode"},
		{KindResource, "resource"},
		{KindPlayback, "playback"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

type captureHandler struct {
	errors []*Error
	panics []*PanicError
}

func (h *captureHandler) HandleError(err *Error)      { h.errors = append(h.errors, err) }
func (h *captureHandler) HandlePanic(err *PanicError) { h.panics = append(h.panics, err) }

func TestReportReachesHandler(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&Error{Op: "test.op", Kind: KindPlayback, Err: fmt.Errorf("boom")})

	if len(h.errors) != 1 {
		t.Fatalf("handled errors = %d, want 1", len(h.errors))
	}
	if h.errors[0].Timestamp.IsZero() {
		t.Error("Report should stamp the error time")
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("test.panicking")
		panic("boom")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("handled panics = %d, want 1", len(h.panics))
	}
	if h.panics[0].Op != "test.panicking" {
		t.Errorf("panic op = %q, want %q", h.panics[0].Op, "test.panicking")
	}
}

func TestReportNil(t *testing.T) {
	Report(nil)
	ReportPanic(nil)
}
