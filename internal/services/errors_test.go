package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tunesets/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternal, "fetch", "tune 42", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternal) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"fetch", "tune 42", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, services.ExitOK},
		{services.Wrap(services.ErrValidation, "seed", "parse", "bad line", nil), services.ExitInputError},
		{services.Wrap(services.ErrConfiguration, "config", "load", "", nil), services.ExitInputError},
		{services.Wrap(services.ErrNotFound, "preflight", "seed", "", nil), services.ExitInputError},
		{services.Wrap(services.ErrBusy, "lock", "acquire", "", nil), services.ExitBusy},
		{services.Wrap(services.ErrExternal, "fetch", "", "", nil), services.ExitFailure},
		{errors.New("plain"), services.ExitFailure},
	}
	for _, tc := range tests {
		if got := services.ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestHint(t *testing.T) {
	if services.Hint(nil) != "" {
		t.Fatal("expected no hint for nil")
	}
	if services.Hint(errors.New("plain")) != "" {
		t.Fatal("expected no hint for unclassified error")
	}
	if services.Hint(services.Wrap(services.ErrBusy, "lock", "", "", nil)) == "" {
		t.Fatal("expected hint for busy error")
	}
}

func TestIsRetriable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{context.DeadlineExceeded, true},
		{services.Wrap(services.ErrTransient, "fetch", "", "", nil), true},
		{fmt.Errorf("unexpected status 503"), true},
		{fmt.Errorf("read tcp: connection reset by peer"), true},
		{fmt.Errorf("unexpected status 404"), false},
		{services.Wrap(services.ErrValidation, "parse", "", "", nil), false},
	}
	for _, tc := range tests {
		if got := services.IsRetriable(tc.err); got != tc.want {
			t.Fatalf("IsRetriable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestSleepWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := services.SleepWithContext(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("sleep did not return early")
	}
	if err := services.SleepWithContext(context.Background(), 0); err != nil {
		t.Fatalf("zero sleep returned %v", err)
	}
}
