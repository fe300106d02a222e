package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/utama-ssl/decision-core/internal/strategyrunner"
)

func TestBuildTransport_RejectsUnknownMode(t *testing.T) {
	_, err := buildTransport(matchOptions{mode: "bluetooth"}, nil)
	if err == nil {
		t.Fatal("expected an error for an unknown transport mode")
	}
}

func TestRefereeOrRunnerIsInvariant(t *testing.T) {
	wrapped := fmt.Errorf("step failed: %w", strategyrunner.ErrInvariant)
	if !refereeOrRunnerIsInvariant(wrapped) {
		t.Fatal("expected wrapped ErrInvariant to be recognised")
	}
	if refereeOrRunnerIsInvariant(errors.New("some other failure")) {
		t.Fatal("did not expect an unrelated error to be recognised as an invariant violation")
	}
}

func TestAsExitError(t *testing.T) {
	var target *exitError
	wrapped := &exitError{code: exitInvariant, err: errors.New("boom")}
	if !asExitError(wrapped, &target) {
		t.Fatal("expected asExitError to recognise an *exitError")
	}
	if target.code != exitInvariant {
		t.Fatalf("expected code %d, got %d", exitInvariant, target.code)
	}

	target = nil
	if asExitError(errors.New("plain"), &target) {
		t.Fatal("did not expect a plain error to be recognised as an *exitError")
	}
}
