package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	got := FormatError(ErrorOptions{
		Context:      "broken",
		Problem:      "Something went wrong.",
		Consequence:  "Nothing was written.",
		Suggestions:  []string{"A", "B"},
		HelpCommands: []string{"Try again"},
		NoColor:      true,
	})

	want := "❌ BROKEN\n" +
		"   Something went wrong.\n" +
		"\n" +
		"   Nothing was written.\n" +
		"\n" +
		"   Did you mean: A, B?\n" +
		"\n" +
		"   → Try again\n"
	if got != want {
		t.Errorf("FormatError() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatErrorWithoutContext(t *testing.T) {
	got := FormatError(ErrorOptions{Level: ErrorLevelInfo, Problem: "Heads up", NoColor: true})
	if got != "ℹ️ Heads up\n" {
		t.Errorf("FormatError() = %q", got)
	}
}

func TestNotFoundError(t *testing.T) {
	got := NotFoundError("Engine.Actr", []string{"Engine.Actor"}, true)

	for _, want := range []string{
		"NOT FOUND: ENGINE.ACTR",
		"No class, struct or enum is named 'Engine.Actr'.",
		"Did you mean: Engine.Actor?",
		"classview query Actr",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("NotFoundError() missing %q in:\n%s", want, got)
		}
	}
}

func TestNotFoundErrorWithoutSuggestions(t *testing.T) {
	got := NotFoundError("Nope", nil, true)
	if strings.Contains(got, "Did you mean") {
		t.Errorf("expected no suggestions, got:\n%s", got)
	}
}

func TestQueryError(t *testing.T) {
	got := QueryError(`invalid filter key: filter "colour"`, true)
	if !strings.Contains(got, "INVALID QUERY") || !strings.Contains(got, "colour") || !strings.Contains(got, "deepextends") {
		t.Errorf("QueryError() = %s", got)
	}
}

func TestConfigError(t *testing.T) {
	got := ConfigError("server.port must be between 1 and 65535, got: 0", true)
	if !strings.Contains(got, "CONFIGURATION ERROR") || !strings.Contains(got, "classview.yaml") {
		t.Errorf("ConfigError() = %s", got)
	}
}

func TestWarning(t *testing.T) {
	got := Warning("2 duplicate full names", true)
	if got != "⚠️ 2 duplicate full names\n" {
		t.Errorf("Warning() = %q", got)
	}
}

func TestWriteErrorAndSuccess(t *testing.T) {
	var buf bytes.Buffer
	WriteError(&buf, ErrorOptions{Problem: "bad", NoColor: true})
	WriteSuccess(&buf, "good", true)

	if buf.String() != "❌ bad\n✓ good\n" {
		t.Errorf("output = %q", buf.String())
	}
}
