package timespeak

import (
	"errors"
	"testing"
	"time"
)

func newTestRenderer(t *testing.T) *ResponseRenderer {
	t.Helper()
	return NewResponseRenderer(newTestStore(t), nil)
}

func TestRenderSubstitutesParams(t *testing.T) {
	r := newTestRenderer(t)

	got, err := r.Render("timer_set", map[string]string{"time": "5 minutes"}, "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Timer set for 5 minutes" {
		t.Fatalf("got %q", got)
	}

	got, err = r.Render("timer_named_set", map[string]string{"name": "pasta", "time": "10 minutes"}, "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "pasta timer set for 10 minutes" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderLocalizedTimeParam(t *testing.T) {
	r := newTestRenderer(t)

	params := map[string]string{
		"time_en": "5 minutes",
		"time_de": "5 Minuten",
	}

	got, err := r.Render("timer_set", params, "de")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Timer gestellt auf 5 Minuten" {
		t.Fatalf("got %q", got)
	}

	// A locale without its own value falls back to the English one.
	got, err = r.Render("timer_set", map[string]string{"time_en": "5 minutes"}, "de")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Timer gestellt auf 5 minutes" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderDoesNotMutateParams(t *testing.T) {
	r := newTestRenderer(t)

	params := map[string]string{"time_en": "5 minutes"}
	if _, err := r.Render("timer_set", params, "en"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, ok := params["time"]; ok {
		t.Fatal("params map was mutated")
	}
}

func TestRenderFallsBackToEnglishTemplates(t *testing.T) {
	r := newTestRenderer(t)

	got, err := r.Render("timer_set", map[string]string{"time": "5 minutes"}, "fr")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Timer set for 5 minutes" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderMissingResponse(t *testing.T) {
	r := newTestRenderer(t)

	if _, err := r.Render("no_such_id", nil, "en"); !errors.Is(err, ErrMissingResponse) {
		t.Fatalf("expected ErrMissingResponse, got %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		locale string
		d      ResolvedDuration
		want   string
	}{
		{"en", ResolvedDuration{Hours: 2, Minutes: 30}, "2 hours 30 minutes"},
		{"en", ResolvedDuration{Minutes: 1}, "1 minute"},
		{"en", ResolvedDuration{Days: 1, Seconds: 10}, "1 day 10 seconds"},
		{"en", ResolvedDuration{}, "0 seconds"},
		{"de", ResolvedDuration{Hours: 2, Minutes: 30}, "2 stunden 30 minuten"},
		{"de", ResolvedDuration{Minutes: 1}, "1 minute"},
	}

	for _, tc := range tests {
		got, err := r.FormatDuration(tc.locale, tc.d)
		if err != nil {
			t.Fatalf("FormatDuration(%q, %v): %v", tc.locale, tc.d, err)
		}
		if got != tc.want {
			t.Fatalf("FormatDuration(%q, %v) = %q, want %q", tc.locale, tc.d, got, tc.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	r := newTestRenderer(t)
	at := time.Date(2026, time.March, 6, 16, 15, 0, 0, time.UTC)

	got, err := r.FormatTime("en", ResolvedTime{At: at})
	if err != nil {
		t.Fatalf("FormatTime: %v", err)
	}
	if got != "16:15" {
		t.Fatalf("got %q", got)
	}

	got, err = r.FormatTime("en", ResolvedTime{At: at, DayOfWeek: "friday"})
	if err != nil {
		t.Fatalf("FormatTime: %v", err)
	}
	if got != "friday 16:15" {
		t.Fatalf("got %q", got)
	}

	got, err = r.FormatTime("de", ResolvedTime{At: at, DayOfWeek: "friday"})
	if err != nil {
		t.Fatalf("FormatTime: %v", err)
	}
	if got != "freitag 16:15" {
		t.Fatalf("got %q", got)
	}
}
