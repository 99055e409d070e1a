package timespeak

import "testing"

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return NewNormalizer(newTestStore(t), nil)
}

func TestNormalizeEnglish(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		input string
		want  string
	}{
		{"Set a timer for 5 minutes", "5 minute"},
		{"set a timer for five minutes", "5 minute"},
		{"set a timer for 2 hours and 30 minutes", "2 hour and 30 minute"},
		{"quarter past 4 pm", "quarter after 4 pm"},
		{"twenty to five", "20 before 5"},
		{"half an hour", "half hour"},
		{"an hour and a half", "1 hour 30 minute"},
		{"three quarters of an hour", "threequarter hour"},
		{"9am", "9 am"},
		{"monday at 9am", "monday at 9 am"},
		{"7 o'clock", "7 oclock"},
		{"half past seven tomorrow", "half after 7 tomorrow"},
		{"wake me at 8 in the morning", "wake at 8 morning"},
		{"Please set a timer for 10 minutes!", "10 minute"},
		{"noon", "noon"},
		{"midday", "noon"},
		{"2.5 hours", "2.5 hour"},
	}

	for _, tc := range tests {
		if got := n.Normalize(tc.input, "en"); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := newTestNormalizer(t)

	for _, input := range []string{
		"quarter past 4 pm",
		"set a timer for 2 hours and 30 minutes",
		"twenty to five",
	} {
		once := n.Normalize(input, "en")
		twice := n.Normalize(once, "en")
		if once != twice {
			t.Fatalf("normalize not idempotent: %q -> %q -> %q", input, once, twice)
		}
	}
}

func TestNormalizeGerman(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		input string
		want  string
	}{
		{"stelle einen timer auf fünf minuten", "5 minute"},
		{"halb drei", "30 minute before 3"},
		{"viertel acht", "15 minute before 8"},
		{"um acht uhr", "8 oclock"},
		{"eine halbe stunde", "half hour"},
		{"anderthalb stunden", "1 hour 30 minute"},
		{"2,5 stunden", "2.5 hour"},
		{"morgen", "tomorrow"},
	}

	for _, tc := range tests {
		if got := n.Normalize(tc.input, "de"); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeLocaleRegionFallsBack(t *testing.T) {
	n := newTestNormalizer(t)

	if got := n.Normalize("halb drei", "de-AT"); got != "30 minute before 3" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeUnknownLocaleUsesEnglish(t *testing.T) {
	n := newTestNormalizer(t)

	if got := n.Normalize("five minutes", "xx"); got != "5 minute" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeNoPackReturnsInput(t *testing.T) {
	n := NewNormalizer(NewPackStore(NewChainLoader(), nil), nil)

	if got := n.Normalize("Five Minutes", "en"); got != "Five Minutes" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeStripsUnknownTokens(t *testing.T) {
	store := newTestStore(t)
	n := NewNormalizer(store, nil)
	n.stripUnknown = true

	if got := n.Normalize("wake me at 8 in the morning", "en"); got != "8 morning" {
		t.Fatalf("got %q", got)
	}
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"o'clock", "oclock"},
		{"5 minutes, please!", "5 minutes please"},
		{"p.m.", "p.m"},
		{"\"quoted\"", "quoted"},
	}

	for _, tc := range tests {
		if got := stripPunctuation(tc.input); got != tc.want {
			t.Fatalf("stripPunctuation(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestUnpackCompoundWordsReplacesEachOccurrence(t *testing.T) {
	pack, err := ParsePack("de", "de.json", []byte(`{
  "numbers": {"two": "zwei", "three": "drei"},
  "compound_words": {"halb {h:numbers}": "30 minute vor {h}"}
}`))
	if err != nil {
		t.Fatalf("ParsePack: %v", err)
	}

	n := NewNormalizer(NewPackStore(NewChainLoader(), nil), nil)
	rules := compilePackRules(pack, n.logger)

	got := n.unpackCompoundWords("halb zwei oder halb drei", rules)
	if got != "30 minute vor zwei oder 30 minute vor drei" {
		t.Fatalf("got %q", got)
	}
}
