package timespeak

import (
	"strings"
	"testing"
)

const packJSON = `{
  "decimal_separator": ",",
  "numbers": {
    "one": "uno",
    "two": ["dos"]
  },
  "fractions": {
    "half": ["media", "y media"]
  },
  "durations": {
    "minute": ["minuto", "minutos"]
  },
  "remove_words": ["por favor", "un"],
  "structures": {
    "basic_time": ["{hours}"]
  },
  "responses": {
    "timer_set": "Temporizador para {time}"
  }
}`

func TestParsePackJSON(t *testing.T) {
	pack, err := ParsePack("es", "es.json", []byte(packJSON))
	if err != nil {
		t.Fatalf("ParsePack: %v", err)
	}

	if pack.Locale != "es" {
		t.Fatalf("Locale = %q", pack.Locale)
	}
	if pack.DecimalSeparator != "," {
		t.Fatalf("DecimalSeparator = %q", pack.DecimalSeparator)
	}

	// Single string and list variants both decode.
	if got := pack.Variants(CategoryNumbers, "one"); len(got) != 1 || got[0] != "uno" {
		t.Fatalf("Variants(one) = %v", got)
	}
	if got := pack.Variants(CategoryNumbers, "two"); len(got) != 1 || got[0] != "dos" {
		t.Fatalf("Variants(two) = %v", got)
	}

	if got := pack.Responses["timer_set"]; got != "Temporizador para {time}" {
		t.Fatalf("response = %q", got)
	}
	if got := pack.Structures["basic_time"]; len(got) != 1 || got[0] != "{hours}" {
		t.Fatalf("structures = %v", got)
	}
}

func TestParsePackYAML(t *testing.T) {
	data := []byte("numbers:\n  one: uno\n  two:\n    - dos\nresponses:\n  timer_set: listo\n")

	pack, err := ParsePack("es", "es.yaml", data)
	if err != nil {
		t.Fatalf("ParsePack: %v", err)
	}
	if got := pack.Variants(CategoryNumbers, "one"); len(got) != 1 || got[0] != "uno" {
		t.Fatalf("Variants(one) = %v", got)
	}
	if pack.Responses["timer_set"] != "listo" {
		t.Fatalf("response = %q", pack.Responses["timer_set"])
	}
}

func TestParsePackUnsupportedExtension(t *testing.T) {
	if _, err := ParsePack("es", "es.txt", []byte("{}")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestParsePackRejectsEmptyVariants(t *testing.T) {
	_, err := ParsePack("es", "es.json", []byte(`{"numbers": {"one": []}}`))
	if err == nil || !strings.Contains(err.Error(), "no variants") {
		t.Fatalf("expected empty variants error, got %v", err)
	}
}

func TestCollectionOrdersLongestFirst(t *testing.T) {
	pack, err := ParsePack("es", "es.json", []byte(packJSON))
	if err != nil {
		t.Fatalf("ParsePack: %v", err)
	}

	entries := pack.Collection(CategoryFractions)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if len(entries[0].Words) != 2 || entries[0].Words[0] != "y" {
		t.Fatalf("multiword variant must sort first, got %v", entries[0].Words)
	}
}

func TestCollectionTieBreakIsDeterministic(t *testing.T) {
	// "abend" and "nacht" tie on word count and character length; the
	// order must not depend on map iteration.
	data := []byte(`{
  "time_of_day": {
    "night": ["nacht"],
    "evening": ["abend"]
  }
}`)

	var want []string
	for i := 0; i < 20; i++ {
		pack, err := ParsePack("de", "de.json", data)
		if err != nil {
			t.Fatalf("ParsePack: %v", err)
		}

		entries := pack.Collection(CategoryTimeOfDay)
		got := make([]string, len(entries))
		for j, entry := range entries {
			got[j] = entry.Words[0]
		}

		if want == nil {
			want = got
			if want[0] != "abend" || want[1] != "nacht" {
				t.Fatalf("tie not broken lexicographically: %v", want)
			}
			continue
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("iteration %d: order %v, want %v", i, got, want)
			}
		}
	}
}

func TestRemovePhrasesOrdersLongestFirst(t *testing.T) {
	pack, err := ParsePack("es", "es.json", []byte(packJSON))
	if err != nil {
		t.Fatalf("ParsePack: %v", err)
	}

	phrases := pack.RemovePhrases()
	if len(phrases) != 2 {
		t.Fatalf("expected 2 phrases, got %d", len(phrases))
	}
	if len(phrases[0]) != 2 {
		t.Fatalf("multiword phrase must sort first, got %v", phrases[0])
	}
}
