package service

import (
	"reflect"
	"testing"
)

func TestNormalizeTermIdempotent(t *testing.T) {
	inputs := []string{"Pantalón", "CAMISETAS", "niño", "zapatos", "über"}

	for _, in := range inputs {
		once := NormalizeTerm(in)
		twice := NormalizeTerm(once)
		if once != twice {
			t.Fatalf("NormalizeTerm not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestStripAccents(t *testing.T) {
	if got := StripAccents("pantalón"); got != "pantalon" {
		t.Fatalf("expected pantalon, got %q", got)
	}
	if got := StripAccents("camión"); got != "camion" {
		t.Fatalf("expected camion, got %q", got)
	}
	if got := StripAccents("niño"); got != "nino" {
		t.Fatalf("expected nino, got %q", got)
	}
}

func TestTokenizeDropsStopWordsAndPunctuation(t *testing.T) {
	got := Tokenize("Pantalones de Vestir, para el Trabajo!")
	want := []string{"pantalones", "vestir", "trabajo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSingularize(t *testing.T) {
	cases := map[string]string{
		"pantalones": "pantalon",
		"camisas":    "camisa",
		"luces":      "luc",
		"mes":        "mes",
		"sol":        "sol",
		"tv":         "tv",
	}

	for in, want := range cases {
		if got := Singularize(in); got != want {
			t.Fatalf("Singularize(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestExpandTermIncludesNormalizedForm(t *testing.T) {
	inputs := []string{"Pantalones", "camión", "luz", "ZAPATO"}

	for _, in := range inputs {
		variants := ExpandTerm(in)
		if len(variants) == 0 {
			continue
		}
		normalized := NormalizeTerm(in)
		found := false
		for _, v := range variants {
			if v == normalized {
				found = true
			}
			if len([]rune(v)) < minVariantLength {
				t.Fatalf("ExpandTerm(%q) produced too-short variant %q", in, v)
			}
		}
		if !found {
			t.Fatalf("ExpandTerm(%q) missing normalized form %q: %v", in, normalized, variants)
		}
	}
}

func TestExpandTermCoversSingularAndAccentVariants(t *testing.T) {
	variants := ExpandTerm("Pantalónes")

	want := map[string]bool{"pantalones": false, "pantalon": false}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for v, seen := range want {
		if !seen {
			t.Fatalf("expected variant %q in %v", v, variants)
		}
	}
}

func TestExpandTermShortInput(t *testing.T) {
	if got := ExpandTerm("tv"); len(got) != 0 {
		t.Fatalf("expected empty variant set for short term, got %v", got)
	}
}

func TestBuildTermGroupsExplicitTermsWin(t *testing.T) {
	groups := BuildTermGroups("camisas rojas", []string{"pantalones"})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	for _, v := range groups[0] {
		if v == "camisas" || v == "camisa" {
			t.Fatal("query tokens should be ignored when explicit terms are given")
		}
	}
}

func TestBuildTermGroupsFromQuery(t *testing.T) {
	groups := BuildTermGroups("pantalones de vestir", nil)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %v", len(groups), groups)
	}
}

func TestBuildTermGroupsCapped(t *testing.T) {
	terms := []string{"uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho"}
	groups := BuildTermGroups("", terms)
	if len(groups) > maxTermGroups {
		t.Fatalf("expected at most %d groups, got %d", maxTermGroups, len(groups))
	}
}
