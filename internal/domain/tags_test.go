package domain

import "testing"

func TestAbbreviationRoundTrip(t *testing.T) {
	for _, tag := range KnownTags() {
		abbrev, ok := Abbreviation(tag)
		if !ok {
			t.Fatalf("expected abbreviation for %s", tag)
		}
		back, ok := TagByAbbreviation(abbrev)
		if !ok {
			t.Fatalf("expected tag for abbreviation %s", abbrev)
		}
		if back != tag {
			t.Fatalf("expected %s, got %s for abbreviation %s", tag, back, abbrev)
		}
	}
}

func TestAbbreviationUnknownTag(t *testing.T) {
	if _, ok := Abbreviation(Tag("tag:example.com,2020:bogus")); ok {
		t.Fatal("expected no abbreviation for unregistered tag")
	}
	if _, ok := TagByAbbreviation("bogus"); ok {
		t.Fatal("expected no tag for unregistered abbreviation")
	}
}

func TestKnownTagsStableOrder(t *testing.T) {
	first := KnownTags()
	second := KnownTags()
	if len(first) == 0 {
		t.Fatal("expected a non-empty registry")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected stable order, got %v and %v", first, second)
		}
	}
	for i := 1; i < len(first); i++ {
		a, _ := Abbreviation(first[i-1])
		b, _ := Abbreviation(first[i])
		if a >= b {
			t.Fatalf("expected abbreviations in ascending order, got %s before %s", a, b)
		}
	}
}
