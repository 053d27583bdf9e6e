package match

import (
	"errors"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	names := []string{"Mobile App", "API Platform", "Mobile Web"}

	for _, tc := range []struct {
		query   string
		wantIdx int
		wantOK  bool
	}{
		{"mobile", 0, true}, // first in fetch order wins
		{"platform", 1, true},
		{"API", 1, true},
		{"web", 2, true},
		{"desktop", 0, false},
	} {
		idx, ok := Name(tc.query, names)
		if ok != tc.wantOK || (ok && idx != tc.wantIdx) {
			t.Errorf("Name(%q) = %d/%v, want %d/%v", tc.query, idx, ok, tc.wantIdx, tc.wantOK)
		}
	}
}

func TestIdentifier(t *testing.T) {
	if !Identifier("eng-42", "ENG-42") {
		t.Error("identifier match should be case-insensitive")
	}
	if Identifier("ENG-4", "ENG-42") {
		t.Error("identifier match must be exact, not a prefix")
	}
}

func TestScore_Tiers(t *testing.T) {
	// Exact after normalization.
	if got := Score("Add validation", "add validation"); got != 1.0 {
		t.Errorf("exact score = %v, want 1.0", got)
	}
	// Containment: len(shorter)/len(longer).
	got := Score("valid", "validation")
	if want := 5.0 / 10.0; got != want {
		t.Errorf("containment score = %v, want %v", got, want)
	}
	// Token overlap: one of two query words hits, candidate has three.
	got = Score("update docs", "write the docs")
	if want := 1.0 / 3.0; got != want {
		t.Errorf("token overlap score = %v, want %v", got, want)
	}
	// No overlap at all.
	if got := Score("xyz", "completely different words"); got != 0 {
		t.Errorf("disjoint score = %v, want 0", got)
	}
}

func TestToggleChecklist_ChecksBestLine(t *testing.T) {
	desc := "Intro text\n- [ ] Add validation\n- [ ] Update tests\nTrailing"

	got, err := ToggleChecklist(desc, "validation", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Intro text\n- [x] Add validation\n- [ ] Update tests\nTrailing"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestToggleChecklist_Uncheck(t *testing.T) {
	desc := "- [x] Add validation\n- [X] Ship it"

	got, err := ToggleChecklist(desc, "ship it", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "- [ ] Ship it") {
		t.Errorf("marker not cleared:\n%s", got)
	}
	if !strings.Contains(got, "- [x] Add validation") {
		t.Errorf("untouched line changed:\n%s", got)
	}
}

func TestToggleChecklist_NoMatchListsCandidates(t *testing.T) {
	desc := "- [ ] Add validation\n- [ ] Update tests"

	_, err := ToggleChecklist(desc, "xyz-not-present", true)
	var noMatch *NoChecklistMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("error = %v, want NoChecklistMatchError", err)
	}
	if len(noMatch.Candidates) != 2 {
		t.Fatalf("candidates = %v, want both lines", noMatch.Candidates)
	}
	if noMatch.Candidates[0] != "- [ ] Add validation" || noMatch.Candidates[1] != "- [ ] Update tests" {
		t.Errorf("candidates not verbatim: %v", noMatch.Candidates)
	}
}

func TestToggleChecklist_OnlyOppositeStateConsidered(t *testing.T) {
	desc := "- [x] Add validation\n- [ ] Add validation later"

	// Checking: the already-checked line is not a candidate even though
	// it scores higher.
	got, err := ToggleChecklist(desc, "Add validation", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "- [x] Add validation later") {
		t.Errorf("wrong line toggled:\n%s", got)
	}
}

func TestParseChecklist_IndentedAndMalformed(t *testing.T) {
	items := parseChecklist([]string{
		"  - [ ] indented item",
		"- [y] bad marker",
		"- [] no space",
		"plain line",
		"- [X] done item",
	})
	if len(items) != 2 {
		t.Fatalf("items = %+v, want 2", items)
	}
	if items[0].text != "indented item" || items[0].checked {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].text != "done item" || !items[1].checked {
		t.Errorf("second item = %+v", items[1])
	}
}
