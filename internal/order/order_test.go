package order

import (
	"errors"
	"sort"
	"testing"
)

func siblings() []Item {
	return []Item{
		{ID: "a", Name: "Alpha", Key: 3000},
		{ID: "b", Name: "Beta", Key: 2000},
		{ID: "c", Name: "Gamma", Key: 1000},
	}
}

func TestReorderAll_AssignsDescendingKeys(t *testing.T) {
	got, err := ReorderAll(siblings(), []string{"Gamma", "Alpha", "Beta"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// First listed target gets max(existing)+Step, then Step decrements.
	if got[0].ID != "c" || got[0].Key != 4000 {
		t.Errorf("first = %+v, want c/4000", got[0])
	}
	if got[1].ID != "a" || got[1].Key != 3000 {
		t.Errorf("second = %+v, want a/3000", got[1])
	}
	if got[2].ID != "b" || got[2].Key != 2000 {
		t.Errorf("third = %+v, want b/2000", got[2])
	}
}

// Read-back order is idempotent across repeated calls even though the
// numeric keys differ.
func TestReorderAll_OrderIdempotence(t *testing.T) {
	items := siblings()
	target := []string{"Beta", "Gamma", "Alpha"}

	readBack := func(items []Item) []string {
		sorted := append([]Item(nil), items...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key > sorted[j].Key })
		names := make([]string, len(sorted))
		for i, it := range sorted {
			names[i] = it.Name
		}
		return names
	}

	apply := func(items []Item, as []Assignment) []Item {
		out := append([]Item(nil), items...)
		for _, a := range as {
			for i := range out {
				if out[i].ID == a.ID {
					out[i].Key = a.Key
				}
			}
		}
		return out
	}

	first, err := ReorderAll(items, target)
	if err != nil {
		t.Fatal(err)
	}
	items = apply(items, first)
	order1 := readBack(items)

	second, err := ReorderAll(items, target)
	if err != nil {
		t.Fatal(err)
	}
	if second[0].Key == first[0].Key {
		t.Error("expected fresh key values on the second call")
	}
	items = apply(items, second)
	order2 := readBack(items)

	for i, name := range target {
		if order1[i] != name || order2[i] != name {
			t.Fatalf("read-back order1=%v order2=%v, want %v", order1, order2, target)
		}
	}
}

func TestReorderAll_Errors(t *testing.T) {
	if _, err := ReorderAll(siblings(), []string{"Alpha"}); !errors.Is(err, ErrInsufficientTargets) {
		t.Errorf("single target error = %v", err)
	}
	var notFound *NotFoundError
	if _, err := ReorderAll(siblings(), []string{"Alpha", "Nope"}); !errors.As(err, &notFound) {
		t.Errorf("unknown target error = %v", err)
	}
}

func TestMoveOne_Midpoint(t *testing.T) {
	// Move Gamma before Beta: midpoint of Beta (2000) and Alpha (3000).
	a, err := MoveOne(siblings(), "Gamma", "Beta", Before)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != "c" || a.Key != 2500 {
		t.Errorf("assignment = %+v, want c/2500", a)
	}

	// Move Alpha after Beta: midpoint of Beta (2000) and Gamma (1000).
	a, err = MoveOne(siblings(), "Alpha", "Beta", After)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != "a" || a.Key != 1500 {
		t.Errorf("assignment = %+v, want a/1500", a)
	}
}

func TestMoveOne_MidpointBounds(t *testing.T) {
	items := siblings()
	a, err := MoveOne(items, "Gamma", "Beta", Before)
	if err != nil {
		t.Fatal(err)
	}
	// New key lands strictly between the anchor and its upper neighbor.
	if !(a.Key > 2000 && a.Key < 3000) {
		t.Errorf("key %v not in (2000, 3000)", a.Key)
	}
}

func TestMoveOne_Boundaries(t *testing.T) {
	// Before the first item: no upper neighbor, step past the anchor.
	a, err := MoveOne(siblings(), "Gamma", "Alpha", Before)
	if err != nil {
		t.Fatal(err)
	}
	if a.Key != 3000+Step {
		t.Errorf("key = %v, want %v", a.Key, 3000+Step)
	}

	// After the last item: no lower neighbor.
	a, err = MoveOne(siblings(), "Alpha", "Gamma", After)
	if err != nil {
		t.Fatal(err)
	}
	if a.Key != 1000-Step {
		t.Errorf("key = %v, want %v", a.Key, 1000-Step)
	}
}

func TestMoveOne_TargetExcludedFromNeighborScan(t *testing.T) {
	// Beta is currently directly above Gamma. Moving Beta before Gamma
	// must use Alpha as the upper neighbor, not Beta's own old slot.
	a, err := MoveOne(siblings(), "Beta", "Gamma", Before)
	if err != nil {
		t.Fatal(err)
	}
	if a.Key != 2000 {
		t.Errorf("key = %v, want midpoint of Alpha(3000) and Gamma(1000)", a.Key)
	}
}

func TestMoveOne_Errors(t *testing.T) {
	if _, err := MoveOne(siblings(), "Alpha", "Beta", None); !errors.Is(err, ErrMissingAnchor) {
		t.Errorf("missing direction error = %v", err)
	}
	var notFound *NotFoundError
	if _, err := MoveOne(siblings(), "Nope", "Beta", Before); !errors.As(err, &notFound) {
		t.Errorf("unknown target error = %v", err)
	}
	if _, err := MoveOne(siblings(), "Alpha", "Nope", Before); !errors.As(err, &notFound) {
		t.Errorf("unknown anchor error = %v", err)
	}
}

func TestFindItem_IdentifierBeatsSubstring(t *testing.T) {
	// Items shaped the way the issue command layer builds them: Code
	// carries the identifier, Name prepends it to the title. ENG-4 is a
	// substring of ENG-42's Name, and ENG-42 sits earlier in fetch
	// order, so only the exact Code tier can resolve ENG-4 correctly.
	items := []Item{
		{ID: "id-42", Code: "ENG-42", Name: "ENG-42 Fix login timeout"},
		{ID: "id-4", Code: "ENG-4", Name: "ENG-4 Update docs"},
		{ID: "id-7", Code: "ENG-7", Name: "ENG-7 Refactor parser"},
	}
	idx, ok := findItem("eng-4", items)
	if !ok || items[idx].ID != "id-4" {
		t.Errorf("findItem(eng-4) = %d/%v, want the exact identifier match id-4", idx, ok)
	}
	idx, ok = findItem("ENG-42", items)
	if !ok || items[idx].ID != "id-42" {
		t.Errorf("findItem(ENG-42) = %d/%v, want id-42", idx, ok)
	}
	// Without a Code, an exact Name match still beats a substring hit.
	projects := []Item{
		{ID: "p1", Name: "Mobile App v2"},
		{ID: "p2", Name: "Mobile App"},
	}
	idx, ok = findItem("mobile app", projects)
	if !ok || projects[idx].ID != "p2" {
		t.Errorf("findItem(mobile app) = %d/%v, want the exact name match p2", idx, ok)
	}
}

func TestMoveOne_ShortIdentifierSelectsExactIssue(t *testing.T) {
	items := []Item{
		{ID: "id-42", Code: "ENG-42", Name: "ENG-42 Fix login timeout", Key: 3000},
		{ID: "id-4", Code: "ENG-4", Name: "ENG-4 Update docs", Key: 2000},
		{ID: "id-7", Code: "ENG-7", Name: "ENG-7 Refactor parser", Key: 1000},
	}
	a, err := MoveOne(items, "ENG-4", "ENG-7", After)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != "id-4" {
		t.Fatalf("moved %s, want id-4", a.ID)
	}
	if a.Key != 1000-Step {
		t.Errorf("key = %v, want %v", a.Key, 1000-Step)
	}
}

func TestReorderAll_ShortIdentifierSelectsExactIssue(t *testing.T) {
	items := []Item{
		{ID: "id-42", Code: "ENG-42", Name: "ENG-42 Fix login timeout", Key: 3000},
		{ID: "id-4", Code: "ENG-4", Name: "ENG-4 Update docs", Key: 2000},
	}
	got, err := ReorderAll(items, []string{"ENG-4", "ENG-42"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].ID != "id-4" || got[1].ID != "id-42" {
		t.Fatalf("assignments = [%s %s], want [id-4 id-42]", got[0].ID, got[1].ID)
	}
}

func TestReorderAll_AllNegativeKeys(t *testing.T) {
	items := []Item{
		{ID: "a", Name: "Alpha", Key: -3000},
		{ID: "b", Name: "Beta", Key: -1000},
		{ID: "c", Name: "Gamma", Key: -2000},
	}
	got, err := ReorderAll(items, []string{"Gamma", "Beta"})
	if err != nil {
		t.Fatal(err)
	}
	// Base is max(existing)+Step even when every key is negative; a zero
	// floor would start the run at +1000 instead.
	if got[0].Key != -1000+Step {
		t.Errorf("first key = %v, want %v", got[0].Key, -1000+Step)
	}
	if got[1].Key <= items[0].Key {
		t.Errorf("last target key %v did not stay above untouched sibling %v", got[1].Key, items[0].Key)
	}
}
