package diag

import (
	"testing"

	"burnish/internal/source"
)

func TestBagRespectsCap(t *testing.T) {
	bag := NewBag(2)
	for range 5 {
		bag.Add(Diagnostic{Severity: SevWarning, Code: LexUnknownChar, Message: "x"})
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
	if bag.Add(Diagnostic{}) {
		t.Error("Add over cap reported success")
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := NewBag(8)
	if bag.HasWarnings() || bag.HasErrors() {
		t.Error("empty bag reports findings")
	}
	bag.Add(Diagnostic{Severity: SevWarning})
	if !bag.HasWarnings() {
		t.Error("warning not seen")
	}
	if bag.HasErrors() {
		t.Error("warning counted as error")
	}
	bag.Add(Diagnostic{Severity: SevError})
	if !bag.HasErrors() {
		t.Error("error not seen")
	}
}

func TestSortStableOrdersByPosition(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Diagnostic{Severity: SevWarning, Primary: source.Span{Start: 20}})
	bag.Add(Diagnostic{Severity: SevError, Primary: source.Span{Start: 5}})
	bag.Add(Diagnostic{Severity: SevWarning, Primary: source.Span{Start: 5}})
	bag.SortStable()

	items := bag.Items()
	if items[0].Primary.Start != 5 || items[0].Severity != SevError {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Primary.Start != 5 || items[1].Severity != SevWarning {
		t.Errorf("items[1] = %+v", items[1])
	}
	if items[2].Primary.Start != 20 {
		t.Errorf("items[2] = %+v", items[2])
	}
}
