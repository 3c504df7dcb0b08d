package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{Name: "x.src", Start: 4, End: 8}
	b := Span{Name: "x.src", Start: 2, End: 6}

	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("Cover = %d-%d, want 2-8", got.Start, got.End)
	}
}

func TestSpanCoverDifferentSources(t *testing.T) {
	a := Span{Name: "x.src", Start: 4, End: 8}
	b := Span{Name: "y.src", Start: 0, End: 100}

	got := a.Cover(b)
	if got != a {
		t.Fatalf("Cover across sources must not change the span")
	}
}

func TestSpanLenAndEmpty(t *testing.T) {
	s := Span{Name: "x.src", Start: 3, End: 3}
	if !s.Empty() {
		t.Errorf("expected empty span")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}
