package source

import (
	"testing"
)

func TestSpanBasics(t *testing.T) {
	s := Span{File: 1, Start: 3, End: 7}
	if s.Empty() {
		t.Error("non-empty span reported empty")
	}
	if s.Len() != 4 {
		t.Errorf("expected len 4, got %d", s.Len())
	}
	if (Span{File: 1, Start: 5, End: 5}).Empty() != true {
		t.Error("zero-length span must be empty")
	}
	if s.String() != "1:3-7" {
		t.Errorf("unexpected String: %s", s.String())
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 4, End: 8}
	b := Span{File: 0, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Errorf("expected 2-8, got %d-%d", got.Start, got.End)
	}

	other := Span{File: 1, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Error("cover across files must be a no-op")
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.rb", []byte("s.gsub('a', 'b')"))
	f := fs.Get(id)

	if got := f.Text(Span{File: id, Start: 2, End: 6}); got != "gsub" {
		t.Errorf("expected %q, got %q", "gsub", got)
	}
	if got := f.Text(Span{File: id, Start: 10, End: 200}); got != "" {
		t.Errorf("out-of-range span must yield empty string, got %q", got)
	}
}
