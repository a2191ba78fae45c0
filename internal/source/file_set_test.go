package source

import (
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.em", []byte("let x = 1"), 0)
	id2 := fs.Add("main.em", []byte("let x = 2"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("main.em")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "let x = 1" {
		t.Errorf("old version lost: %q", got)
	}
	if fs.Get(FileID(42)) != nil {
		t.Errorf("expected nil for unknown file")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.em", []byte("let a = 1\nlet b = a / 2\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{9, LineCol{Line: 1, Col: 10}},
		{10, LineCol{Line: 2, Col: 1}},
		{20, LineCol{Line: 2, Col: 11}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.em", []byte("first\nsecond\nthird")))

	for n, want := range map[uint32]string{1: "first", 2: "second", 3: "third", 4: "", 0: ""} {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestNormalization(t *testing.T) {
	content, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(content) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q,%v", content, changed)
	}
	content, had := removeBOM([]byte("\xEF\xBB\xBFlet"))
	if !had || string(content) != "let" {
		t.Fatalf("removeBOM = %q,%v", content, had)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 6}
	b := Span{File: 1, Start: 2, End: 5}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 6}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 9}); got != a {
		t.Errorf("cross-file Cover should keep receiver, got %v", got)
	}
}

func TestFileTextAndFlags(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.em", []byte("echo x"))
	f := fs.Get(id)
	if !f.Has(FileVirtual) || f.Has(FileHadBOM) {
		t.Fatalf("unexpected flags %b", f.Flags)
	}
	if got := f.Text(Span{File: id, Start: 5, End: 6}); got != "x" {
		t.Errorf("Text = %q, want %q", got, "x")
	}
	if got := f.Text(Span{File: id, Start: 4, End: 99}); got != " x" {
		t.Errorf("Text must clamp to content, got %q", got)
	}
	if got := f.Text(Span{File: id, Start: 3, End: 3}); got != "" {
		t.Errorf("empty span must give empty text, got %q", got)
	}
}

func TestSpanPoints(t *testing.T) {
	sp := Span{File: 1, Start: 4, End: 9}
	if p := sp.StartPoint(); !p.Empty() || p.Start != 4 {
		t.Errorf("StartPoint = %v", p)
	}
	if p := sp.EndPoint(); !p.Empty() || p.Start != 9 {
		t.Errorf("EndPoint = %v", p)
	}
	if got := sp.Cover(Span{File: 1, Start: 2, End: 5}); got != (Span{File: 1, Start: 2, End: 9}) {
		t.Errorf("Cover = %v", got)
	}
	if got := sp.Cover(Span{File: 2, Start: 0, End: 50}); got != sp {
		t.Errorf("Cover across files must keep the receiver, got %v", got)
	}
}
