package trace

import "testing"

func TestFormatBracketAlloc(t *testing.T) {
	ev := Alloc(5, 2)
	got := FormatEvent(ev, FormatBracket)
	want := "['alloc',5,2]"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatBracketRoots(t *testing.T) {
	ev := Roots([]Location{1, 2, 3})
	got := FormatEvent(ev, FormatBracket)
	want := "['roots',1,2,3]"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatBracketSetNumeric(t *testing.T) {
	got := FormatEvent(Set(3, "=5"), FormatBracket)
	if got != "['set',3,'=5']" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatBracketSetRef(t *testing.T) {
	got := FormatEvent(Set(3, "42"), FormatBracket)
	if got != "['set',3,42]" {
		t.Fatalf("got %q", got)
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	kinds := []Kind{KindAlloc, KindFree, KindInit, KindSet, KindRefCount, KindCopy, KindBp, KindRoots, KindLive, KindStop}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" || s == "unknown" {
			t.Fatalf("kind %d produced bad string %q", k, s)
		}
		if seen[s] {
			t.Fatalf("duplicate kind string %q", s)
		}
		seen[s] = true
	}
}
