package scanner

import (
	"testing"

	"loomworks.net/spindle/internal/token"
)

func collect(t *testing.T, input string) []Item {
	t.Helper()
	s := NewFromString(input)
	var items []Item
	for {
		item, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Kind == token.EOF {
			return items
		}
		items = append(items, *item)
	}
}

func TestPlainText(t *testing.T) {
	items := collect(t, "hello world")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Kind != token.TEXT || items[0].Value != "hello world" {
		t.Errorf("got %v %q", items[0].Kind, items[0].Value)
	}
}

func TestDelimitersSplitText(t *testing.T) {
	items := collect(t, "a#b#c")
	kinds := []token.Kind{token.TEXT, token.HASH, token.TEXT, token.HASH, token.TEXT}
	if len(items) != len(kinds) {
		t.Fatalf("expected %d items, got %d: %v", len(kinds), len(items), items)
	}
	for i, k := range kinds {
		if items[i].Kind != k {
			t.Errorf("item %d: expected %v, got %v", i, k, items[i].Kind)
		}
	}
}

func TestBrackets(t *testing.T) {
	items := collect(t, "[x:y]")
	kinds := []token.Kind{token.LBRACKET, token.TEXT, token.RBRACKET}
	if len(items) != len(kinds) {
		t.Fatalf("expected %d items, got %d", len(kinds), len(items))
	}
	if items[1].Value != "x:y" {
		t.Errorf("expected 'x:y', got %q", items[1].Value)
	}
}

func TestEscapes(t *testing.T) {
	items := collect(t, `a\#b\[c\\d`)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d: %v", len(items), items)
	}
	if items[0].Value != `a#b[c\d` {
		t.Errorf("got %q", items[0].Value)
	}
}

func TestDanglingEscape(t *testing.T) {
	items := collect(t, `abc\`)
	if len(items) != 1 || items[0].Value != `abc\` {
		t.Errorf("got %v", items)
	}
}

func TestLineTracking(t *testing.T) {
	s := NewFromString("one\ntwo\n#x#")
	item, err := s.Next()
	if err != nil || item.Kind != token.TEXT {
		t.Fatalf("unexpected: %v %v", item, err)
	}
	if item.Line != 1 {
		t.Errorf("text starts at line 1, got %d", item.Line)
	}
	item, err = s.Next()
	if err != nil || item.Kind != token.HASH {
		t.Fatalf("unexpected: %v %v", item, err)
	}
	if item.Line != 3 {
		t.Errorf("hash on line 3, got %d", item.Line)
	}
}

func TestPeek(t *testing.T) {
	s := NewFromString("#x#")
	p, err := s.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := s.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Kind != n.Kind || p.Value != n.Value {
		t.Errorf("peek %v != next %v", p, n)
	}
}
