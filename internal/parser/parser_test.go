package parser

import (
	"strings"
	"testing"

	"loomworks.net/spindle/internal/node"
)

func TestPlainTextRoundTrip(t *testing.T) {
	nodes, err := Parse("plain text with no references")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	text, ok := nodes[0].(node.Text)
	if !ok {
		t.Fatalf("expected Text node, got %T", nodes[0])
	}
	if text.Value != "plain text with no references" {
		t.Errorf("got %q", text.Value)
	}
}

func TestReference(t *testing.T) {
	nodes, err := Parse("hello #name#!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	ref, ok := nodes[1].(node.Ref)
	if !ok {
		t.Fatalf("expected Ref, got %T", nodes[1])
	}
	if ref.Name != "name" || len(ref.Modifiers) != 0 {
		t.Errorf("got %+v", ref)
	}
}

func TestModifierChain(t *testing.T) {
	nodes, err := Parse("#animal.capitalize.s#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref := nodes[0].(node.Ref)
	if ref.Name != "animal" {
		t.Errorf("name: got %q", ref.Name)
	}
	if len(ref.Modifiers) != 2 ||
		ref.Modifiers[0].Name != "capitalize" ||
		ref.Modifiers[1].Name != "s" {
		t.Errorf("modifiers: got %+v", ref.Modifiers)
	}
}

func TestModifierArgs(t *testing.T) {
	nodes, err := Parse("#word.replace(a,b).suffix(!)#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref := nodes[0].(node.Ref)
	if len(ref.Modifiers) != 2 {
		t.Fatalf("expected 2 modifiers, got %d", len(ref.Modifiers))
	}
	rep := ref.Modifiers[0]
	if rep.Name != "replace" || len(rep.Args) != 2 || rep.Args[0] != "a" || rep.Args[1] != "b" {
		t.Errorf("replace: got %+v", rep)
	}
	suf := ref.Modifiers[1]
	if suf.Name != "suffix" || len(suf.Args) != 1 || suf.Args[0] != "!" {
		t.Errorf("suffix: got %+v", suf)
	}
}

func TestDotInsideArgsDoesNotChain(t *testing.T) {
	nodes, err := Parse("#v.suffix(a.b)#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref := nodes[0].(node.Ref)
	if len(ref.Modifiers) != 1 || ref.Modifiers[0].Args[0] != "a.b" {
		t.Errorf("got %+v", ref.Modifiers)
	}
}

func TestTagAssignment(t *testing.T) {
	nodes, err := Parse("[hero:Ada]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl, ok := nodes[0].(node.TagDecl)
	if !ok {
		t.Fatalf("expected TagDecl, got %T", nodes[0])
	}
	if decl.Name != "hero" {
		t.Errorf("name: got %q", decl.Name)
	}
	if len(decl.Value) != 1 || decl.Value[0].(node.Text).Value != "Ada" {
		t.Errorf("value: got %+v", decl.Value)
	}
}

func TestTagAssignmentWithReferenceValue(t *testing.T) {
	nodes, err := Parse("[hero:#name#]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := nodes[0].(node.TagDecl)
	if len(decl.Value) != 1 {
		t.Fatalf("expected 1 value node, got %d", len(decl.Value))
	}
	if ref, ok := decl.Value[0].(node.Ref); !ok || ref.Name != "name" {
		t.Errorf("got %+v", decl.Value[0])
	}
}

func TestNestedTagAssignment(t *testing.T) {
	nodes, err := Parse("[outer:a[inner:b]c]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := nodes[0].(node.TagDecl)
	if decl.Name != "outer" || len(decl.Value) != 3 {
		t.Fatalf("got %+v", decl)
	}
	inner, ok := decl.Value[1].(node.TagDecl)
	if !ok || inner.Name != "inner" {
		t.Errorf("inner: got %+v", decl.Value[1])
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"unterminated reference": "#name",
		"empty reference":        "before ## after",
		"unclosed assignment":    "[x:y",
		"stray close bracket":    "a]b",
		"missing colon":          "[nocolon]",
		"empty tag name":         "[:value]",
		"empty modifier":         "#a.#",
		"unclosed modifier args": "#a.mod(x#",
	}
	for name, input := range cases {
		if _, err := Parse(input); err == nil {
			t.Errorf("%s: expected error for %q", name, input)
		}
	}
}

func TestErrorCarriesLine(t *testing.T) {
	_, err := Parse("line one\nline two #broken")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected 'line 2' in error, got %q", err.Error())
	}
}

func TestEscapedDelimitersAreText(t *testing.T) {
	nodes, err := Parse(`\#not a ref\# and \[not a tag\]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	if nodes[0].(node.Text).Value != "#not a ref# and [not a tag]" {
		t.Errorf("got %q", nodes[0].(node.Text).Value)
	}
}

func TestCandidateWeight(t *testing.T) {
	nodes, err := ParseCandidate("red,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d: %v", len(nodes), nodes)
	}
	if nodes[0].(node.Text).Value != "red" {
		t.Errorf("text: got %+v", nodes[0])
	}
	if w, ok := nodes[1].(node.Weight); !ok || w.Value != 3 {
		t.Errorf("weight: got %+v", nodes[1])
	}
}

func TestCandidateWeightAfterReference(t *testing.T) {
	nodes, err := ParseCandidate("#color#,2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if w, ok := nodes[1].(node.Weight); !ok || w.Value != 2 {
		t.Errorf("weight: got %+v", nodes[1])
	}
}

func TestWeightOnlyInCandidateMode(t *testing.T) {
	nodes, err := Parse("red,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].(node.Text).Value != "red,3" {
		t.Errorf("Parse must keep ',3' literal, got %v", nodes)
	}
}

func TestNonWeightSuffixStaysText(t *testing.T) {
	for _, input := range []string{"red,0", "red,-1", "red,", "red,3x"} {
		nodes, err := ParseCandidate(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if len(nodes) != 1 {
			t.Errorf("%q: expected literal text, got %v", input, nodes)
		}
	}
}

func TestSourceRoundTrip(t *testing.T) {
	inputs := []string{
		"#animal.capitalize#",
		"[hero:#name#]",
		"a #b# c",
	}
	for _, input := range inputs {
		nodes, err := Parse(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if got := node.Source(nodes); got != input {
			t.Errorf("%q: round-tripped to %q", input, got)
		}
	}
}
