package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	if k := LookupKeyword("prop"); k != KwProp {
		t.Fatalf("expected KwProp, got %v", k)
	}
	if k := LookupKeyword("Person"); k != Ident {
		t.Fatalf("expected Ident, got %v", k)
	}
}

func TestModifierClassification(t *testing.T) {
	mods := []Kind{KwPartial, KwStatic, KwAbstract, KwVirtual, KwOverride, KwSealed, KwNew, KwRequired}
	for _, k := range mods {
		if !(Token{Kind: k}).IsModifier() {
			t.Fatalf("%v should be a modifier", k)
		}
	}
	if (Token{Kind: KwPub}).IsModifier() {
		t.Fatal("pub is accessibility, not a structural modifier")
	}
	if !(Token{Kind: KwPub}).IsAccessibility() {
		t.Fatal("pub should be accessibility")
	}
}

func TestKindString(t *testing.T) {
	if KwNamespace.String() != "namespace" {
		t.Fatalf("unexpected string %q", KwNamespace.String())
	}
	if Kind(250).String() != "Unknown" {
		t.Fatalf("unexpected string for out-of-range kind")
	}
}
