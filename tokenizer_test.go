package blaze

import (
	"reflect"
	"testing"
)

func TestTokenizer_Words_Basic(t *testing.T) {
	tok := NewTokenizer("The quick brown fox", nil, DefaultPunctuation())
	got := tok.Words()
	want := []string{"the", "quick", "brown", "fox"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

// TestTokenizer_Words_PossessiveQuirk documents the mid-token substitution
// quirk inherited from the reference tokenizer: the pattern 's|,|\. has no
// anchoring, so it strips every occurrence of 's, a comma, or a period from
// anywhere inside a token. This is preserved intentionally.
func TestTokenizer_Words_PossessiveQuirk(t *testing.T) {
	tok := NewTokenizer("the cat's toy", nil, DefaultPunctuation())
	got := tok.Words()
	want := []string{"the", "cat", "toy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

func TestTokenizer_Words_StopwordFiltering(t *testing.T) {
	tok := NewTokenizer("the quick fox", []string{"the"}, DefaultPunctuation())
	got := tok.Words()
	want := []string{"quick", "fox"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

func TestTokenizer_Words_Empty(t *testing.T) {
	tok := NewTokenizer("", nil, DefaultPunctuation())
	got := tok.Words()
	if len(got) != 0 {
		t.Errorf("Words() = %v, want empty", got)
	}
}

func TestTokenizer_Sentences_Basic(t *testing.T) {
	tok := NewTokenizer("One. Two? Three!", nil, nil)
	got := tok.Sentences()
	if len(got) != 3 {
		t.Errorf("Sentences() = %v, want 3 sentences", got)
	}
}

func TestTokenizer_Paragraphs_Basic(t *testing.T) {
	tok := NewTokenizer("First paragraph.\n\nSecond paragraph.\nStill second.", nil, nil)
	got := tok.Paragraphs()
	want := []string{"First paragraph.", "Second paragraph.", "Still second."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs() = %v, want %v", got, want)
	}
}

func TestTokenizer_Paragraphs_NoTrailingBlank(t *testing.T) {
	tok := NewTokenizer("only one paragraph\n\n\n", nil, nil)
	got := tok.Paragraphs()
	want := []string{"only one paragraph"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs() = %v, want %v", got, want)
	}
}
