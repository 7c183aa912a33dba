package blaze

import "testing"

func TestNewInvertedIndex_Empty(t *testing.T) {
	idx := NewInvertedIndex()
	if idx.TermCount() != 0 {
		t.Errorf("TermCount() = %d, want 0", idx.TermCount())
	}
	if idx.TotalTerms() != 0 {
		t.Errorf("TotalTerms() = %d, want 0", idx.TotalTerms())
	}
}

func TestInvertedIndex_AddPosting_SingleOccurrence(t *testing.T) {
	idx := NewInvertedIndex()
	idx.AddPosting("fox", 0)

	postings := idx.Postings("fox")
	if postings[0] != 1 {
		t.Errorf("Postings(\"fox\")[0] = %d, want 1", postings[0])
	}
	if idx.DocFrequency("fox") != 1 {
		t.Errorf("DocFrequency(\"fox\") = %d, want 1", idx.DocFrequency("fox"))
	}
}

func TestInvertedIndex_AddPosting_AccumulatesFrequency(t *testing.T) {
	idx := NewInvertedIndex()
	idx.AddPosting("fox", 0)
	idx.AddPosting("fox", 0)
	idx.AddPosting("fox", 0)

	postings := idx.Postings("fox")
	if postings[0] != 3 {
		t.Errorf("Postings(\"fox\")[0] = %d, want 3", postings[0])
	}
	if idx.DocFrequency("fox") != 1 {
		t.Errorf("DocFrequency(\"fox\") = %d, want 1 (one distinct document)", idx.DocFrequency("fox"))
	}
}

func TestInvertedIndex_AddPosting_MultipleDocuments(t *testing.T) {
	idx := NewInvertedIndex()
	idx.AddPosting("fox", 0)
	idx.AddPosting("fox", 1)
	idx.AddPosting("fox", 1)

	postings := idx.Postings("fox")
	if postings[0] != 1 || postings[1] != 2 {
		t.Errorf("Postings(\"fox\") = %v, want {0:1, 1:2}", postings)
	}
	if idx.DocFrequency("fox") != 2 {
		t.Errorf("DocFrequency(\"fox\") = %d, want 2", idx.DocFrequency("fox"))
	}
}

func TestInvertedIndex_Postings_UnknownTerm(t *testing.T) {
	idx := NewInvertedIndex()
	postings := idx.Postings("missing")
	if len(postings) != 0 {
		t.Errorf("Postings(\"missing\") = %v, want empty map", postings)
	}
}

func TestInvertedIndex_DocFrequency_UnknownTerm(t *testing.T) {
	idx := NewInvertedIndex()
	if got := idx.DocFrequency("missing"); got != 0 {
		t.Errorf("DocFrequency(\"missing\") = %d, want 0", got)
	}
}

func TestInvertedIndex_Terms_AscendingOrder(t *testing.T) {
	idx := NewInvertedIndex()
	idx.AddPosting("zebra", 0)
	idx.AddPosting("apple", 0)
	idx.AddPosting("mango", 0)

	got := idx.Terms()
	want := []string{"apple", "mango", "zebra"}
	if len(got) != len(want) {
		t.Fatalf("Terms() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Terms()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInvertedIndex_SetPosting_Overwrites(t *testing.T) {
	idx := NewInvertedIndex()
	idx.SetPosting("fox", 0, 2)
	idx.SetPosting("fox", 0, 5)

	postings := idx.Postings("fox")
	if postings[0] != 5 {
		t.Errorf("Postings(\"fox\")[0] = %d, want 5", postings[0])
	}
	if idx.TotalTerms() != 5 {
		t.Errorf("TotalTerms() = %d, want 5", idx.TotalTerms())
	}
}
