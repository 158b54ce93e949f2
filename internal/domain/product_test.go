package domain

import "testing"

func TestCatalog_FindByName(t *testing.T) {
	t.Parallel()

	catalog := Catalog{
		"CHOCOLATE": {ID: "CHOCOLATE", Name: "チョコレート", Amount: 10, Currency: "JPY"},
	}

	if _, ok := catalog.FindByName("チョコレート"); !ok {
		t.Fatalf("expected exact name to match")
	}

	// Strict matching: no trimming, no case folding.
	for _, text := range []string{"チョコレート ", " チョコレート", "ちょこれーと", "CHOCOLATE", ""} {
		if _, ok := catalog.FindByName(text); ok {
			t.Fatalf("expected %q not to match", text)
		}
	}
}
