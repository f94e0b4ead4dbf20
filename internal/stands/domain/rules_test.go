package domain

import "testing"

func TestCleanTitle(t *testing.T) {
	rules := DefaultCleaningRules()

	cases := []struct {
		store, title, want string
	}{
		{"UNICENTER", "A Camisa Azul", "Camisa Azul"},
		{"PACÍFICO", "A Camisa Azul", "A Camisa Azul"},
		{"UNICENTER", "Gorra", "Gorra"},
	}
	for _, c := range cases {
		if got := rules.CleanTitle(c.store, c.title); got != c.want {
			t.Errorf("CleanTitle(%q, %q) = %q, want %q", c.store, c.title, got, c.want)
		}
	}
}

func TestCanonicalStore(t *testing.T) {
	rules := DefaultCleaningRules()
	if got := rules.CanonicalStore("JUNCAL"); got != "ALTOPALERMO" {
		t.Errorf("got %q", got)
	}
	if got := rules.CanonicalStore("UNICENTER"); got != "UNICENTER" {
		t.Errorf("got %q", got)
	}
}

func TestParseStoreAliases(t *testing.T) {
	aliases, err := ParseStoreAliases(" JUNCAL=ALTOPALERMO, A = B ,")
	if err != nil {
		t.Fatal(err)
	}
	if aliases["JUNCAL"] != "ALTOPALERMO" || aliases["A"] != "B" || len(aliases) != 2 {
		t.Fatalf("unexpected aliases %v", aliases)
	}
	if _, err := ParseStoreAliases("JUNCAL"); err == nil {
		t.Fatal("expected error for alias without '='")
	}
}
