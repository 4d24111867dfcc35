package validation

import "testing"

func TestRequired(t *testing.T) {
	errs := Collect(Required("code", "  "))
	if len(errs["code"]) != 1 {
		t.Fatalf("blank value must fail Required, got %v", errs)
	}
	errs = Collect(Required("code", "001"))
	if !errs.Empty() {
		t.Fatalf("non-blank value must pass, got %v", errs)
	}
}

func TestExactDigits(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"001", true},
		{"", true}, // optional unless paired with Required
		{"01", false},
		{"0011", false},
		{"0a1", false},
	}
	for _, c := range cases {
		errs := Collect(ExactDigits("code", c.value, 3))
		if errs.Empty() != c.ok {
			t.Fatalf("ExactDigits(%q, 3): ok=%v, errs=%v", c.value, c.ok, errs)
		}
	}
}

func TestExactLen(t *testing.T) {
	if errs := Collect(ExactLen("code", "SIN01", 5)); !errs.Empty() {
		t.Fatalf("5-char value must pass, got %v", errs)
	}
	if errs := Collect(ExactLen("code", "SIN", 5)); errs.Empty() {
		t.Fatalf("short value must fail")
	}
	// Rune length, not byte length.
	if errs := Collect(ExactLen("name", "ação1", 5)); !errs.Empty() {
		t.Fatalf("multibyte value of 5 runes must pass, got %v", errs)
	}
}

func TestMaxLen(t *testing.T) {
	if errs := Collect(MaxLen("name", "abc", 3)); !errs.Empty() {
		t.Fatalf("at-limit value must pass, got %v", errs)
	}
	if errs := Collect(MaxLen("name", "abcd", 3)); errs.Empty() {
		t.Fatalf("over-limit value must fail")
	}
}

func TestOneOf(t *testing.T) {
	if errs := Collect(OneOf("state", "SP", "SP", "RJ")); !errs.Empty() {
		t.Fatalf("allowed value must pass, got %v", errs)
	}
	if errs := Collect(OneOf("state", "XX", "SP", "RJ")); errs.Empty() {
		t.Fatalf("disallowed value must fail")
	}
}

func TestCollectMergesMultipleRules(t *testing.T) {
	errs := Collect(
		Required("code", ""),
		ExactDigits("code", "", 3),
		Required("name", ""),
	)
	if len(errs["code"]) != 1 || len(errs["name"]) != 1 {
		t.Fatalf("unexpected merge result: %v", errs)
	}
}
