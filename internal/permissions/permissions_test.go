package permissions

import "testing"

func TestHasAction(t *testing.T) {
	claims := Claims{FnBanks: "C"}

	if !HasAction(claims, FnBanks, ActionView) {
		t.Fatalf("view letter must grant view")
	}
	for _, action := range []rune{ActionCreate, ActionEdit, ActionDelete} {
		if HasAction(claims, FnBanks, action) {
			t.Fatalf("claims %q must not grant %q", claims[FnBanks], action)
		}
	}
	if HasAction(claims, FnSystems, ActionView) {
		t.Fatalf("unknown function code must deny")
	}
	if HasAction(nil, FnBanks, ActionView) {
		t.Fatalf("nil claims must deny")
	}
}

func TestHasActionCaseInsensitive(t *testing.T) {
	claims := Claims{FnBanks: "iaec"}
	if !HasAction(claims, "bancos", ActionDelete) {
		t.Fatalf("letter and code matching must ignore case")
	}
}

func TestHasAnyAction(t *testing.T) {
	claims := Claims{FnEmployees: "IC"}
	if !HasAnyAction(claims, FnEmployees, "AE I") {
		t.Fatalf("any granted letter must pass")
	}
	if HasAnyAction(claims, FnEmployees, "AE") {
		t.Fatalf("no granted letter must deny")
	}
	if HasAnyAction(claims, FnEmployees, "") {
		t.Fatalf("empty action set must deny")
	}
}
