// Package permissions implements the function-code/action-letter gate shared
// by the API middleware and the web tier. An actor's claim set maps a
// function code ("BANCOS", "SINDICATOS", ...) to a string of granted action
// letters: I=create, A=edit, E=delete, C=view.
package permissions

import "strings"

const (
	ActionCreate = 'I'
	ActionEdit   = 'A'
	ActionDelete = 'E'
	ActionView   = 'C'
)

// Claims maps a function code to the granted action letters.
type Claims map[string]string

// HasAction reports whether the claims grant one action letter for the
// function code. Nil claims or an unknown function code always deny.
func HasAction(claims Claims, functionCode string, action rune) bool {
	if len(claims) == 0 {
		return false
	}
	granted, ok := claims[strings.ToUpper(strings.TrimSpace(functionCode))]
	if !ok {
		return false
	}
	return strings.ContainsRune(strings.ToUpper(granted), toUpperRune(action))
}

// HasAnyAction reports whether the claims grant at least one of the given
// action letters for the function code.
func HasAnyAction(claims Claims, functionCode, actions string) bool {
	for _, action := range actions {
		if HasAction(claims, functionCode, action) {
			return true
		}
	}
	return false
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
