package optimizer

import "regexp"

// tempNamePattern matches the IR generator's synthesized temp names
// (spec.md glossary: "a compiler-synthesized operand name ... matches
// t\d+"). It is used only to tell a TAC instruction's destination name
// apart from a user variable's — not for operand classification, which
// the tagged ir.Operand.Kind handles directly (spec.md §9).
var tempNamePattern = regexp.MustCompile(`^t[0-9]+$`)

func isTempName(name string) bool {
	return tempNamePattern.MatchString(name)
}
