package syntax

import "github.com/ChainSafe/pysniff/pyparser"

// IsUsed reports whether name is read (a Name in Load context) anywhere in
// scope, scope itself included.
//
// The unused import and variable checks pass the declaring statement as
// scope, so a read elsewhere in the file is not seen: `x = 5` followed by
// `print(x)` still reports x. Strict mode passes the enclosing function or
// module instead.
func IsUsed(scope pyparser.Node, name string) bool {
	return pyparser.Find(scope, func(n pyparser.Node) bool {
		ref, ok := n.(*pyparser.Name)
		return ok && ref.ID == name && ref.Ctx == pyparser.Load
	}) != nil
}
