package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// firstInvalid returns the first node in document order that is an ERROR or
// MISSING node, or a construct the grammar accepts but Python 3 rejects.
func firstInvalid(n *sitter.Node, src []byte) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsError() || n.IsMissing() || rejected(n, src) {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstInvalid(n.Child(i), src); bad != nil {
			return bad
		}
	}
	if n.HasError() {
		return n
	}
	return nil
}

// rejected covers the Python 2 forms the grammar keeps and the checks the
// Python compiler makes while building its syntax tree.
func rejected(n *sitter.Node, src []byte) bool {
	switch n.Type() {
	case "print_statement":
		return !printIsExpression(n.Content(src))
	case "exec_statement":
		return true
	case "except_clause", "except_group_clause":
		// except E, e:
		for i := 0; i < int(n.ChildCount()); i++ {
			if child := n.Child(i); !child.IsNamed() && child.Type() == "," {
				return true
			}
		}
		return false
	case "integer":
		return invalidInteger(n.Content(src))
	case "parameters", "lambda_parameters":
		return invalidParameters(n)
	case "delete_statement":
		for _, target := range namedChildren(n) {
			if !deletable(target) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// printIsExpression reports whether a print statement also reads as a
// Python 3 expression with print as its left operand, as in
// "print >>sys.stderr, msg" or "print -1".
func printIsExpression(text string) bool {
	rest := strings.TrimLeft(strings.TrimPrefix(text, "print"), " \t\\\r\n")
	return rest != "" && strings.ContainsRune("-+*/%@&|^<>=!([.,", rune(rest[0]))
}

// invalidInteger rejects long suffixes, trailing underscores and decimal
// literals with leading zeros such as 08 or 0777. 00 stays valid.
func invalidInteger(text string) bool {
	lower := strings.ToLower(text)
	switch {
	case strings.HasSuffix(lower, "l"):
		return true
	case strings.HasSuffix(lower, "j"),
		strings.HasPrefix(lower, "0x"), strings.HasPrefix(lower, "0o"), strings.HasPrefix(lower, "0b"):
		return false
	case strings.HasSuffix(lower, "_"):
		return true
	}
	digits := strings.ReplaceAll(lower, "_", "")
	return len(digits) > 1 && digits[0] == '0' && strings.Trim(digits, "0") != ""
}

// invalidParameters rejects parameters after **kwargs and positional
// parameters without a default after one with a default.
func invalidParameters(n *sitter.Node) bool {
	var seenKwargs, seenDefault, keywordOnly bool
	for _, param := range namedChildren(n) {
		if seenKwargs {
			return true
		}
		switch param.Type() {
		case "dictionary_splat_pattern":
			seenKwargs = true
		case "list_splat_pattern", "keyword_separator":
			keywordOnly = true
		case "default_parameter", "typed_default_parameter":
			seenDefault = true
		case "typed_parameter":
			switch splat := firstNamed(param); {
			case splat != nil && splat.Type() == "dictionary_splat_pattern":
				seenKwargs = true
			case splat != nil && splat.Type() == "list_splat_pattern":
				keywordOnly = true
			case seenDefault && !keywordOnly:
				return true
			}
		case "identifier", "tuple_pattern":
			if seenDefault && !keywordOnly {
				return true
			}
		}
	}
	return false
}

func deletable(n *sitter.Node) bool {
	switch n.Type() {
	case "identifier", "keyword_identifier", "attribute", "subscript":
		return true
	case "tuple", "list", "parenthesized_expression", "expression_list",
		"pattern_list", "tuple_pattern", "list_pattern":
		for _, child := range namedChildren(n) {
			if !deletable(child) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func firstNamed(n *sitter.Node) *sitter.Node {
	kids := namedChildren(n)
	if len(kids) == 0 {
		return nil
	}
	return kids[0]
}
