package syntax

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ChainSafe/pysniff/analyzer"
	"github.com/ChainSafe/pysniff/common/lifo"
	"github.com/ChainSafe/pysniff/pyparser"
)

// session is the state of one Check call.
type session struct {
	file   string
	strict bool
	scopes lifo.Stack[pyparser.Node]
	issues []*analyzer.Issue
}

// Check walks the tree rooted at root and returns the issues found, in
// pre-order of the nodes that produced them.
func Check(file string, root pyparser.Node, strict bool) []*analyzer.Issue {
	s := &session{file: file, strict: strict, issues: make([]*analyzer.Issue, 0)}
	s.visit(root)
	return s.issues
}

func (s *session) visit(n pyparser.Node) {
	switch node := n.(type) {
	case *pyparser.Module:
		s.scopes.Push(node)
		defer s.scopes.Pop()
	case *pyparser.FunctionDef:
		// async def is its own node kind and has no docstring check.
		if !node.Async && !hasDocstring(node.Body) {
			s.report(node.Line(), analyzer.IssueKindMissingDocstring,
				"Missing docstring in function '%s' at line %d", node.Name, node.Line())
		}
		s.scopes.Push(node)
		defer s.scopes.Pop()
	case *pyparser.ClassDef:
		if !hasDocstring(node.Body) {
			s.report(node.Line(), analyzer.IssueKindMissingDocstring,
				"Missing docstring in class '%s' at line %d", node.Name, node.Line())
		}
	case *pyparser.Import:
		s.checkImports(node, node.Names)
	case *pyparser.ImportFrom:
		// Only the first name decides whether this is a wildcard import.
		if len(node.Names) > 0 && node.Names[0].Name == "*" {
			s.report(node.Line(), analyzer.IssueKindWildcardImport,
				"Wildcard import in '%s' at line %d", node.ModuleName(), node.Line())
		} else {
			s.checkImports(node, node.Names)
		}
	case *pyparser.Assign:
		for _, target := range node.Targets {
			name, ok := unparen(target).(*pyparser.Name)
			if !ok {
				continue
			}
			if !IsUsed(s.scope(node), name.ID) {
				s.report(node.Line(), analyzer.IssueKindUnusedVariable,
					"Unused variable '%s' at line %d", name.ID, node.Line())
			}
		}
	}

	for _, child := range n.Children() {
		s.visit(child)
	}
}

func (s *session) checkImports(stmt pyparser.Node, names []pyparser.Alias) {
	for _, alias := range names {
		name := alias.BoundName()
		if !IsUsed(s.scope(stmt), name) {
			s.report(stmt.Line(), analyzer.IssueKindUnusedImport,
				"Unused import '%s' at line %d", name, stmt.Line())
		}
	}
}

// scope returns the subtree searched for reads of a name declared by stmt.
func (s *session) scope(stmt pyparser.Node) pyparser.Node {
	if !s.strict {
		return stmt
	}
	if enclosing, ok := s.scopes.Peek(); ok {
		return enclosing
	}
	return stmt
}

func (s *session) report(line int, kind analyzer.IssueKind, format string, args ...any) {
	s.issues = append(s.issues, &analyzer.Issue{
		File:    s.file,
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// hasDocstring reports whether body starts with a string literal statement
// that is not blank once cleaned like inspect.cleandoc. Bytes and f-strings
// are not docstrings.
func hasDocstring(body []pyparser.Node) bool {
	if len(body) == 0 {
		return false
	}
	expr, ok := body[0].(*pyparser.Expr)
	if !ok {
		return false
	}
	str, ok := unparen(expr.Value).(*pyparser.Str)
	if !ok || str.Bytes || str.Formatted {
		return false
	}
	return !blankDocstring(str.Value)
}

// blankDocstring reports whether cleandoc leaves nothing of doc: the first
// line is whitespace and every other line is empty. Whitespace-only lines
// after the first survive cleaning when no line has content.
func blankDocstring(doc string) bool {
	first, rest, _ := strings.Cut(doc, "\n")
	if strings.TrimLeftFunc(first, isSpace) != "" {
		return false
	}
	for _, line := range strings.Split(rest, "\n") {
		if line != "" {
			return false
		}
	}
	return true
}

// isSpace matches str.isspace, which also counts the ASCII separators
// U+001C to U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// unparen strips grouping parentheses: (a) and ((a)) are a.
func unparen(n pyparser.Node) pyparser.Node {
	for {
		paren, ok := n.(*pyparser.Other)
		if !ok || paren.Type != "parenthesized_expression" || len(paren.Nodes) != 1 {
			return n
		}
		n = paren.Nodes[0]
	}
}
