package treesitter

import (
	"strings"

	"github.com/ChainSafe/pysniff/pyparser"
	sitter "github.com/smacker/go-tree-sitter"
)

// converter maps the concrete tree-sitter tree onto pyparser nodes. The
// grammar has no notion of expression context, so the context of every
// identifier is derived from the position it appears in.
type converter struct {
	src []byte
}

func (c *converter) module(root *sitter.Node) *pyparser.Module {
	return &pyparser.Module{Span: c.span(root), Body: c.statements(root)}
}

func (c *converter) span(n *sitter.Node) pyparser.Span {
	return pyparser.Span{
		StartLine: int(n.StartPoint().Row) + 1,
		EndLine:   int(n.EndPoint().Row) + 1,
	}
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

func (c *converter) statements(n *sitter.Node) []pyparser.Node {
	return c.children(n, pyparser.Load)
}

// children converts every named child of n in the given context.
func (c *converter) children(n *sitter.Node, ctx pyparser.Ctx) []pyparser.Node {
	kids := namedChildren(n)
	out := make([]pyparser.Node, 0, len(kids))
	for _, child := range kids {
		out = appendNode(out, c.convert(child, ctx))
	}
	return out
}

func (c *converter) other(n *sitter.Node, ctx pyparser.Ctx) *pyparser.Other {
	return &pyparser.Other{Span: c.span(n), Type: n.Type(), Nodes: c.children(n, ctx)}
}

func (c *converter) leaf(n *sitter.Node) *pyparser.Other {
	return &pyparser.Other{Span: c.span(n), Type: n.Type()}
}

//nolint:cyclop
func (c *converter) convert(n *sitter.Node, ctx pyparser.Ctx) pyparser.Node {
	switch n.Type() {
	case "comment", "line_continuation":
		return nil
	case "function_definition":
		return c.function(n, nil)
	case "class_definition":
		return c.class(n, nil)
	case "decorated_definition":
		return c.decorated(n)
	case "import_statement":
		return &pyparser.Import{Span: c.span(n), Names: c.aliases(n, nil)}
	case "future_import_statement":
		return &pyparser.ImportFrom{Span: c.span(n), Module: "__future__", Names: c.aliases(n, nil)}
	case "import_from_statement":
		return c.importFrom(n)
	case "expression_statement":
		return c.expressionStatement(n)
	case "assignment":
		if n.ChildByFieldName("type") != nil {
			return c.annotated(n)
		}
		return c.assignment(n, c.span(n))
	case "augmented_assignment":
		return c.bind(n, "left", pyparser.Store)
	case "for_statement", "for_in_clause":
		return c.bind(n, "left", pyparser.Store)
	case "named_expression":
		return c.bind(n, "name", pyparser.Store)
	case "type_alias_statement":
		return c.bind(n, "left", pyparser.Store)
	case "as_pattern", "with_item":
		return c.bind(n, "alias", pyparser.Store)
	case "delete_statement":
		return c.other(n, pyparser.Del)
	case "global_statement", "nonlocal_statement":
		return c.leaf(n)
	case "attribute":
		return c.field(n, "object")
	case "keyword_argument":
		return c.field(n, "value")
	case "lambda":
		return c.lambda(n)
	case "parameters", "lambda_parameters":
		return &pyparser.Other{Span: c.span(n), Type: n.Type(), Nodes: c.parameters(n)}
	case "except_clause", "except_group_clause":
		return c.exceptClause(n)
	case "case_clause":
		return c.caseClause(n)
	case "string", "concatenated_string":
		return c.str(n)
	case "identifier", "keyword_identifier":
		return &pyparser.Name{Span: c.span(n), ID: c.text(n), Ctx: ctx}
	case "dotted_name":
		return c.reference(n)
	case "pattern_list", "tuple_pattern", "list_pattern", "tuple", "list",
		"parenthesized_expression", "list_splat_pattern", "list_splat",
		"expression_list", "as_pattern_target":
		return c.other(n, ctx)
	default:
		return c.other(n, pyparser.Load)
	}
}

// bind converts n, giving the child in field the context ctx and every other
// child the Load context.
func (c *converter) bind(n *sitter.Node, field string, ctx pyparser.Ctx) *pyparser.Other {
	target := n.ChildByFieldName(field)
	kids := namedChildren(n)
	out := make([]pyparser.Node, 0, len(kids))
	for _, child := range kids {
		childCtx := pyparser.Load
		if target != nil && sameNode(child, target) {
			childCtx = ctx
		}
		out = appendNode(out, c.convert(child, childCtx))
	}
	return &pyparser.Other{Span: c.span(n), Type: n.Type(), Nodes: out}
}

// field converts only the child in the given field. Used for nodes whose
// other identifiers are not variable references (attribute names, keyword
// argument names).
func (c *converter) field(n *sitter.Node, name string) *pyparser.Other {
	out := c.leaf(n)
	if child := n.ChildByFieldName(name); child != nil {
		out.Nodes = appendNode(out.Nodes, c.convert(child, pyparser.Load))
	}
	return out
}

// reference converts a dotted name used as a value: only its first segment
// is a variable read.
func (c *converter) reference(n *sitter.Node) pyparser.Node {
	kids := namedChildren(n)
	if len(kids) == 0 {
		return c.leaf(n)
	}
	return &pyparser.Other{
		Span:  c.span(n),
		Type:  n.Type(),
		Nodes: []pyparser.Node{&pyparser.Name{Span: c.span(kids[0]), ID: c.text(kids[0]), Ctx: pyparser.Load}},
	}
}

func (c *converter) function(n *sitter.Node, decorators []pyparser.Node) *pyparser.FunctionDef {
	fn := &pyparser.FunctionDef{Span: c.span(n), Decorators: decorators}
	fn.Async = n.ChildCount() > 0 && n.Child(0).Type() == "async"
	if name := n.ChildByFieldName("name"); name != nil {
		fn.Name = c.text(name)
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		fn.Params = appendNode(fn.Params, c.convert(tp, pyparser.Load))
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Params = append(fn.Params, c.parameters(params)...)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		fn.Returns = c.convert(ret, pyparser.Load)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		fn.Body = c.statements(body)
	}
	return fn
}

func (c *converter) class(n *sitter.Node, decorators []pyparser.Node) *pyparser.ClassDef {
	cls := &pyparser.ClassDef{Span: c.span(n), Decorators: decorators}
	if name := n.ChildByFieldName("name"); name != nil {
		cls.Name = c.text(name)
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		cls.Bases = appendNode(cls.Bases, c.convert(tp, pyparser.Load))
	}
	if bases := n.ChildByFieldName("superclasses"); bases != nil {
		cls.Bases = append(cls.Bases, c.children(bases, pyparser.Load)...)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		cls.Body = c.statements(body)
	}
	return cls
}

func (c *converter) decorated(n *sitter.Node) pyparser.Node {
	var decorators []pyparser.Node
	for _, child := range namedChildren(n) {
		if child.Type() == "decorator" {
			decorators = appendNode(decorators, c.convert(child, pyparser.Load))
		}
	}
	def := n.ChildByFieldName("definition")
	if def == nil {
		return c.other(n, pyparser.Load)
	}
	switch def.Type() {
	case "function_definition":
		return c.function(def, decorators)
	case "class_definition":
		return c.class(def, decorators)
	default:
		return c.other(n, pyparser.Load)
	}
}

// parameters keeps annotations and default values; parameter names bind in
// the function scope and are not variable references.
func (c *converter) parameters(n *sitter.Node) []pyparser.Node {
	var out []pyparser.Node
	for _, param := range namedChildren(n) {
		switch param.Type() {
		case "identifier", "list_splat_pattern", "dictionary_splat_pattern",
			"keyword_separator", "positional_separator", "tuple_pattern":
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			for _, name := range []string{"type", "value"} {
				if child := param.ChildByFieldName(name); child != nil {
					out = appendNode(out, c.convert(child, pyparser.Load))
				}
			}
		default:
			out = appendNode(out, c.convert(param, pyparser.Load))
		}
	}
	return out
}

func (c *converter) lambda(n *sitter.Node) *pyparser.Other {
	out := c.leaf(n)
	if params := n.ChildByFieldName("parameters"); params != nil {
		out.Nodes = append(out.Nodes, c.parameters(params)...)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		out.Nodes = appendNode(out.Nodes, c.convert(body, pyparser.Load))
	}
	return out
}

// aliases collects the imported names of an import statement, skipping the
// module node of a from-import.
func (c *converter) aliases(n *sitter.Node, module *sitter.Node) []pyparser.Alias {
	var names []pyparser.Alias
	for _, child := range namedChildren(n) {
		if module != nil && sameNode(child, module) {
			continue
		}
		switch child.Type() {
		case "dotted_name", "identifier":
			names = append(names, pyparser.Alias{Name: c.dotted(child)})
		case "aliased_import":
			alias := pyparser.Alias{}
			if name := child.ChildByFieldName("name"); name != nil {
				alias.Name = c.dotted(name)
			}
			if as := child.ChildByFieldName("alias"); as != nil {
				alias.AsName = c.text(as)
			}
			names = append(names, alias)
		case "wildcard_import":
			names = append(names, pyparser.Alias{Name: "*"})
		}
	}
	return names
}

func (c *converter) importFrom(n *sitter.Node) *pyparser.ImportFrom {
	imp := &pyparser.ImportFrom{Span: c.span(n)}
	module := n.ChildByFieldName("module_name")
	if module != nil {
		if module.Type() == "relative_import" {
			for _, child := range namedChildren(module) {
				switch child.Type() {
				case "import_prefix":
					imp.Level = strings.Count(c.text(child), ".")
				case "dotted_name":
					imp.Module = c.dotted(child)
				}
			}
		} else {
			imp.Module = c.dotted(module)
		}
	}
	imp.Names = c.aliases(n, module)
	return imp
}

// dotted renders a dotted name without the whitespace the grammar allows
// between its segments.
func (c *converter) dotted(n *sitter.Node) string {
	if n.Type() != "dotted_name" {
		return c.text(n)
	}
	kids := namedChildren(n)
	parts := make([]string, 0, len(kids))
	for _, part := range kids {
		parts = append(parts, c.text(part))
	}
	return strings.Join(parts, ".")
}

func (c *converter) expressionStatement(n *sitter.Node) pyparser.Node {
	kids := namedChildren(n)
	if len(kids) == 1 {
		child := kids[0]
		switch child.Type() {
		case "assignment":
			if child.ChildByFieldName("type") != nil {
				return c.annotated(child)
			}
			return c.assignment(child, c.span(n))
		case "augmented_assignment":
			return c.convert(child, pyparser.Load)
		}
		return &pyparser.Expr{Span: c.span(n), Value: c.convert(child, pyparser.Load)}
	}
	tuple := &pyparser.Other{Span: c.span(n), Type: "tuple", Nodes: c.children(n, pyparser.Load)}
	return &pyparser.Expr{Span: c.span(n), Value: tuple}
}

// assignment flattens chained assignments (a = b = value) into one Assign
// with a target per link of the chain.
func (c *converter) assignment(n *sitter.Node, span pyparser.Span) *pyparser.Assign {
	assign := &pyparser.Assign{Span: span}
	for cur := n; ; {
		if left := cur.ChildByFieldName("left"); left != nil {
			assign.Targets = appendNode(assign.Targets, c.convert(left, pyparser.Store))
		}
		right := cur.ChildByFieldName("right")
		if right != nil && right.Type() == "assignment" && right.ChildByFieldName("type") == nil {
			cur = right
			continue
		}
		if right != nil {
			assign.Value = c.convert(right, pyparser.Load)
		}
		return assign
	}
}

// annotated converts "target: annotation = value", which is not an Assign.
func (c *converter) annotated(n *sitter.Node) *pyparser.Other {
	out := &pyparser.Other{Span: c.span(n), Type: "annotated_assignment"}
	for _, name := range []string{"left", "type", "right"} {
		child := n.ChildByFieldName(name)
		if child == nil {
			continue
		}
		ctx := pyparser.Load
		if name == "left" {
			ctx = pyparser.Store
		}
		out.Nodes = appendNode(out.Nodes, c.convert(child, ctx))
	}
	return out
}

// exceptClause binds whatever follows "as".
func (c *converter) exceptClause(n *sitter.Node) *pyparser.Other {
	out := c.leaf(n)
	binding := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.IsNamed() {
			binding = child.Type() == "as"
			continue
		}
		if child.Type() == "comment" {
			continue
		}
		ctx := pyparser.Load
		if binding {
			ctx = pyparser.Store
		}
		out.Nodes = appendNode(out.Nodes, c.convert(child, ctx))
		binding = false
	}
	return out
}

func (c *converter) caseClause(n *sitter.Node) *pyparser.Other {
	out := c.leaf(n)
	for _, child := range namedChildren(n) {
		if child.Type() == "case_pattern" {
			out.Nodes = appendNode(out.Nodes, c.pattern(child))
			continue
		}
		out.Nodes = appendNode(out.Nodes, c.convert(child, pyparser.Load))
	}
	return out
}

// pattern converts a match-statement pattern. Bare names capture, dotted
// names and class names are reads.
func (c *converter) pattern(n *sitter.Node) pyparser.Node {
	switch n.Type() {
	case "identifier":
		return &pyparser.Name{Span: c.span(n), ID: c.text(n), Ctx: pyparser.Store}
	case "dotted_name":
		kids := namedChildren(n)
		if len(kids) == 1 {
			return &pyparser.Name{Span: c.span(n), ID: c.text(kids[0]), Ctx: pyparser.Store}
		}
		return c.reference(n)
	case "class_pattern":
		out := c.leaf(n)
		for _, child := range namedChildren(n) {
			if child.Type() == "dotted_name" {
				out.Nodes = appendNode(out.Nodes, c.reference(child))
				continue
			}
			out.Nodes = appendNode(out.Nodes, c.pattern(child))
		}
		return out
	case "keyword_pattern":
		out := c.leaf(n)
		for i, child := range namedChildren(n) {
			if i == 0 && child.Type() == "identifier" {
				continue
			}
			out.Nodes = appendNode(out.Nodes, c.pattern(child))
		}
		return out
	case "string", "concatenated_string":
		return c.str(n)
	case "comment":
		return nil
	default:
		out := c.leaf(n)
		for _, child := range namedChildren(n) {
			out.Nodes = appendNode(out.Nodes, c.pattern(child))
		}
		return out
	}
}

func (c *converter) str(n *sitter.Node) *pyparser.Str {
	s := &pyparser.Str{Span: c.span(n)}
	parts := []*sitter.Node{n}
	if n.Type() == "concatenated_string" {
		parts = namedChildren(n)
	}
	var value strings.Builder
	for _, part := range parts {
		if part.Type() != "string" {
			continue
		}
		lit := parseLiteral(c.text(part))
		s.Bytes = s.Bytes || lit.bytes
		s.Formatted = s.Formatted || lit.formatted
		value.WriteString(lit.value)
		for _, child := range namedChildren(part) {
			if child.Type() == "interpolation" {
				s.Parts = appendNode(s.Parts, c.other(child, pyparser.Load))
			}
		}
	}
	s.Value = value.String()
	return s
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func appendNode(nodes []pyparser.Node, n pyparser.Node) []pyparser.Node {
	if n == nil {
		return nodes
	}
	return append(nodes, n)
}
