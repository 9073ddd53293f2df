package pyparser

// Kind identifies the variant of a Node.
type Kind int

const (
	KindModule Kind = iota
	KindFunctionDef
	KindAsyncFunctionDef
	KindClassDef
	KindImport
	KindImportFrom
	KindAssign
	KindExpr
	KindStr
	KindName
	KindOther
)

var kindNames = [...]string{
	KindModule:           "Module",
	KindFunctionDef:      "FunctionDef",
	KindAsyncFunctionDef: "AsyncFunctionDef",
	KindClassDef:         "ClassDef",
	KindImport:           "Import",
	KindImportFrom:       "ImportFrom",
	KindAssign:           "Assign",
	KindExpr:             "Expr",
	KindStr:              "Str",
	KindName:             "Name",
	KindOther:            "Other",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Ctx tells whether a Name is read, bound or deleted.
type Ctx int

const (
	Load Ctx = iota
	Store
	Del
)

func (c Ctx) String() string {
	switch c {
	case Load:
		return "Load"
	case Store:
		return "Store"
	case Del:
		return "Del"
	default:
		return "Unknown"
	}
}

// Node is an element of the syntax tree.
type Node interface {
	Kind() Kind
	// Line is the 1-based line the node starts on.
	Line() int
	// Children returns the direct sub-nodes in source order.
	Children() []Node
}

// Span is the 1-based line range a node covers.
type Span struct {
	StartLine int
	EndLine   int
}

func (s Span) Line() int { return s.StartLine }

type Module struct {
	Span
	Body []Node
}

func (*Module) Kind() Kind { return KindModule }
func (m *Module) Children() []Node { return m.Body }

// FunctionDef is a def or async def statement. Params holds the annotations
// and default values of the parameters, parameter names are not nodes.
type FunctionDef struct {
	Span
	Name       string
	Async      bool
	Decorators []Node
	Params     []Node
	Returns    Node
	Body       []Node
}

func (f *FunctionDef) Kind() Kind {
	if f.Async {
		return KindAsyncFunctionDef
	}
	return KindFunctionDef
}

func (f *FunctionDef) Children() []Node {
	out := make([]Node, 0, len(f.Decorators)+len(f.Params)+len(f.Body)+1)
	out = append(out, f.Decorators...)
	out = append(out, f.Params...)
	if f.Returns != nil {
		out = append(out, f.Returns)
	}
	return append(out, f.Body...)
}

type ClassDef struct {
	Span
	Name       string
	Decorators []Node
	Bases      []Node
	Body       []Node
}

func (*ClassDef) Kind() Kind { return KindClassDef }

func (c *ClassDef) Children() []Node {
	out := make([]Node, 0, len(c.Decorators)+len(c.Bases)+len(c.Body))
	out = append(out, c.Decorators...)
	out = append(out, c.Bases...)
	return append(out, c.Body...)
}

// Alias is one imported name. AsName is empty when no "as" clause is given.
type Alias struct {
	Name   string
	AsName string
}

// BoundName is the name the import binds in the importing scope.
func (a Alias) BoundName() string {
	if a.AsName != "" {
		return a.AsName
	}
	return a.Name
}

type Import struct {
	Span
	Names []Alias
}

func (*Import) Kind() Kind { return KindImport }
func (*Import) Children() []Node { return nil }

// ImportFrom is a "from M import ..." statement. Level counts the leading
// dots of a relative import, Module excludes them.
type ImportFrom struct {
	Span
	Module string
	Level  int
	Names  []Alias
}

func (*ImportFrom) Kind() Kind { return KindImportFrom }
func (*ImportFrom) Children() []Node { return nil }

// ModuleName returns the module without its relative dots, or "None" for
// "from . import x" where there is none.
func (i *ImportFrom) ModuleName() string {
	if i.Module == "" {
		return "None"
	}
	return i.Module
}

// Assign is a plain assignment; a = b = v has two targets.
type Assign struct {
	Span
	Targets []Node
	Value   Node
}

func (*Assign) Kind() Kind { return KindAssign }

func (a *Assign) Children() []Node {
	out := make([]Node, 0, len(a.Targets)+1)
	out = append(out, a.Targets...)
	if a.Value != nil {
		out = append(out, a.Value)
	}
	return out
}

// Expr is an expression used as a statement.
type Expr struct {
	Span
	Value Node
}

func (*Expr) Kind() Kind { return KindExpr }

func (e *Expr) Children() []Node {
	if e.Value == nil {
		return nil
	}
	return []Node{e.Value}
}

// Str is a string literal, possibly implicitly concatenated. Value is the
// decoded text for plain strings; Parts holds the interpolated expressions of
// f-strings.
type Str struct {
	Span
	Value     string
	Bytes     bool
	Formatted bool
	Parts     []Node
}

func (*Str) Kind() Kind { return KindStr }
func (s *Str) Children() []Node { return s.Parts }

type Name struct {
	Span
	ID  string
	Ctx Ctx
}

func (*Name) Kind() Kind { return KindName }
func (*Name) Children() []Node { return nil }

// Other is any syntax the linter has no dedicated rule for. Type is the
// grammar's name for it.
type Other struct {
	Span
	Type  string
	Nodes []Node
}

func (*Other) Kind() Kind { return KindOther }
func (o *Other) Children() []Node { return o.Nodes }
