// Package treesitter implements pyparser.Parser on top of the tree-sitter
// Python grammar.
package treesitter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ChainSafe/pysniff/pyparser"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

const (
	// DefaultMaxFileSize is the largest source accepted unless overridden.
	DefaultMaxFileSize int64 = 10 << 20
	// WarnFileSize is the size above which parsing is logged.
	WarnFileSize = 1 << 20
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxFileSize sets the maximum source size in bytes. Non-positive values
// are ignored.
func WithMaxFileSize(size int64) Option {
	return func(p *Parser) {
		if size > 0 {
			p.maxFileSize = size
		}
	}
}

// Parser parses Python 3 source. Every Parse call uses its own tree-sitter
// parser, so a Parser may be shared.
type Parser struct {
	maxFileSize int64
}

// NewParser creates a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds the syntax tree of src. Sources tree-sitter cannot parse
// without error recovery, or that only parse as Python 2, are rejected with a
// *pyparser.SyntaxError.
func (p *Parser) Parse(ctx context.Context, filename string, src []byte) (*pyparser.Module, error) {
	if int64(len(src)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: %s has %d bytes, limit is %d", pyparser.ErrFileTooLarge, filename, len(src), p.maxFileSize)
	}
	if len(src) > WarnFileSize {
		slog.Warn("parsing large file", slog.String("file", filename), slog.Int("size_bytes", len(src)))
	}
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", pyparser.ErrInvalidContent, filename)
	}
	src = bytes.TrimPrefix(src, utf8BOM)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse of %s failed: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned no root node for %s", filename)
	}
	if bad := firstInvalid(root, src); bad != nil {
		return nil, &pyparser.SyntaxError{
			File: filename,
			Line: int(bad.StartPoint().Row) + 1,
			Text: snippet(bad, src),
		}
	}

	conv := &converter{src: src}
	return conv.module(root), nil
}

func snippet(n *sitter.Node, src []byte) string {
	if n.IsMissing() {
		return "missing " + n.Type()
	}
	text := n.Content(src)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > 40 {
		text = string(runes[:40]) + "..."
	}
	return text
}
