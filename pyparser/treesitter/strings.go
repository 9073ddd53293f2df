package treesitter

import (
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

type literal struct {
	value     string
	bytes     bool
	formatted bool
	raw       bool
}

// parseLiteral splits the source text of a single string literal into its
// prefix flags and body. Escapes are decoded for non-raw, non-f-strings.
func parseLiteral(text string) literal {
	var lit literal
	i := 0
	for i < len(text) && text[i] != '"' && text[i] != '\'' {
		switch text[i] {
		case 'b', 'B':
			lit.bytes = true
		case 'f', 'F':
			lit.formatted = true
		case 'r', 'R':
			lit.raw = true
		}
		i++
	}
	body := text[i:]
	quote := ""
	switch {
	case strings.HasPrefix(body, `"""`), strings.HasPrefix(body, `'''`):
		quote = body[:3]
	case body != "":
		quote = body[:1]
	}
	content := strings.TrimPrefix(body, quote)
	content = strings.TrimSuffix(content, quote)
	// Source newlines inside the literal read as \n whatever the file uses.
	content = newlines.Replace(content)

	if lit.raw || lit.formatted {
		lit.value = content
	} else {
		lit.value = unescape(content, lit.bytes)
	}
	return lit
}

// unescape decodes Python backslash escapes. Unknown escapes are kept
// verbatim, as Python does, and so are \N{...} names that cannot be resolved.
func unescape(s string, isBytes bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 == len(s) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch esc := s[i]; esc {
		case '\n':
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case '\\', '\'', '"':
			b.WriteByte(esc)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			end := i + 1
			for end < len(s) && end < i+3 && s[end] >= '0' && s[end] <= '7' {
				end++
			}
			code, _ := strconv.ParseUint(s[i:end], 8, 32)
			writeCode(&b, rune(code), isBytes)
			i = end - 1
		case 'x', 'u', 'U':
			width := 2
			switch esc {
			case 'u':
				width = 4
			case 'U':
				width = 8
			}
			var code uint64
			err := strconv.ErrSyntax
			if (esc == 'x' || !isBytes) && i+1+width <= len(s) {
				code, err = strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			}
			if err != nil {
				b.WriteByte('\\')
				b.WriteByte(esc)
				continue
			}
			writeCode(&b, rune(code), isBytes)
			i += width
		case 'N':
			if !isBytes && i+1 < len(s) && s[i+1] == '{' {
				if end := strings.IndexByte(s[i+2:], '}'); end >= 0 {
					if r, ok := lookupRune(s[i+2 : i+2+end]); ok {
						b.WriteRune(r)
						i += 2 + end
						continue
					}
				}
			}
			b.WriteString(`\N`)
		default:
			b.WriteByte('\\')
			b.WriteByte(esc)
		}
	}
	return b.String()
}

var (
	runeNamesOnce sync.Once
	runeNames     map[string]rune
)

// lookupRune resolves a Unicode character name, ignoring case. The name
// table is built on first use.
func lookupRune(name string) (rune, bool) {
	name = strings.ToUpper(name)
	if hex, ok := strings.CutPrefix(name, "CJK UNIFIED IDEOGRAPH-"); ok {
		code, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !unicode.Is(unicode.Unified_Ideograph, rune(code)) {
			return 0, false
		}
		return rune(code), true
	}
	runeNamesOnce.Do(func() {
		runeNames = make(map[string]rune, 1<<15)
		for r := rune(0); r <= unicode.MaxRune; r++ {
			if n := runenames.Name(r); n != "" && n[0] != '<' {
				runeNames[n] = r
			}
		}
	})
	r, ok := runeNames[name]
	return r, ok
}

func writeCode(b *strings.Builder, code rune, isBytes bool) {
	if isBytes || code < utf8.RuneSelf {
		b.WriteByte(byte(code))
		return
	}
	b.WriteRune(code)
}
