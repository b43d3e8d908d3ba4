// Package rewrite implements the rewriter of spec.md §4.D: it walks a
// module's token stream, replaces comments and Luau type syntax with
// whitespace placeholders that preserve line counts, and rewrites
// require-call argument forms into a runtime-neutral string key.
//
// The original (original_source/src/parser.rs + build.rs) does this over a
// full_moon AST via a VisitorMut. Go's ecosystem has no equivalent Luau
// grammar, so this package works over a flat token stream instead — the
// design notes in spec.md §9 call either approach acceptable, provided the
// contract (transformed source + collected reference list + line
// preservation) holds.
package rewrite

import "strings"

// tokKind classifies a lexical token.
type tokKind int

const (
	tkWhitespace tokKind = iota
	tkComment
	tkString
	tkLongString
	tkNumber
	tkIdent
	tkSymbol
	tkEOF
)

// token is one lexical unit, keeping its exact source text so the stream
// can be reprinted verbatim except where a rewrite rule replaces it.
type token struct {
	kind tokKind
	text string
}

// newlineCount returns how many '\n' characters appear in the token's text.
func (t token) newlineCount() int {
	return strings.Count(t.text, "\n")
}

var symbols3 = []string{"..."}
var symbols2 = []string{"::", "==", "~=", "<=", ">=", "//", "..", "->"}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// tokenize lexes Lua/Luau source into a flat token stream. It is a
// best-effort lexer covering the syntax the rewriter needs to recognize
// (comments, string/long-string literals, numbers, identifiers, and
// punctuation) — it does not validate full language grammar.
func tokenize(src string) []token {
	var toks []token
	i := 0
	n := len(src)

	for i < n {
		c := src[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			start := i
			for i < n && (src[i] == ' ' || src[i] == '\t' || src[i] == '\r' || src[i] == '\n') {
				i++
			}
			toks = append(toks, token{tkWhitespace, src[start:i]})

		case c == '-' && i+1 < n && src[i+1] == '-':
			start := i
			i += 2
			if openLevel, ok := longBracketLevel(src, i); ok {
				end := findLongBracketEnd(src, i+1+openLevel+1, openLevel)
				i = end
				toks = append(toks, token{tkComment, src[start:i]})
			} else {
				for i < n && src[i] != '\n' {
					i++
				}
				toks = append(toks, token{tkComment, src[start:i]})
			}

		case c == '[':
			if level, ok := longBracketLevel(src, i); ok {
				start := i
				end := findLongBracketEnd(src, i+1+level+1, level)
				i = end
				toks = append(toks, token{tkLongString, src[start:i]})
			} else {
				toks = append(toks, token{tkSymbol, "["})
				i++
			}

		case c == '"' || c == '\'':
			start := i
			quote := c
			i++
			for i < n {
				if src[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				if src[i] == quote {
					i++
					break
				}
				if src[i] == '\n' {
					break
				}
				i++
			}
			toks = append(toks, token{tkString, src[start:i]})

		case isDigit(c):
			start := i
			for i < n && (isIdentCont(src[i]) || src[i] == '.' || ((src[i] == '+' || src[i] == '-') && i > start && (src[i-1] == 'e' || src[i-1] == 'E' || src[i-1] == 'p' || src[i-1] == 'P'))) {
				i++
			}
			toks = append(toks, token{tkNumber, src[start:i]})

		case isIdentStart(c):
			start := i
			for i < n && isIdentCont(src[i]) {
				i++
			}
			toks = append(toks, token{tkIdent, src[start:i]})

		default:
			matched := false
			for _, s := range symbols3 {
				if strings.HasPrefix(src[i:], s) {
					toks = append(toks, token{tkSymbol, s})
					i += len(s)
					matched = true
					break
				}
			}
			if matched {
				continue
			}
			for _, s := range symbols2 {
				if strings.HasPrefix(src[i:], s) {
					toks = append(toks, token{tkSymbol, s})
					i += len(s)
					matched = true
					break
				}
			}
			if matched {
				continue
			}
			toks = append(toks, token{tkSymbol, string(c)})
			i++
		}
	}

	return toks
}

// longBracketLevel reports whether src[pos:] begins a long-bracket opener
// ("[", then N "="s, then "["), returning N.
func longBracketLevel(src string, pos int) (int, bool) {
	if pos >= len(src) || src[pos] != '[' {
		return 0, false
	}
	j := pos + 1
	level := 0
	for j < len(src) && src[j] == '=' {
		level++
		j++
	}
	if j < len(src) && src[j] == '[' {
		return level, true
	}
	return 0, false
}

// findLongBracketEnd returns the index just past the matching closer
// ("]", N "="s, "]") for a long bracket opened with the given level,
// starting the search at from. If no closer is found, it returns len(src).
func findLongBracketEnd(src string, from, level int) int {
	closer := "]" + strings.Repeat("=", level) + "]"
	idx := strings.Index(src[from:], closer)
	if idx < 0 {
		return len(src)
	}
	return from + idx + len(closer)
}
