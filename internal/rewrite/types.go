package rewrite

// stripTypes blinds out Luau type syntax (parameter/local annotations,
// return-type annotations, "::" assertions, and "type X = ..." /
// "export type X = ..." declarations), replacing each with a whitespace
// placeholder that preserves the removed span's newline count (spec.md
// §4.D rules 2, per the line-preservation law in §8).
//
// A bare ":" is only ever a type annotation here, never a method-call
// colon: method calls always continue as IDENT "(" (e.g. "obj:method("),
// which this pass special-cases and leaves untouched.
func stripTypes(toks []token) []token {
	sig := significantIndices(toks)
	var ranges [][2]int

	i := 0
	for i < len(sig) {
		t := toks[sig[i]]

		switch {
		case t.kind == tkSymbol && t.text == "::":
			end := scanTypeExprSig(toks, sig, i+1)
			ranges = append(ranges, [2]int{sig[i], rangeEnd(toks, sig, end)})
			i = end

		case t.kind == tkSymbol && t.text == ":":
			if isMethodColon(toks, sig, i) {
				i++
				continue
			}
			end := scanTypeExprSig(toks, sig, i+1)
			ranges = append(ranges, [2]int{sig[i], rangeEnd(toks, sig, end)})
			i = end

		case t.kind == tkIdent && t.text == "type":
			if end, ok := matchTypeDecl(toks, sig, i); ok {
				ranges = append(ranges, [2]int{sig[i], rangeEnd(toks, sig, end)})
				i = end
				continue
			}
			i++

		case t.kind == tkIdent && t.text == "export":
			if i+1 < len(sig) && toks[sig[i+1]].kind == tkIdent && toks[sig[i+1]].text == "type" {
				if end, ok := matchTypeDecl(toks, sig, i+1); ok {
					ranges = append(ranges, [2]int{sig[i], rangeEnd(toks, sig, end)})
					i = end
					continue
				}
			}
			i++

		default:
			i++
		}
	}

	return applyRanges(toks, ranges)
}

// isMethodColon reports whether the ":" at sig[idx] introduces a method
// call ("recv:method(") rather than a type annotation.
func isMethodColon(toks []token, sig []int, idx int) bool {
	return idx+2 < len(sig) &&
		toks[sig[idx+1]].kind == tkIdent &&
		toks[sig[idx+2]].kind == tkSymbol && toks[sig[idx+2]].text == "("
}

// matchTypeDecl attempts to match "Name [<...>] = TypeExpr" starting right
// after the "type" keyword at sig[idx]. It returns the sig index just past
// the declaration on success.
func matchTypeDecl(toks []token, sig []int, idx int) (int, bool) {
	i := idx + 1
	if i >= len(sig) || toks[sig[i]].kind != tkIdent {
		return 0, false
	}
	i++

	if i < len(sig) && toks[sig[i]].kind == tkSymbol && toks[sig[i]].text == "<" {
		depth := 1
		i++
		for i < len(sig) && depth > 0 {
			switch {
			case toks[sig[i]].kind == tkSymbol && toks[sig[i]].text == "<":
				depth++
			case toks[sig[i]].kind == tkSymbol && toks[sig[i]].text == ">":
				depth--
			}
			i++
		}
	}

	if i >= len(sig) || !(toks[sig[i]].kind == tkSymbol && toks[sig[i]].text == "=") {
		return 0, false
	}
	i++

	end := scanTypeExprSig(toks, sig, i)
	return end, true
}

// statementKeywords are reserved words that can never appear inside a type
// expression; encountering one at depth 0 ends the expression. "nil",
// "true", and "false" are deliberately excluded since Luau allows them as
// singleton types (e.g. "number | nil").
var statementKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "for": true, "function": true, "goto": true, "if": true,
	"in": true, "local": true, "not": true, "or": true, "repeat": true,
	"return": true, "then": true, "until": true, "while": true,
}

// scanTypeExprSig consumes a type expression starting at sig index start,
// balancing (), [], {} and <> nesting, and returns the sig index of the
// first token that is not part of it. An operand (name, literal, or closed
// bracket group) directly followed by another name or literal at depth 0
// ends the expression, since the second one starts the next statement.
func scanTypeExprSig(toks []token, sig []int, start int) int {
	i := start
	depth := 0
	afterOperand := false

	for i < len(sig) {
		t := toks[sig[i]]
		isOpen := t.kind == tkSymbol && (t.text == "(" || t.text == "[" || t.text == "{" || t.text == "<")
		isClose := t.kind == tkSymbol && (t.text == ")" || t.text == "]" || t.text == "}" || t.text == ">")

		if depth > 0 {
			switch {
			case isOpen:
				depth++
			case isClose:
				depth--
				afterOperand = depth == 0
			}
			i++
			continue
		}

		switch {
		case isOpen:
			depth++
			i++
		case t.kind == tkIdent && statementKeywords[t.text]:
			return i
		case t.kind == tkIdent || t.kind == tkString || t.kind == tkNumber || t.kind == tkLongString:
			if afterOperand {
				return i
			}
			afterOperand = true
			i++
		case t.kind == tkSymbol && (t.text == "." || t.text == "|" || t.text == "&" || t.text == "?" || t.text == "->"):
			afterOperand = t.text == "?"
			i++
		default:
			return i
		}
	}

	return i
}

// significantIndices returns the toks indices of every non-whitespace
// token, in order.
func significantIndices(toks []token) []int {
	sig := make([]int, 0, len(toks))
	for idx, t := range toks {
		if t.kind != tkWhitespace {
			sig = append(sig, idx)
		}
	}
	return sig
}

// rangeEnd maps a sig-index boundary back to a toks index: the start of
// the next significant token, or len(toks) if sigEnd runs off the end.
func rangeEnd(toks []token, sig []int, sigEnd int) int {
	if sigEnd < len(sig) {
		return sig[sigEnd]
	}
	return len(toks)
}

// applyRanges replaces each non-overlapping, increasing [start,end) range
// of toks with a single whitespace token carrying the range's newline
// count, leaving everything else untouched.
func applyRanges(toks []token, ranges [][2]int) []token {
	out := make([]token, 0, len(toks))
	idx := 0
	for _, r := range ranges {
		start, end := r[0], r[1]
		for idx < start {
			out = append(out, toks[idx])
			idx++
		}
		nl := 0
		for k := idx; k < end; k++ {
			nl += toks[k].newlineCount()
		}
		out = append(out, blankToken(nl))
		idx = end
	}
	for idx < len(toks) {
		out = append(out, toks[idx])
		idx++
	}
	return out
}
