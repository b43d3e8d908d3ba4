package rewrite

import "strings"

// Rewrite applies the full transform pipeline to a module's source text:
// comments and Luau type syntax are blanked out preserving line counts, and
// require-call arguments are normalized into the runtime's string-table
// form (spec.md §4.D). It returns the transformed source, the raw
// references collected from require calls in encounter order, and any
// rewrite errors (an argument-less require call).
func Rewrite(source string) (transformed string, imports []string, errs []string) {
	toks := tokenize(source)
	toks = stripComments(toks)
	toks = stripTypes(toks)
	toks, imports, errs = rewriteRequires(toks)
	return render(toks), imports, errs
}

// render reprints a token stream back into source text.
func render(toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.text)
	}
	return b.String()
}
