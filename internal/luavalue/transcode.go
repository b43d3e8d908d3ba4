// Package luavalue implements the JSON→script-value transcoder of
// spec.md §4.C: a recursive structural mapping from a decoded JSON value
// to a Lua literal expression that evaluates to the equivalent value.
//
// Ported from the original Rust `json_to_lua` (original_source/src/parser.rs),
// which builds a full_moon table-constructor AST node; here we print the
// literal text directly since nothing downstream re-parses it.
package luavalue

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DecodeJSON parses raw JSON bytes into the interface{} shape Transcode
// expects, giving graph callers a single import for the JSON module path.
func DecodeJSON(raw []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Transcode renders a decoded JSON value (as produced by encoding/json's
// Unmarshal into interface{}) as a Lua literal expression.
func Transcode(v interface{}) string {
	var b strings.Builder
	transcode(&b, v)
	return b.String()
}

// TranscodeReturn wraps Transcode's output in a "return " prefix, the form
// the graph engine stores for JSON modules (spec.md §3, module record).
func TranscodeReturn(v interface{}) string {
	return "return " + Transcode(v)
}

func transcode(b *strings.Builder, v interface{}) {
	switch val := v.(type) {
	case nil:
		b.WriteString("nil")
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case float64:
		b.WriteString(formatNumber(val))
	case string:
		b.WriteString(quoteString(val))
	case []interface{}:
		transcodeArray(b, val)
	case map[string]interface{}:
		transcodeObject(b, val)
	default:
		panic(fmt.Sprintf("luavalue: unsupported JSON value type %T", v))
	}
}

func transcodeArray(b *strings.Builder, arr []interface{}) {
	b.WriteString("{")
	for _, entry := range arr {
		transcode(b, entry)
		b.WriteString(",")
	}
	b.WriteString("}")
}

// transcodeObject sorts keys before emitting them: encoding/json's
// map[string]interface{} decoding discards source order, and the
// determinism law (spec.md §8) requires the same input to always produce
// the same bundle text, so a stable order is substituted for source order.
func transcodeObject(b *strings.Builder, obj map[string]interface{}) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("{")
	for _, k := range keys {
		b.WriteString("[")
		b.WriteString(quoteString(k))
		b.WriteString("]=")
		transcode(b, obj[k])
		b.WriteString(",")
	}
	b.WriteString("}")
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
