// Package modpath implements the path resolver of spec.md §4.A: combining
// a caller module key with a (possibly relative) reference into a single
// canonical, extension-less module key.
//
// Ported from the original Rust `parse_path` (original_source/src/path.rs):
// the caller key is treated as a file, not a directory, so a single ".."
// pops two segments — one for the reference's own implicit directory, one
// for the caller file's directory.
package modpath

import "strings"

// Resolve combines callerKey with reference per spec.md §4.A.
//
//   - If reference has no "." or ".." segment, it is absolute and is
//     returned unchanged.
//   - Otherwise the result is seeded with callerKey's segments when the
//     first reference segment is "." or ".." (and starts empty when it is
//     not), then each reference segment is applied: ".." pops two, "." pops
//     one, anything else is pushed.
func Resolve(callerKey, reference string) string {
	refParts := strings.Split(reference, "/")

	isRelative := false
	for _, p := range refParts {
		if p == "." || p == ".." {
			isRelative = true
			break
		}
	}
	if !isRelative {
		return reference
	}

	var result []string
	if first := refParts[0]; first == "." || first == ".." {
		result = append(result, strings.Split(callerKey, "/")...)
	}

	for _, part := range refParts {
		switch part {
		case "..":
			if n := len(result); n >= 2 {
				result = result[:n-2]
			} else {
				result = result[:0]
			}
		case ".":
			if n := len(result); n >= 1 {
				result = result[:n-1]
			}
		default:
			result = append(result, part)
		}
	}

	return strings.Join(result, "/")
}
