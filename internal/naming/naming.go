// Package naming derives shape and member identifiers from declared names.
//
// Every derivation starts from the same tokenization: a name is split on
// runs of characters outside the ASCII alphanumeric set, so "user_agent",
// "user-agent" and "user agent" all yield the tokens ["user", "agent"].
// Names that tokenize identically derive identical identifiers; callers are
// responsible for detecting such collisions.
package naming

import (
	"strings"
)

// Tokens splits s on runs of non ASCII-alphanumeric characters.
// Examples:
//   - "response.body" -> ["response", "body"]
//   - "C-c" -> ["C", "c"]
//   - "__" -> []
func Tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !isAlnum(r)
	})
}

// Pascal title-cases every token and joins them: the first character is
// upper-cased and the rest lower-cased.
// Examples:
//   - "user_agent" -> "UserAgent"
//   - "HTTP" -> "Http"
//   - "Code Signature" -> "CodeSignature"
func Pascal(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, tok := range Tokens(s) {
		sb.WriteString(strings.ToUpper(tok[:1]))
		sb.WriteString(strings.ToLower(tok[1:]))
	}

	return sb.String()
}

// Member returns the lowerCamelCase member name for s.
// Example: "resolved_ip" -> "resolvedIp".
func Member(s string) string {
	return LowerFirst(Pascal(s))
}

// EnumTag upper-cases every token and joins them with underscores.
// Examples:
//   - "b b" -> "B_B"
//   - "C-c" -> "C_C"
func EnumTag(s string) string {
	tokens := Tokens(s)
	for i, tok := range tokens {
		tokens[i] = strings.ToUpper(tok)
	}

	return strings.Join(tokens, "_")
}

// LowerFirst lower-cases the first byte of an ASCII identifier.
func LowerFirst(s string) string {
	if s == "" {
		return ""
	}

	return strings.ToLower(s[:1]) + s[1:]
}

// UpperFirst upper-cases the first byte of an ASCII identifier.
func UpperFirst(s string) string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
