package document

import (
	"fmt"
	"strings"
)

var (
	tokenEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	tokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapeToken escapes a single JSON pointer reference token (RFC 6901).
func EscapeToken(token string) string {
	return tokenEscaper.Replace(token)
}

// JoinPointer builds a JSON pointer from unescaped reference tokens.
// No tokens yields the empty pointer, which addresses the whole document.
func JoinPointer(tokens ...string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteByte('/')
		sb.WriteString(EscapeToken(tok))
	}
	return sb.String()
}

// SplitPointer returns the unescaped reference tokens of a JSON pointer.
// A leading "#" (URI fragment form) is accepted.
func SplitPointer(pointer string) ([]string, error) {
	pointer = strings.TrimPrefix(pointer, "#")
	if pointer == "" {
		return nil, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("invalid JSON pointer %q: must start with '/'", pointer)
	}
	parts := strings.Split(pointer[1:], "/")
	for i, p := range parts {
		parts[i] = tokenUnescaper.Replace(p)
	}
	return parts, nil
}
