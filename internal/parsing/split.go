package parsing

import "strings"

var closers = map[byte]byte{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'\'': '\'',
	'"':  '"',
}

// Split breaks s on any byte of sep that is not enclosed in quotes or in a
// (), [] or {} group, trimming each field. Leading separators are skipped.
// If max is positive, at most max separators are honoured and the rest of
// the string becomes the final field.
func Split(s, sep string, max int) []string {
	var (
		fields []string
		stack  []byte
		word   strings.Builder
	)

	c := 0
	for c < len(s) && strings.IndexByte(sep, s[c]) >= 0 {
		c++
	}

	n := 0
	for ; c < len(s); c++ {
		ch := s[c]
		if len(stack) == 0 && strings.IndexByte(sep, ch) >= 0 {
			fields = append(fields, strings.TrimSpace(word.String()))
			word.Reset()
			n++
			if max > 0 && n == max {
				word.WriteString(strings.TrimSpace(s[c+1:]))
				break
			}
			continue
		}
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			switch {
			case ch == top:
				stack = stack[:len(stack)-1]
			case top == '\'' || top == '"':
				// quoted text is opaque
			default:
				if closer, ok := closers[ch]; ok {
					stack = append(stack, closer)
				}
			}
		} else if closer, ok := closers[ch]; ok {
			stack = append(stack, closer)
		}
		word.WriteByte(ch)
	}

	if word.Len() > 0 {
		fields = append(fields, strings.TrimSpace(word.String()))
	}
	return fields
}

// StripQuotes removes one level of matching ''' ''', ' ' or " " quotes
// around v. Values the parser captured with their quotes are passed through
// here by handlers that want the bare string.
func StripQuotes(v string) string {
	if len(v) >= 6 && strings.HasPrefix(v, "'''") && strings.HasSuffix(v, "'''") {
		return v[3 : len(v)-3]
	}
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
