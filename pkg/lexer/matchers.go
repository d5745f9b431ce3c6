package lexer

import (
	"strings"
	"unicode"
)

// DollarQuoted matches a dollar-quoted string such as $$text$$ or
// $tag$text$tag$. The closing delimiter must repeat the opening tag, which
// is why this cannot be a regular expression. Tags follow identifier rules,
// so positional parameters like $1 are not mistaken for openers.
func DollarQuoted(s string) int {
	if !strings.HasPrefix(s, "$") {
		return 0
	}
	end := strings.IndexByte(s[1:], '$')
	if end < 0 {
		return 0
	}
	tag := s[:end+2]
	for i, r := range tag[1 : len(tag)-1] {
		if !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return 0
		}
	}
	closing := strings.Index(s[len(tag):], tag)
	if closing < 0 {
		return 0
	}
	return 2*len(tag) + closing
}
