package intent

import "strings"

// scaffoldPhrases are the natural-language fragments stripped from a query
// before the remainder is handed to the calculator.
var scaffoldPhrases = []string{"calculate", "what is", "the result of"}

// ExtractExpression strips natural-language scaffolding from a query and
// returns the candidate arithmetic expression. Phrase removal is
// case-insensitive but the surviving text keeps its original form (digits,
// parentheses, operators, decimal points). The result is not validated;
// well-formedness is the calculator's concern.
func ExtractExpression(query string) string {
	expression := query
	for _, phrase := range scaffoldPhrases {
		expression = removeFold(expression, phrase)
	}
	expression = strings.TrimSpace(expression)
	// Drop trailing sentence punctuation ("15 * 3?" and "... / 5." alike).
	expression = strings.TrimRight(expression, "?. ")
	return strings.TrimSpace(expression)
}

// removeFold deletes every case-insensitive occurrence of the ASCII
// phrase from s. Matching is byte-wise with ASCII-only folding: lowering
// the whole string would change byte offsets for some runes (U+0130
// lowers to two bytes, U+023A to three) and misalign the slice.
func removeFold(s, phrase string) string {
	for {
		idx := indexFold(s, phrase)
		if idx == -1 {
			return s
		}
		s = s[:idx] + s[idx+len(phrase):]
	}
}

// indexFold finds the first match of phrase in s, ignoring ASCII case.
func indexFold(s, phrase string) int {
	if len(phrase) == 0 {
		return -1
	}
	for i := 0; i+len(phrase) <= len(s); i++ {
		j := 0
		for j < len(phrase) && asciiLower(s[i+j]) == asciiLower(phrase[j]) {
			j++
		}
		if j == len(phrase) {
			return i
		}
	}
	return -1
}

func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
