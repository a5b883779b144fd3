package intent

import "strings"

// operatorChars are the characters that mark a "what is" query as arithmetic.
const operatorChars = "+-*/"

// Classify inspects a raw query and picks exactly one intent. It is total:
// there is no error path and no query matches both kinds.
//
// Matching is done on a lower-cased copy; the original casing is preserved
// for extraction and for the generation prompt. The rules are containment
// heuristics, kept order-sensitive on purpose: "calculate" anywhere in the
// query forces the tool branch, even mid-sentence.
func Classify(query string) Intent {
	lowered := strings.ToLower(query)

	if strings.Contains(lowered, "calculate") ||
		(strings.Contains(lowered, "what is") && strings.ContainsAny(query, operatorChars)) {
		return Intent{Kind: ToolInvocation, Expression: ExtractExpression(query)}
	}

	// "what is ..." without an operator character is an ordinary question,
	// e.g. "what is artificial intelligence".
	return Intent{Kind: GenerationRequest, Prompt: query}
}
