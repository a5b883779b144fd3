// Package intent decides how the routed path should handle a query:
// invoke the deterministic calculator, or fall back to generation.
package intent

// Kind discriminates the two classification outcomes.
type Kind string

const (
	// ToolInvocation means the query looks arithmetic and carries an
	// extracted expression for the calculator.
	ToolInvocation Kind = "tool_invocation"
	// GenerationRequest means the query should be answered by the
	// generation engine with the raw query as the prompt.
	GenerationRequest Kind = "generation_request"
)

// Intent is the classifier's decision for one query. Exactly one of
// Expression and Prompt is populated, matching Kind.
type Intent struct {
	Kind       Kind   `json:"kind"`
	Expression string `json:"expression,omitempty"`
	Prompt     string `json:"prompt,omitempty"`
}
