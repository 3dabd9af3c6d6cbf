package tracing

// Span attribute keys for command tracing.
const (
	AttrCommandName     = "command.name"
	AttrCommandMutating = "command.mutating"
	AttrCommandFeedback = "command.feedback"
)

// SpanPrefixCommand prefixes every command span name.
const SpanPrefixCommand = "command."
