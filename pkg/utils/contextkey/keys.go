package contextkey

// key is a private type to avoid context key collisions across packages.
type key string

const (
	// InvocationID identifies one CLI invocation (or one shell line) in logs.
	InvocationID key = "invocation_id"
	// Command holds the dispatched subcommand name.
	Command key = "command"
)
