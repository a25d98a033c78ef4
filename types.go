package primate

// UnknownPolicy controls how an ObjectCodec treats keys that are not in its
// schema.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Ignore unknown keys; they never reach the output.
	UnknownStrict                      // Reject unknown keys with an error.
)
