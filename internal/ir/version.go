package ir

// Version constants for the record model and the compiler.
const (
	// IRVersion is the record model version.
	IRVersion = "1"

	// CompilerVersion is the scenario compiler version.
	CompilerVersion = "0.3.0"
)
