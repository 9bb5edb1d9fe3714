package main

// Exit codes. Only hard failures (no usable active agent, invalid arguments)
// exit nonzero; lookup misses and I/O problems are reported and exit 0.
const (
	ExitSuccess = 0 // Success, including reported soft failures
	ExitError   = 1 // Hard failure or invalid arguments
)
