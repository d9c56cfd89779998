// Package cli runs a single flag-driven command: it parses arguments into a [flag.FlagSet], renders
// help text, and hands the command's [State] (flags plus I/O streams) to its Exec function.
//
// Parsing is lenient. Every recognized flag consumes exactly one value token, even when that token
// itself starts with a dash, while unrecognized flags are collected and reported as warnings
// instead of failing the run. A recognized flag with no value left to consume is an error.
package cli
