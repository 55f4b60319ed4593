// Package textfsm implements a TextFSM-compatible template parser and
// finite-state text extractor: a template declares named Values with
// regex patterns and options (Required, Filldown, Fillup, Key, List),
// then a set of per-state Rules that match input lines and emit
// records. ParseTemplate compiles a template file; Execute runs it
// against command output.
//
// Rule patterns are compiled with the standard library regexp first;
// patterns using lookaround or backreferences that regexp rejects fall
// back to github.com/dlclark/regexp2, which supports the wider .NET-style
// syntax real-world TextFSM templates occasionally rely on.
package textfsm
