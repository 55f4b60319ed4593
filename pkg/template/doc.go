// Package template indexes a directory of TextFSM templates: it parses
// the directory's "index" CSV (Template, Platform/Vendor, Command
// columns), expands each command pattern's bracketed completion
// notation into a regex, and resolves (platform, command) lookups
// against the compiled patterns with a substring-match fallback for
// patterns the regex engine could not compile. One Index is built per
// template-directory path and cached for the process lifetime.
package template
