package template

import "fmt"

// IndexError reports a malformed index CSV.
type IndexError struct {
	Path string
	Msg  string
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("template: index %s: %s", e.Path, e.Msg)
}

// NotFoundError is returned by Index.Find when no entry matches.
type NotFoundError struct {
	Platform string
	Command  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template: no template for platform %q, command %q", e.Platform, e.Command)
}
