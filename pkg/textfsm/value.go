package textfsm

import (
	"regexp"
	"strings"
)

// Option is one Value modifier from a template's Value declaration.
type Option string

const (
	OptRequired Option = "Required"
	OptFilldown Option = "Filldown"
	OptFillup   Option = "Fillup"
	OptKey      Option = "Key"
	OptList     Option = "List"
)

var validOptions = map[Option]bool{
	OptRequired: true,
	OptFilldown: true,
	OptFillup:   true,
	OptKey:      true,
	OptList:     true,
}

// ValueDecl is one parsed "Value [Options] Name (regex)" declaration.
type ValueDecl struct {
	Name    string
	Regex   string // inner pattern, parens stripped
	Options map[Option]bool
}

func (v *ValueDecl) has(o Option) bool { return v.Options[o] }

// expandedGroup is the Value's regex wrapped in a named capture group,
// substituted for ${Name} references in rule patterns.
func (v *ValueDecl) expandedGroup() string {
	return "(?P<" + v.Name + ">" + v.Regex + ")"
}

var valueLineRe = regexp.MustCompile(`^Value\s+(?:([A-Za-z,]+)\s+)?([A-Za-z_][A-Za-z0-9_]*)\s+\((.*)\)\s*$`)

// parseValueLine parses one "Value [Options] Name (regex)" line.
// Options, if present, are a comma-separated list with no spaces.
func parseValueLine(line string, lineNo int) (*ValueDecl, error) {
	m := valueLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, &TemplateError{Line: lineNo, Msg: "malformed Value declaration: " + line}
	}
	decl := &ValueDecl{Name: m[2], Regex: m[3], Options: map[Option]bool{}}
	if m[1] != "" {
		for _, tok := range strings.Split(m[1], ",") {
			opt := Option(tok)
			if !validOptions[opt] {
				return nil, &TemplateError{Line: lineNo, Msg: "unknown Value option: " + tok}
			}
			decl.Options[opt] = true
		}
	}
	return decl, nil
}
