package textfsm

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Template is a parsed TextFSM template: its Value declarations and its
// per-state rule lists, in declaration order.
type Template struct {
	Values     []*ValueDecl
	StateOrder []string
	States     map[string][]*Rule
}

var varRefRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ParseTemplate reads a TextFSM template (Value declarations, a blank
// line, then state definitions) and compiles every rule pattern.
func ParseTemplate(r io.Reader) (*Template, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	t := &Template{States: map[string][]*Rule{}}
	valuesByName := map[string]*ValueDecl{}

	i := 0
	for i < len(lines) {
		line := lines[i].text
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			i++
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}
		if !strings.HasPrefix(trimmed, "Value ") && trimmed != "Value" {
			break
		}
		decl, err := parseValueLine(trimmed, lines[i].no)
		if err != nil {
			return nil, err
		}
		t.Values = append(t.Values, decl)
		valuesByName[decl.Name] = decl
		i++
	}

	if err := parseStates(lines[i:], t); err != nil {
		return nil, err
	}

	if _, ok := t.States["Start"]; !ok {
		return nil, &TemplateError{Msg: "template has no Start state"}
	}

	for stateName, rules := range t.States {
		for _, rule := range rules {
			expanded := substituteVars(rule.raw, valuesByName)
			cp, err := compilePattern(expanded)
			if err != nil {
				return nil, &TemplateError{Msg: "state " + stateName + ": pattern failed to compile: " + err.Error()}
			}
			rule.compiled = cp

			if rule.NewState != "" && rule.NewState != "End" && rule.NewState != "EOF" {
				if _, ok := t.States[rule.NewState]; !ok {
					return nil, &TemplateError{Msg: "state " + stateName + ": references undefined state " + rule.NewState}
				}
			}
		}
	}

	return t, nil
}

type numberedLine struct {
	no   int
	text string
}

func readLines(r io.Reader) ([]numberedLine, error) {
	scanner := bufio.NewScanner(r)
	var out []numberedLine
	n := 0
	for scanner.Scan() {
		n++
		out = append(out, numberedLine{no: n, text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseStates(lines []numberedLine, t *Template) error {
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i].text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}
		if lines[i].text != trimmed {
			return &TemplateError{Line: lines[i].no, Msg: "expected an unindented state name, found: " + lines[i].text}
		}
		stateName := trimmed
		if _, dup := t.States[stateName]; dup {
			return &TemplateError{Line: lines[i].no, Msg: "duplicate state: " + stateName}
		}
		t.StateOrder = append(t.StateOrder, stateName)
		t.States[stateName] = nil
		i++

		for i < len(lines) {
			raw := lines[i].text
			tr := strings.TrimSpace(raw)
			if tr == "" {
				i++
				break
			}
			if raw == tr {
				break // next state
			}
			if strings.HasPrefix(tr, "#") {
				i++
				continue
			}
			rule, err := parseRuleLine(tr, lines[i].no)
			if err != nil {
				return err
			}
			t.States[stateName] = append(t.States[stateName], rule)
			i++
		}
	}
	return nil
}

// substituteVars replaces every ${Name} reference in pattern with the
// named Value's expanded capture group, and rewrites escaped \< \> to
// literal angle brackets.
func substituteVars(pattern string, values map[string]*ValueDecl) string {
	out := varRefRe.ReplaceAllStringFunc(pattern, func(ref string) string {
		name := ref[2 : len(ref)-1]
		if v, ok := values[name]; ok {
			return v.expandedGroup()
		}
		return ref
	})
	out = strings.ReplaceAll(out, `\<`, "<")
	out = strings.ReplaceAll(out, `\>`, ">")
	return out
}
