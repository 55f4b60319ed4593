package textfsm

import "strings"

// LineOp controls whether a matched rule consumes the current input
// line before continuing.
type LineOp int

const (
	LineOpNext LineOp = iota // default: advance to the next input line
	LineOpContinue
	LineOpError
)

// RecordOp controls what happens to accumulated Value state on a match.
type RecordOp int

const (
	RecordOpNoRecord RecordOp = iota // default
	RecordOpRecord
	RecordOpClear
	RecordOpClearall
)

// Rule is one "pattern -> action" line within a state.
type Rule struct {
	raw      string
	compiled *compiledPattern
	LineOp   LineOp
	RecordOp RecordOp
	NewState string
	ErrorMsg string
}

var lineOpNames = map[string]LineOp{
	"Next":     LineOpNext,
	"Continue": LineOpContinue,
	"Error":    LineOpError,
}

var recordOpNames = map[string]RecordOp{
	"NoRecord": RecordOpNoRecord,
	"Record":   RecordOpRecord,
	"Clear":    RecordOpClear,
	"Clearall": RecordOpClearall,
}

// parseRuleLine parses one indented rule line: "<pattern>" optionally
// followed by "-> <action>". A bare pattern with no action defaults to
// LineOpNext/RecordOpNoRecord.
func parseRuleLine(line string, lineNo int) (*Rule, error) {
	pattern := line
	action := ""
	if idx := strings.Index(line, "->"); idx >= 0 {
		pattern = strings.TrimSpace(line[:idx])
		action = strings.TrimSpace(line[idx+2:])
	}

	r := &Rule{raw: pattern, LineOp: LineOpNext, RecordOp: RecordOpNoRecord}
	if action == "" {
		return r, nil
	}

	fields := strings.Fields(action)
	head := fields[0]

	if head == "Error" {
		r.LineOp = LineOpError
		r.ErrorMsg = strings.TrimSpace(strings.TrimPrefix(action, "Error"))
		r.ErrorMsg = strings.Trim(r.ErrorMsg, `"`)
		return r, nil
	}

	opTokens := strings.SplitN(head, ".", 2)
	switch len(opTokens) {
	case 1:
		if lop, ok := lineOpNames[opTokens[0]]; ok {
			r.LineOp = lop
		} else if rop, ok := recordOpNames[opTokens[0]]; ok {
			r.RecordOp = rop
		} else {
			return nil, &TemplateError{Line: lineNo, Msg: "unknown action token: " + opTokens[0]}
		}
	case 2:
		lop, ok := lineOpNames[opTokens[0]]
		if !ok {
			return nil, &TemplateError{Line: lineNo, Msg: "unknown line-op: " + opTokens[0]}
		}
		rop, ok := recordOpNames[opTokens[1]]
		if !ok {
			return nil, &TemplateError{Line: lineNo, Msg: "unknown record-op: " + opTokens[1]}
		}
		r.LineOp, r.RecordOp = lop, rop
	}

	if len(fields) > 1 {
		r.NewState = fields[1]
	}

	if r.LineOp == LineOpContinue && r.NewState != "" {
		return nil, &TemplateError{Line: lineNo, Msg: "Continue action must not specify a new state"}
	}
	return r, nil
}
