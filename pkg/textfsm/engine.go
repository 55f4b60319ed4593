package textfsm

import "strings"

// Record is one emitted row: field name to either a scalar string or,
// for List values, a []string.
type Record map[string]interface{}

type valueState struct {
	decl    *ValueDecl
	current string
	list    []string
}

func (vs *valueState) empty() bool {
	if vs.decl.has(OptList) {
		return len(vs.list) == 0
	}
	return vs.current == ""
}

func (vs *valueState) assign(s string) {
	if vs.decl.has(OptList) {
		vs.list = append(vs.list, s)
	}
	vs.current = s
}

func (vs *valueState) clear(all bool) {
	if !all && vs.decl.has(OptFilldown) {
		return // Filldown survives a plain Clear
	}
	vs.current = ""
	vs.list = nil
}

// Execute runs tmpl against text, one line at a time, starting in state
// "Start", and returns the emitted records in order.
func Execute(tmpl *Template, text string) ([]Record, error) {
	states := make(map[string]*valueState, len(tmpl.Values))
	order := make([]*valueState, len(tmpl.Values))
	for i, decl := range tmpl.Values {
		vs := &valueState{decl: decl}
		states[decl.Name] = vs
		order[i] = vs
	}

	var records []Record
	emit := func() {
		rec := Record{}
		allRequiredPresent := true
		for _, vs := range order {
			if vs.decl.has(OptList) {
				cp := make([]string, len(vs.list))
				copy(cp, vs.list)
				rec[vs.decl.Name] = cp
			} else {
				rec[vs.decl.Name] = vs.current
			}
			if vs.decl.has(OptRequired) && vs.empty() {
				allRequiredPresent = false
			}
		}
		if !allRequiredPresent {
			return
		}
		records = append(records, rec)

		for _, vs := range order {
			if !vs.decl.has(OptFillup) || vs.empty() {
				continue
			}
			name := vs.decl.Name
			value := rec[name]
			for j := len(records) - 2; j >= 0; j-- {
				prior, ok := records[j][name]
				if !ok {
					continue
				}
				if !isEmptyField(prior) {
					break
				}
				records[j][name] = value
			}
		}
	}

	applyRecordOp := func(op RecordOp) {
		switch op {
		case RecordOpRecord:
			emit()
			for _, vs := range order {
				vs.clear(false)
			}
		case RecordOpClear:
			for _, vs := range order {
				vs.clear(false)
			}
		case RecordOpClearall:
			for _, vs := range order {
				vs.clear(true)
			}
		case RecordOpNoRecord:
		}
	}

	lines := strings.Split(text, "\n")
	current := "Start"
	lineIdx := 0

lineLoop:
	for lineIdx < len(lines) {
		line := strings.TrimRight(lines[lineIdx], "\r")
		rules := tmpl.States[current]

		for ri := 0; ri < len(rules); ri++ {
			rule := rules[ri]
			groups, ok := rule.compiled.FindNamedMatch(line)
			if !ok {
				continue
			}
			for name, val := range groups {
				if vs, ok := states[name]; ok {
					vs.assign(val)
				}
			}

			if rule.LineOp == LineOpError {
				msg := rule.ErrorMsg
				if msg == "" {
					msg = "halted at state " + current
				}
				return records, &FsmError{Msg: msg}
			}

			applyRecordOp(rule.RecordOp)

			if rule.NewState == "End" {
				break lineLoop
			}
			if rule.NewState != "" {
				current = rule.NewState
			}

			if rule.LineOp == LineOpContinue {
				continue // re-evaluate remaining rules against the same line
			}
			lineIdx++
			continue lineLoop
		}
		// Exhausted every rule in the current state for this line
		// without an explicit Next/Continue resolution (no rule
		// matched, or the last matching rule was Continue with
		// nothing left to fall through to): move on regardless, to
		// guarantee forward progress.
		lineIdx++
	}

	if eofRules, ok := tmpl.States["EOF"]; ok {
		for _, rule := range eofRules {
			groups, ok := rule.compiled.FindNamedMatch("")
			if !ok {
				continue
			}
			for name, val := range groups {
				if vs, ok := states[name]; ok {
					vs.assign(val)
				}
			}
			if rule.LineOp == LineOpError {
				return records, &FsmError{Msg: rule.ErrorMsg}
			}
			applyRecordOp(rule.RecordOp)
			break
		}
	} else {
		applyRecordOp(RecordOpRecord)
	}

	return records, nil
}

func isEmptyField(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	default:
		return true
	}
}
