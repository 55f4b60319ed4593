package template

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Entry is one row of the template index: a platform, the lowercased,
// bracket-stripped command-pattern text, the on-disk template file,
// and the compiled regex derived from that pattern (nil if the pattern
// did not compile, in which case lookups fall back to substring match
// against the bracket-stripped pattern).
type Entry struct {
	Platform     string
	CommandText  string // bracket-stripped, lowercased
	TemplatePath string
	Pattern      *regexp.Regexp // nil => substring-fallback only
}

// Index is the parsed, compiled contents of one template directory's
// index CSV, bucketed by lowercased platform.
type Index struct {
	Dir     string
	byPlatform map[string][]*Entry
}

var (
	cacheMu sync.Mutex
	dirCache = map[string]*Index{}
)

// Load parses dir's "index" CSV and caches the result by absolute
// directory path for the process lifetime; repeated calls for the same
// directory return the cached Index without re-reading disk.
func Load(dir string) (*Index, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	if idx, ok := dirCache[abs]; ok {
		cacheMu.Unlock()
		return idx, nil
	}
	cacheMu.Unlock()

	idx, err := loadUncached(abs)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	dirCache[abs] = idx
	cacheMu.Unlock()
	return idx, nil
}

func loadUncached(dir string) (*Index, error) {
	path := filepath.Join(dir, "index")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &IndexError{Path: path, Msg: err.Error()}
	}
	if len(rows) == 0 {
		return nil, &IndexError{Path: path, Msg: "empty index file"}
	}

	header := rows[0]
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	templateCol, ok := col["template"]
	if !ok {
		return nil, &IndexError{Path: path, Msg: "missing required column: Template"}
	}
	platformCol, ok := col["platform"]
	if !ok {
		platformCol, ok = col["vendor"]
	}
	if !ok {
		return nil, &IndexError{Path: path, Msg: "missing required column: Platform (or Vendor)"}
	}
	commandCol, ok := col["command"]
	if !ok {
		return nil, &IndexError{Path: path, Msg: "missing required column: Command"}
	}

	idx := &Index{Dir: dir, byPlatform: map[string][]*Entry{}}

	for _, row := range rows[1:] {
		if len(row) == 0 || strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
			continue
		}
		if templateCol >= len(row) || platformCol >= len(row) || commandCol >= len(row) {
			continue
		}

		platform := strings.ToLower(strings.TrimSpace(row[platformCol]))
		commandPattern := strings.ToLower(strings.TrimSpace(row[commandCol]))
		templateFile := strings.TrimSpace(row[templateCol])

		entry := &Entry{
			Platform:     platform,
			CommandText:  stripBrackets(commandPattern),
			TemplatePath: filepath.Join(dir, templateFile),
		}
		expanded := expandBrackets(commandPattern)
		if re, err := regexp.Compile("^" + expanded + "$"); err == nil {
			entry.Pattern = re
		}
		idx.byPlatform[platform] = append(idx.byPlatform[platform], entry)
	}

	return idx, nil
}

// Find resolves (platform, command) against the index: lowercase both,
// try every entry's compiled regex first, then fall back to a substring
// match between the bracket-stripped pattern and the command.
func (idx *Index) Find(platform, command string) (*Entry, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	command = strings.ToLower(strings.TrimSpace(command))

	entries := idx.byPlatform[platform]

	for _, e := range entries {
		if e.Pattern != nil && e.Pattern.MatchString(command) {
			return e, nil
		}
	}
	for _, e := range entries {
		if strings.Contains(e.CommandText, command) || strings.Contains(command, e.CommandText) {
			return e, nil
		}
	}
	return nil, &NotFoundError{Platform: platform, Command: command}
}
