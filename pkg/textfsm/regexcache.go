package textfsm

import (
	"errors"
	"regexp"
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/netdevssh/netdevssh/pkg/util/xlru"
)

var errNotNumeric = errors.New("textfsm: not a numeric group name")

// compiledPattern wraps whichever engine successfully compiled a given
// pattern string: the standard library regexp is tried first since it is
// faster and simpler; patterns it rejects (lookaround, backreferences)
// fall back to regexp2, which supports the wider .NET-style syntax.
type compiledPattern struct {
	std *regexp.Regexp
	rx2 *regexp2.Regexp
}

// defaultCacheSize is used until SetCacheCapacity is called with a real
// value (see pkg/config.Settings.TemplateCacheSize, applied once at
// startup). A regexp.Regexp/regexp2.Regexp is cheap to recompile, so an
// undersized cache only costs CPU, never correctness.
const defaultCacheSize = 1000

var (
	cacheMu sync.Mutex
	cache   = newPatternCache(defaultCacheSize)
)

func newPatternCache(size int) *xlru.Cache[string, *compiledPattern] {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := xlru.New[string, *compiledPattern](xlru.Config{Size: size})
	if err != nil {
		// size is always validated positive above; New only fails on
		// invalid Config, so this path is unreachable in practice.
		c, _ = xlru.New[string, *compiledPattern](xlru.Config{Size: defaultCacheSize})
	}
	return c
}

// SetCacheCapacity replaces the compiled-pattern cache with one sized to
// n entries, discarding anything already cached. Call once at startup
// (cmd/netdevctl's loadSettings wires this from Settings.TemplateCacheSize) before
// any template has been parsed; calling it concurrently with Execute is
// safe but loses whatever was cached under the old capacity.
func SetCacheCapacity(n int) {
	next := newPatternCache(n)
	cacheMu.Lock()
	cache = next
	cacheMu.Unlock()
}

// compilePattern compiles pattern (already variable-substituted),
// reusing a cached result keyed by the exact pattern string.
func compilePattern(pattern string) (*compiledPattern, error) {
	cacheMu.Lock()
	c := cache
	cacheMu.Unlock()

	if cp, ok := c.Get(pattern); ok {
		return cp, nil
	}

	var cp *compiledPattern
	if std, err := regexp.Compile(pattern); err == nil {
		cp = &compiledPattern{std: std}
	} else {
		rx2, err2 := regexp2.Compile(pattern, regexp2.None)
		if err2 != nil {
			return nil, err
		}
		cp = &compiledPattern{rx2: rx2}
	}

	c.Set(pattern, cp)
	return cp, nil
}

// FindNamedMatch runs the pattern against line and returns the named
// capture groups present in it, plus whether the pattern matched at all.
func (cp *compiledPattern) FindNamedMatch(line string) (map[string]string, bool) {
	if cp.std != nil {
		m := cp.std.FindStringSubmatch(line)
		if m == nil {
			return nil, false
		}
		names := cp.std.SubexpNames()
		out := make(map[string]string, len(names))
		for i, name := range names {
			if name != "" && m[i] != "" {
				out[name] = m[i]
			}
		}
		return out, true
	}

	m, err := cp.rx2.FindStringMatch(line)
	if err != nil || m == nil {
		return nil, false
	}
	out := make(map[string]string)
	for _, gname := range namedGroups(cp.rx2) {
		g := m.GroupByName(gname)
		if g != nil && g.Length > 0 {
			out[gname] = g.String()
		}
	}
	return out, true
}

// namedGroups extracts the named capture group names regexp2 compiled,
// since it does not expose a single SubexpNames-style accessor.
func namedGroups(rx *regexp2.Regexp) []string {
	var names []string
	for _, n := range rx.GetGroupNames() {
		if _, err := parseUint(n); err != nil {
			names = append(names, n)
		}
	}
	return names
}

func parseUint(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errNotNumeric
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return 0, errNotNumeric
	}
	return n, nil
}
