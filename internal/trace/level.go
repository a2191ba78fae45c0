package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // ring only, dumped when the command fails
	LevelPhase               // driver and pass boundaries
	LevelDetail              // per-file spans
	LevelDebug               // declarations and instance cache hits/misses
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest scope emitted at each level; 0 means nothing
var levelScopes = [...]Scope{0, 0, ScopePass, ScopeFile, ScopeFunc}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level. Case is ignored.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScopes) {
		return true
	}
	return scope != 0 && scope <= levelScopes[l]
}
