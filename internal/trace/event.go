package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{"", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && k != 0 {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Coarser scopes have smaller values.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole command: build, check, fix
	ScopePass                    // lex, parse, translate of one file
	ScopeFile                    // one source file
	ScopeFunc                    // function declarations and instantiations
)

var scopeNames = [...]string{"", "driver", "pass", "file", "func"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && s != 0 {
		return scopeNames[s]
	}
	return "unknown"
}

// Attr is one key/value pair attached to a span end.
type Attr struct {
	Key   string `json:"k"`
	Value string `json:"v"`
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Depth    int    // nesting below the root span, used for text indentation
	Name     string // "compile", "parse", "instantiate:add", ...
	Detail   string
	Attrs    []Attr
}

// Attr returns the value of key and whether it was set.
func (ev *Event) Attr(key string) (string, bool) {
	for _, a := range ev.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
