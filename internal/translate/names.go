package translate

import (
	"fmt"
	"strings"

	"ember/internal/mono"
)

// GlobalName is the collision-free Bash name of a global variable.
func GlobalName(id uint32, name string) string {
	return fmt.Sprintf("__%d_%s", id, shellSafe(name))
}

// InstanceName is the Bash function name of one function instance.
func InstanceName(name string, id mono.FunctionID, instance int) string {
	return fmt.Sprintf("%s__%d_v%d", shellSafe(name), id, instance)
}

// ReturnVar is the variable that carries an instance's return value.
func ReturnVar(name string, id mono.FunctionID, instance int) string {
	return fmt.Sprintf("__AF_%s__%d_v%d", shellSafe(name), id, instance)
}

// ResultVar is the per-call-site copy of ret, taken right after the call so a
// later call of the same instance in one statement cannot overwrite it.
func ResultVar(ret string, offset uint32) string {
	return fmt.Sprintf("%s__%d", ret, offset)
}

// shellSafe rewrites every non-ASCII rune of an Ember identifier as
// "_u<hex>_": Bash names are limited to [A-Za-z0-9_].
func shellSafe(name string) string {
	ascii := true
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, "_u%x_", r)
	}
	return b.String()
}

// Ref expands a variable as a quoted shell word.
func Ref(name string) string {
	return `"${` + name + `}"`
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"$", `\$`,
	"`", "\\`",
)

// TextLiteral quotes a decoded string value for Bash.
func TextLiteral(value string) string {
	return `"` + textEscaper.Replace(value) + `"`
}

// BoolLiteral renders a boolean as 1 or 0.
func BoolLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// NullLiteral is the empty shell word.
const NullLiteral = "''"

// LocalName is the Bash name of a function-local variable declared at depth.
// Inner blocks of one function share a Bash scope, so shadowing needs distinct names.
func LocalName(name string, depth int) string {
	return fmt.Sprintf("%s_%d", shellSafe(name), depth)
}
