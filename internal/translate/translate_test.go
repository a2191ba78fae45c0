package translate

import (
	"strings"
	"testing"

	"ember/internal/mono"
)

func TestComputationBinary(t *testing.T) {
	got := Computation(Div, "10", "4")
	want := `"$(echo 10 '/' 4 | bc -l | sed '/\./ s/\.\{0,1\}0\{1,\}$//')"`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestComputationUnary(t *testing.T) {
	got := Computation(Neg, `"${__0_x}"`)
	if !strings.HasPrefix(got, `"$(echo '-' "${__0_x}" | bc -l`) {
		t.Fatalf("unexpected unary computation %s", got)
	}
}

func TestComputationArityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for three operands")
		}
	}()
	Computation(Add, "1", "2", "3")
}

func TestTextEquality(t *testing.T) {
	if got := TextEquality(Eq, `"a"`, `"b"`); got != `"$([ "a" != "b" ]; echo $?)"` {
		t.Fatalf("eq: %s", got)
	}
	if got := TextEquality(Neq, `"a"`, `"b"`); got != `"$([ "a" == "b" ]; echo $?)"` {
		t.Fatalf("neq: %s", got)
	}
}

func TestNaming(t *testing.T) {
	if GlobalName(3, "count") != "__3_count" {
		t.Fatalf("global name: %s", GlobalName(3, "count"))
	}
	if InstanceName("add", 2, 1) != "add__2_v1" {
		t.Fatalf("instance name: %s", InstanceName("add", 2, 1))
	}
	if ReturnVar("add", 2, 1) != "__AF_add__2_v1" {
		t.Fatalf("return var: %s", ReturnVar("add", 2, 1))
	}
	// f1 with id 0 and f with id 10 must not share a return variable.
	if a, b := ReturnVar("f1", 0, 0), ReturnVar("f", 10, 0); a == b {
		t.Fatalf("return vars collide: %s", a)
	}
	if got := ResultVar(ReturnVar("f", 0, 0), 42); got != "__AF_f__0_v0__42" {
		t.Fatalf("result var: %s", got)
	}
	if got := GlobalName(0, "café"); got != "__0_caf_ue9_" {
		t.Fatalf("non-ASCII global name: %s", got)
	}
	if got := LocalName("π", 2); got != "_u3c0__2" {
		t.Fatalf("non-ASCII local name: %s", got)
	}
}

func TestTextLiteralEscapes(t *testing.T) {
	got := TextLiteral("cost: $5 `x` \"q\"")
	want := "\"cost: \\$5 \\`x\\` \\\"q\\\"\""
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestStatementFlushesHoisted(t *testing.T) {
	m := NewMeta(mono.NewFunctionMap())
	m.Nest(func() {
		m.Hoist("f__0_v0 1")
		out := m.Statement(`echo "${__AF_f__0_v0}"`)
		want := "    f__0_v0 1\n    echo \"${__AF_f__0_v0}\"\n"
		if out != want {
			t.Fatalf("got %q want %q", out, want)
		}
	})
	if len(m.TakeHoisted()) != 0 {
		t.Fatalf("hoisted queue must be empty after Statement")
	}
	if m.Indent() != "" {
		t.Fatalf("Nest must restore indentation")
	}
}

func TestScriptHeader(t *testing.T) {
	s := Script("0.1.0", "echo 1")
	if !strings.HasPrefix(s, "#!/usr/bin/env bash\n") || !strings.HasSuffix(s, "echo 1\n") {
		t.Fatalf("unexpected script:\n%s", s)
	}
}
