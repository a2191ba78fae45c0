package fix

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ember/internal/diag"
	"ember/internal/source"
)

func TestBuilders(t *testing.T) {
	sp := source.Span{File: 1, Start: 4, End: 9}
	cases := []struct {
		name string
		got  diag.Fix
		want diag.Fix
	}{
		{
			name: "insert collapses span",
			got:  InsertText("add", sp, "x"),
			want: diag.Fix{Title: "add", Edits: []diag.FixEdit{{Span: source.Span{File: 1, Start: 4, End: 4}, NewText: "x"}}},
		},
		{
			name: "delete",
			got:  DeleteSpan("drop", sp),
			want: diag.Fix{Title: "drop", Edits: []diag.FixEdit{{Span: sp}}},
		},
		{
			name: "replace",
			got:  ReplaceSpan("rename", sp, "count"),
			want: diag.Fix{Title: "rename", Edits: []diag.FixEdit{{Span: sp, NewText: "count"}}},
		},
		{
			name: "wrap",
			got:  WrapWith("group", sp, "(", ")"),
			want: diag.Fix{Title: "group", Edits: []diag.FixEdit{
				{Span: source.Span{File: 1, Start: 4, End: 4}, NewText: "("},
				{Span: source.Span{File: 1, Start: 9, End: 9}, NewText: ")"},
			}},
		},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, tc.got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.name, diff)
		}
	}
}
