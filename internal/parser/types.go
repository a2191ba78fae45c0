package parser

import (
	"ember/internal/diag"
	"ember/internal/token"
	"ember/internal/types"
)

// ParseType consumes one type name.
func (meta *Metadata) ParseType() (types.Type, error) {
	tok := meta.Current()
	if !tok.IsTypeName() {
		return types.Generic, Failf(diag.SynExpectType, meta.DiagSpan(), "expected type, got %s", describe(tok))
	}
	meta.Advance()
	t, _ := types.Parse(tok.Text)
	return t, nil
}

// ParseOptionalAnnotation parses ": Type" if present, otherwise Generic.
func (meta *Metadata) ParseOptionalAnnotation() (types.Type, error) {
	if _, ok := meta.Accept(token.Colon); !ok {
		return types.Generic, nil
	}
	return meta.ParseType()
}
