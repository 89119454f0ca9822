package tomltext

import (
	"errors"

	"github.com/pelletier/go-toml/v2/unstable"
)

// literalKey prefixes a lone literal so go-toml can parse it as a key/value
// expression.
const literalKey = "v = "

// Validate checks src against the full grammar with go-toml's parser. It
// does not check key uniqueness or table redefinition.
func Validate(src string) error {
	var p unstable.Parser
	p.Reset([]byte(src))
	for p.NextExpression() {
	}
	err := p.Error()
	if err == nil {
		return nil
	}

	off := len(src)
	msg := err.Error()
	var perr *unstable.ParserError
	if errors.As(err, &perr) {
		msg = perr.Message
		if len(perr.Highlight) > 0 {
			off = int(p.Range(perr.Highlight).Offset)
		}
	}
	line, col := position(src, off)
	return &SyntaxError{Line: line, Column: col, Msg: msg}
}

// scalarKind reports how go-toml's parser reads raw as a value.
func scalarKind(raw string) (unstable.Kind, bool) {
	if raw == "" {
		return unstable.Invalid, false
	}
	var p unstable.Parser
	p.Reset([]byte(literalKey + raw + LF))
	if !p.NextExpression() {
		return unstable.Invalid, false
	}
	expr := p.Expression()
	if expr.Kind != unstable.KeyValue {
		return unstable.Invalid, false
	}
	v := expr.Value()
	if v == nil {
		return unstable.Invalid, false
	}
	kind := v.Kind
	if p.NextExpression() || p.Error() != nil {
		return unstable.Invalid, false
	}
	return kind, true
}
