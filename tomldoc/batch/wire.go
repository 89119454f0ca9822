package batch

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// wireOp is one operation descriptor of the line protocol.
type wireOp struct {
	Op              string          `json:"op"` // "add", "remove", "get", "test", "copy", "move"
	Path            string          `json:"path"`
	TableHeaderPath string          `json:"table_header_path,omitempty"`
	DottedPath      string          `json:"dotted_path,omitempty"`
	From            string          `json:"from,omitempty"`
	Value           json.RawMessage `json:"value,omitempty"`
}

// ParseJSON parses an array of operation descriptors into a Plan.
//
// Example:
//
//	[{"op":"add","path":"env/PATH","value":"\"/usr/bin\""},
//	 {"op":"get","path":"env"}]
//
// The value of an add or test is JSON text carried in a string, as above.
// A value given as a bare JSON array, object, number or boolean is taken
// as is.
func ParseJSON(data []byte) (*Plan, error) {
	var ops []wireOp
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	plan := NewPlan()
	for i := range ops {
		op, err := convertWireOp(&ops[i])
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		plan.Ops = append(plan.Ops, op)
	}
	return plan, nil
}

func convertWireOp(w *wireOp) (Op, error) {
	typ, err := ParseOpType(w.Op)
	if err != nil {
		return Op{}, err
	}
	op := Op{
		Type:            typ,
		Path:            w.Path,
		TableHeaderPath: w.TableHeaderPath,
		DottedPath:      w.DottedPath,
		From:            w.From,
		Value:           wireValue(w.Value),
	}

	switch typ {
	case OpAdd, OpTest:
		if op.Value == "" {
			return Op{}, fmt.Errorf("%w: %s without a value", ErrMalformedInput, typ)
		}
	case OpCopy, OpMove:
		if op.From == "" {
			return Op{}, fmt.Errorf("%w: %s without a source", ErrMalformedInput, typ)
		}
	}
	if op.TableHeaderPath != "" && typ != OpAdd {
		return Op{}, fmt.Errorf("%w: table_header_path only applies to add", ErrMalformedInput)
	}
	return op, nil
}

// wireValue unwraps a value carried as a JSON string.
func wireValue(raw json.RawMessage) string {
	v := gjson.ParseBytes(raw)
	switch v.Type {
	case gjson.Null:
		if len(raw) == 0 {
			return ""
		}
		return v.Raw
	case gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}
