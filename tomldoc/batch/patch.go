package batch

import (
	"fmt"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/tidwall/gjson"

	"github.com/joshuapare/tomlkit/tomldoc/edit"
)

// appendToken is the JSON Pointer token naming the slot after the last
// array element.
const appendToken = "-"

// ParsePatch parses an RFC 6902 JSON Patch into a Plan.
//
// "add" and "replace" become adds, "remove" a remove, and "test", "copy"
// and "move" their batch counterparts. A final "-" token appends to the
// array it follows. Keys containing "/" cannot be addressed and are
// rejected, as is an empty key.
func ParsePatch(data []byte) (*Plan, error) {
	patch, err := jsonpatch.DecodePatch(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	plan := NewPlan()
	for i, po := range patch {
		op, err := convertPatchOp(po, gjson.GetBytes(data, strconv.Itoa(i)))
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		plan.Ops = append(plan.Ops, op)
	}
	return plan, nil
}

// convertPatchOp converts one patch operation. raw is the operation's own
// JSON, read again so that object values keep their member order.
func convertPatchOp(po jsonpatch.Operation, raw gjson.Result) (Op, error) {
	var op Op
	switch kind := po.Kind(); kind {
	case "add", "replace":
		op.Type = OpAdd
	case "remove":
		op.Type = OpRemove
	case "test":
		op.Type = OpTest
	case "copy":
		op.Type = OpCopy
	case "move":
		op.Type = OpMove
	default:
		return Op{}, fmt.Errorf("%w: unknown operation %q", ErrMalformedInput, kind)
	}

	pointer, err := po.Path()
	if err != nil {
		return Op{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	op.Path, op.Append, err = pointerToPath(pointer)
	if err != nil {
		return Op{}, err
	}
	if op.Path == "" && op.Type != OpTest {
		return Op{}, fmt.Errorf("%w: %s cannot act on the whole document", ErrMalformedInput, op.Type)
	}
	if op.Append && (op.Type == OpRemove || op.Type == OpTest) {
		return Op{}, fmt.Errorf("%w: %q names no element", ErrMalformedInput, pointer)
	}

	switch op.Type {
	case OpAdd, OpTest:
		v := raw.Get("value")
		if !v.Exists() {
			return Op{}, fmt.Errorf("%w: %s without a value", ErrMalformedInput, po.Kind())
		}
		op.Value = v.Raw
	case OpCopy, OpMove:
		from, err := po.From()
		if err != nil {
			return Op{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		var app bool
		op.From, app, err = pointerToPath(from)
		if err != nil {
			return Op{}, err
		}
		if app || op.From == "" {
			return Op{}, fmt.Errorf("%w: %q is not a source location", ErrMalformedInput, from)
		}
	}
	return op, nil
}

// pointerToPath converts a JSON Pointer to a slash path. A final "-"
// token is dropped and reported as append.
func pointerToPath(pointer string) (string, bool, error) {
	if pointer == "" {
		return "", false, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return "", false, fmt.Errorf("%w: pointer %q does not start with \"/\"", ErrMalformedInput, pointer)
	}

	tokens := strings.Split(pointer[1:], "/")
	appendTo := tokens[len(tokens)-1] == appendToken
	if appendTo {
		tokens = tokens[:len(tokens)-1]
	}
	for i, tok := range tokens {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")
		if tok == "" || strings.Contains(tok, edit.Separator) {
			return "", false, fmt.Errorf("%w: pointer %q has a key that cannot be addressed", ErrMalformedInput, pointer)
		}
		tokens[i] = tok
	}
	return strings.Join(tokens, edit.Separator), appendTo, nil
}
