package edit

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/joshuapare/tomlkit/internal/tomltext"
	"github.com/joshuapare/tomlkit/tomldoc"
)

// FromJSON converts JSON text to a document node.
//
// With inline set, objects become inline tables and arrays stay arrays, so
// the result is always a tomldoc.Value (or Absent for null). Without it,
// objects become block tables and a non-empty array whose elements are all
// objects becomes an array of tables; an array mixing objects with other
// values is converted inline. Object members keep their JSON order.
func FromJSON(data string, inline bool) (tomldoc.Node, error) {
	if !gjson.Valid(data) {
		return nil, pathError(ErrConversion, nil, "value is not valid JSON")
	}
	return fromJSON(gjson.Parse(data), inline, nil)
}

func fromJSON(r gjson.Result, inline bool, at []string) (tomldoc.Node, error) {
	switch r.Type {
	case gjson.Null:
		return tomldoc.Absent{}, nil
	case gjson.True, gjson.False:
		return tomldoc.NewBoolean(r.Bool()), nil
	case gjson.String:
		return tomldoc.NewString(r.Str), nil
	case gjson.Number:
		return fromNumber(r.Raw, at)
	case gjson.JSON:
		if r.IsArray() {
			return fromArray(r, inline, at)
		}
		return fromObject(r, inline, at)
	default:
		return nil, pathError(ErrConversion, at, "unsupported JSON value %q", r.Raw)
	}
}

// fromNumber keeps integral literals as integers when they fit in 64 bits.
func fromNumber(raw string, at []string) (tomldoc.Node, error) {
	if !strings.ContainsAny(raw, ".eE") {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return tomldoc.NewInteger(n), nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, pathError(ErrConversion, at, "number %s is not a finite float", raw)
	}
	return tomldoc.NewFloat(f), nil
}

func fromArray(r gjson.Result, inline bool, at []string) (tomldoc.Node, error) {
	var (
		nodes []tomldoc.Node
		err   error
	)
	r.ForEach(func(_, v gjson.Result) bool {
		var n tomldoc.Node
		n, err = fromJSON(v, inline, childPath(at, strconv.Itoa(len(nodes))))
		if err != nil {
			return false
		}
		nodes = append(nodes, n)
		return true
	})
	if err != nil {
		return nil, err
	}

	if !inline && len(nodes) > 0 {
		if allTables(nodes) {
			aot := tomldoc.NewArrayOfTables()
			for _, n := range nodes {
				aot.Push(n.(*tomldoc.Table))
			}
			return aot, nil
		}
		// A block table cannot be an array element, so a mixed array is
		// converted again with every element inline.
		if !allValues(nodes) {
			return fromArray(r, true, at)
		}
	}

	arr := tomldoc.NewArray()
	for i, n := range nodes {
		v, ok := n.(tomldoc.Value)
		if !ok {
			return nil, pathError(ErrConversion, childPath(at, strconv.Itoa(i)),
				"%s cannot be an array element", describe(n))
		}
		arr.Push(v)
	}
	return arr, nil
}

func fromObject(r gjson.Result, inline bool, at []string) (tomldoc.Node, error) {
	var (
		it  *tomldoc.InlineTable
		t   *tomldoc.Table
		err error
	)
	if inline {
		it = tomldoc.NewInlineTable()
	} else {
		t = tomldoc.NewTable()
	}
	r.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		var n tomldoc.Node
		n, err = fromJSON(v, inline, childPath(at, key))
		if err != nil {
			return false
		}
		if t != nil {
			t.Insert(key, n)
			return true
		}
		val, ok := n.(tomldoc.Value)
		if !ok {
			err = pathError(ErrConversion, childPath(at, key), "%s cannot be stored in an inline table", describe(n))
			return false
		}
		it.Insert(key, val)
		return true
	})
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}
	return it, nil
}

func allValues(nodes []tomldoc.Node) bool {
	for _, n := range nodes {
		if !tomldoc.IsValue(n) {
			return false
		}
	}
	return true
}

func allTables(nodes []tomldoc.Node) bool {
	for _, n := range nodes {
		if _, ok := n.(*tomldoc.Table); !ok {
			return false
		}
	}
	return true
}

// describe names a node's shape for error messages.
func describe(n tomldoc.Node) string {
	switch n := n.(type) {
	case *tomldoc.Scalar:
		return n.Type().String() + " value"
	case tomldoc.Absent:
		return "null"
	default:
		return n.Kind().String()
	}
}

// ToJSON converts a node back to JSON. Table members keep document order,
// datetimes become strings and Absent members become null. Non-finite
// floats have no JSON form and fail with ErrConversion.
func ToJSON(n tomldoc.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n tomldoc.Node) error {
	switch n := n.(type) {
	case tomldoc.Absent:
		buf.WriteString("null")
	case *tomldoc.Scalar:
		return writeScalar(buf, n)
	case *tomldoc.Array:
		buf.WriteByte('[')
		for i, v := range n.Values() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *tomldoc.ArrayOfTables:
		buf.WriteByte('[')
		for i, t := range n.Tables() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, t); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *tomldoc.InlineTable:
		return writeObject(buf, n.Keys(), func(k string) tomldoc.Node {
			v, _ := n.Get(k)
			return v
		})
	case *tomldoc.Table:
		return writeObject(buf, n.Keys(), func(k string) tomldoc.Node {
			v, _ := n.Get(k)
			return v
		})
	default:
		return pathError(ErrConversion, nil, "unsupported node %T", n)
	}
	return nil
}

func writeObject(buf *bytes.Buffer, keys []string, get func(string) tomldoc.Node) error {
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, k)
		buf.WriteByte(':')
		if err := writeJSON(buf, get(k)); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeScalar(buf *bytes.Buffer, s *tomldoc.Scalar) error {
	switch s.Type() {
	case tomldoc.String:
		writeString(buf, s.Str())
	case tomldoc.Integer:
		buf.WriteString(strconv.FormatInt(s.Int(), 10))
	case tomldoc.Float:
		f := s.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return pathError(ErrConversion, nil, "float %s has no JSON form", s.Repr())
		}
		buf.WriteString(tomltext.FormatFloat(f))
	case tomldoc.Boolean:
		buf.WriteString(strconv.FormatBool(s.Bool()))
	case tomldoc.Datetime:
		writeString(buf, s.Text())
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}
