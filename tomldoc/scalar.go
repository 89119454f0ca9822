package tomldoc

import (
	"strconv"

	"github.com/joshuapare/tomlkit/internal/tomltext"
)

// ScalarType identifies the type of a *Scalar.
type ScalarType uint8

const (
	String ScalarType = iota
	Integer
	Float
	Boolean
	Datetime
)

func (t ScalarType) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case Datetime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Scalar is a string, integer, float, boolean or date/time value.
type Scalar struct {
	typ   ScalarType
	str   string // String contents or Datetime text
	num   int64
	flt   float64
	flag  bool
	raw   string // source spelling; empty for values built by callers
	decor Decor
}

func (*Scalar) Kind() Kind { return KindScalar }
func (*Scalar) sealed()    {}
func (*Scalar) value()     {}

// Decor returns the trivia around the value.
func (s *Scalar) Decor() *Decor { return &s.decor }

// NewString returns a string scalar.
func NewString(v string) *Scalar { return &Scalar{typ: String, str: v} }

// NewInteger returns an integer scalar.
func NewInteger(v int64) *Scalar { return &Scalar{typ: Integer, num: v} }

// NewFloat returns a float scalar.
func NewFloat(v float64) *Scalar { return &Scalar{typ: Float, flt: v} }

// NewBoolean returns a boolean scalar.
func NewBoolean(v bool) *Scalar { return &Scalar{typ: Boolean, flag: v} }

// NewDatetime returns a date/time scalar from its textual form.
func NewDatetime(text string) (*Scalar, error) {
	if !tomltext.ValidDatetime(text) {
		return nil, &tomltext.SyntaxError{Line: 1, Column: 1, Msg: "invalid datetime " + strconv.Quote(text)}
	}
	return &Scalar{typ: Datetime, str: text, raw: text}, nil
}

// Type returns the scalar's type.
func (s *Scalar) Type() ScalarType { return s.typ }

// Str returns the contents of a String scalar.
func (s *Scalar) Str() string { return s.str }

// Int returns the value of an Integer scalar.
func (s *Scalar) Int() int64 { return s.num }

// Float returns the value of a Float scalar.
func (s *Scalar) Float() float64 { return s.flt }

// Bool returns the value of a Boolean scalar.
func (s *Scalar) Bool() bool { return s.flag }

// Text returns the textual form of a Datetime scalar.
func (s *Scalar) Text() string { return s.str }

// Repr returns the literal as it is printed: the source spelling when the
// value was parsed, a canonical spelling otherwise.
func (s *Scalar) Repr() string {
	if s.raw != "" {
		return s.raw
	}
	switch s.typ {
	case String:
		return tomltext.QuoteString(s.str)
	case Integer:
		return tomltext.FormatInteger(s.num)
	case Float:
		return tomltext.FormatFloat(s.flt)
	case Boolean:
		return strconv.FormatBool(s.flag)
	default:
		return s.str
	}
}
