package edit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tomlkit/tomldoc"
)

func mustParse(t *testing.T, src string) *tomldoc.Document {
	t.Helper()
	doc, err := tomldoc.Parse(src)
	require.NoError(t, err)
	return doc
}

func TestResolveExisting(t *testing.T) {
	doc := mustParse(t, `
test = "yo"
[foo]
bar = "baz"
[foo.bla]
bla = "bla"
`)
	n, err := Resolve(doc.Root(), []string{"foo"}, "bar", true)
	require.NoError(t, err)
	tbl, ok := n.(*tomldoc.Table)
	require.True(t, ok)
	_, ok = tbl.Get("bar")
	require.True(t, ok)
}

func TestResolveIntoArrays(t *testing.T) {
	t.Run("inline array", func(t *testing.T) {
		doc := mustParse(t, `test = [ 1 ]`)
		n, err := Resolve(doc.Root(), []string{"test"}, "1", true)
		require.NoError(t, err)
		arr, ok := n.(*tomldoc.Array)
		require.True(t, ok)
		require.Equal(t, 1, arr.Len())
	})

	t.Run("array of tables", func(t *testing.T) {
		doc := mustParse(t, `
[[test]]
foo = "bar"
[[test]]
foo = "baz"
`)
		n, err := Resolve(doc.Root(), []string{"test"}, "2", true)
		require.NoError(t, err)
		aot, ok := n.(*tomldoc.ArrayOfTables)
		require.True(t, ok)
		require.Equal(t, 2, aot.Len())
	})

	t.Run("element of array of tables", func(t *testing.T) {
		doc := mustParse(t, "[[test]]\nfoo = \"bar\"\n[[test]]\nfoo = \"baz\"\n")
		n, err := Resolve(doc.Root(), []string{"test", "1", "foo"}, "", false)
		require.NoError(t, err)
		s, ok := n.(*tomldoc.Scalar)
		require.True(t, ok)
		require.Equal(t, "baz", s.Str())
	})

	t.Run("nested inline values", func(t *testing.T) {
		doc := mustParse(t, `x = { list = [{ name = "a" }, { name = "b" }] }`)
		n, err := Resolve(doc.Root(), []string{"x", "list", "1", "name"}, "", false)
		require.NoError(t, err)
		require.Equal(t, "b", n.(*tomldoc.Scalar).Str())
	})
}

func TestResolveMaterializes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path []string
		last string
		want tomldoc.Kind
		text string
	}{
		{
			name: "table for key lookahead",
			src:  "",
			path: []string{"a", "b"},
			last: "c",
			want: tomldoc.KindTable,
		},
		{
			name: "array of tables for index lookahead",
			src:  "",
			path: []string{"a"},
			last: "0",
			want: tomldoc.KindArrayOfTables,
		},
		{
			name: "array of tables then table",
			src:  "",
			path: []string{"a", "0"},
			last: "b",
			want: tomldoc.KindTable,
		},
		{
			name: "inline table inside inline table",
			src:  "x = {}\n",
			path: []string{"x", "y"},
			last: "z",
			want: tomldoc.KindInlineTable,
		},
		{
			name: "array inside inline table for index last",
			src:  "x = {}\n",
			path: []string{"x", "y"},
			last: "0",
			want: tomldoc.KindArray,
		},
		{
			name: "inline table appended to array",
			src:  "x = [1]\n",
			path: []string{"x", "1"},
			last: "k",
			want: tomldoc.KindInlineTable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.src)
			n, err := Resolve(doc.Root(), tt.path, tt.last, true)
			require.NoError(t, err)
			require.Equal(t, tt.want, n.Kind())
		})
	}
}

func TestResolveErrors(t *testing.T) {
	const src = `
s = "str"
arr = [1, 2]
inl = { k = 1 }

[[aot]]
x = 1
`
	tests := []struct {
		name   string
		path   []string
		create bool
		want   error
	}{
		{"missing key", []string{"nope"}, false, ErrNotFound},
		{"missing nested key", []string{"inl", "nope"}, false, ErrNotFound},
		{"index at length without create", []string{"arr", "2"}, false, ErrNotFound},
		{"index past length", []string{"arr", "3"}, true, ErrBadIndex},
		{"index past length without create", []string{"aot", "5"}, false, ErrBadIndex},
		{"non-numeric index", []string{"aot", "x"}, true, ErrBadIndex},
		{"negative index", []string{"arr", "-1"}, true, ErrBadIndex},
		{"descend into scalar", []string{"s", "x"}, true, ErrTypeMismatch},
		{"descend into array element", []string{"arr", "0", "x"}, true, ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, src)
			before := doc.String()
			_, err := Resolve(doc.Root(), tt.path, "last", tt.create)
			require.ErrorIs(t, err, tt.want)

			var pe *PathError
			require.True(t, errors.As(err, &pe))
			require.NotEmpty(t, pe.Path)
			require.Equal(t, before, doc.String())
		})
	}
}

func TestResolveRollsBackOnFailure(t *testing.T) {
	doc := mustParse(t, "top = 1\n")
	_, err := Resolve(doc.Root(), []string{"a", "b", "5"}, "c", true)
	require.ErrorIs(t, err, ErrBadIndex)

	_, ok := doc.Root().Get("a")
	require.False(t, ok, "containers created before the failure must be removed")
	require.Equal(t, "top = 1\n", doc.String())
}

func TestResolveReplacesAbsent(t *testing.T) {
	doc := tomldoc.New()
	doc.Root().Insert("a", tomldoc.Absent{})

	_, err := Resolve(doc.Root(), []string{"a"}, "", false)
	require.ErrorIs(t, err, ErrNotFound)

	n, err := Resolve(doc.Root(), []string{"a"}, "b", true)
	require.NoError(t, err)
	require.Equal(t, tomldoc.KindTable, n.Kind())
}
