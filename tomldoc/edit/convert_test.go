package edit

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tomlkit/tomldoc"
)

func formatValue(t *testing.T, n tomldoc.Node) string {
	t.Helper()
	v, ok := n.(tomldoc.Value)
	require.True(t, ok, "expected a value, got %s", n.Kind())
	return tomldoc.FormatValue(v)
}

func TestFromJSONInline(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"array", `[1, 2, 3]`, `[1, 2, 3]`},
		{"object", `{"a": 1, "b": 2}`, `{ a = 1, b = 2 }`},
		{
			"object with array of objects",
			`{"who": 123, "arr": [{"a": 1, "b": 2}, {"a": 3, "b": 4}]}`,
			`{ who = 123, arr = [{ a = 1, b = 2 }, { a = 3, b = 4 }] }`,
		},
		{"float", `1.4`, `1.4`},
		{"integral float", `1.0`, `1.0`},
		{"exponent", `1e3`, `1000.0`},
		{"integer", `-42`, `-42`},
		{"beyond int64", `9223372036854775808`, `9.223372036854776e+18`},
		{"string", `"hi \"there\""`, `'hi "there"'`},
		{"bool", `false`, `false`},
		{"empty array", `[]`, `[]`},
		{"empty object", `{}`, `{}`},
		{"quoted key", `{"a b": 1}`, `{ "a b" = 1 }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := FromJSON(tt.json, true)
			require.NoError(t, err)
			require.Equal(t, tt.want, formatValue(t, n))
		})
	}
}

func TestFromJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "table",
			json: `{"a": 1, "b": 2}`,
			want: "[arr]\na = 1\nb = 2",
		},
		{
			name: "array of tables",
			json: `[{"a": 1, "b": 2}, {"a": 3, "b": 4}]`,
			want: "[[arr]]\na = 1\nb = 2\n\n[[arr]]\na = 3\nb = 4",
		},
		{
			name: "array of tables with nested arrays",
			json: `[{"a": 1, "b": [1, 2, 3]}, {"a": 3, "b": [2, 3, 4]}]`,
			want: "[[arr]]\na = 1\nb = [1, 2, 3]\n\n[[arr]]\na = 3\nb = [2, 3, 4]",
		},
		{
			name: "nested tables",
			json: `{"x": 1, "sub": {"y": "z"}}`,
			want: "[arr]\nx = 1\n\n[arr.sub]\ny = \"z\"",
		},
		{
			name: "mixed array stays inline",
			json: `[1, "two", [3]]`,
			want: `arr = [1, "two", [3]]`,
		},
		{
			name: "objects beside values become inline tables",
			json: `["a", {"b": 1}]`,
			want: `arr = ["a", { b = 1 }]`,
		},
		{
			name: "table before a value",
			json: `[{"a": 1}, 2]`,
			want: `arr = [{ a = 1 }, 2]`,
		},
		{
			name: "mixed array inside a table",
			json: `{"d": [1, {"e": 2}]}`,
			want: "[arr]\nd = [1, { e = 2 }]",
		},
		{
			name: "nested array of objects",
			json: `[[{"a": 1}], [{"a": 2}]]`,
			want: `arr = [[{ a = 1 }], [{ a = 2 }]]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := FromJSON(tt.json, false)
			require.NoError(t, err)
			doc := tomldoc.New()
			doc.Root().Insert("arr", n)
			require.Equal(t, tt.want, strings.TrimSpace(doc.String()))
		})
	}
}

func TestFromJSONErrors(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		inline bool
	}{
		{"invalid json", `{"a":`, true},
		{"null in inline table", `{"a": null}`, true},
		{"null in array", `[1, null]`, false},
		{"null beside a table", `[{"a": 1}, null]`, false},
		{"overflowing float", `1e400`, true},
		{"deep null", `{"a": {"b": [null]}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON(tt.json, tt.inline)
			require.ErrorIs(t, err, ErrConversion)
		})
	}
}

func TestFromJSONNull(t *testing.T) {
	n, err := FromJSON(`null`, true)
	require.NoError(t, err)
	require.Equal(t, tomldoc.KindAbsent, n.Kind())

	n, err = FromJSON(`{"a": null, "b": 1}`, false)
	require.NoError(t, err)
	tbl := n.(*tomldoc.Table)
	a, ok := tbl.Get("a")
	require.True(t, ok)
	require.Equal(t, tomldoc.KindAbsent, a.Kind())
}

func TestConvertRoundTrip(t *testing.T) {
	values := []string{
		`1`,
		`-3`,
		`1.5`,
		`12345678901234567890`,
		`"str"`,
		`"unicode é and \"quotes\"\n"`,
		`true`,
		`[1, 2, 3]`,
		`[]`,
		`{}`,
		`[[1, 2], [3]]`,
		`{"a": {"b": {"c": [1, "x", false]}}}`,
		`[{"a": 1}, {"a": 2}]`,
		`{"name": "torch", "extras": ["cpu", "cuda"], "opts": {"k": 1.25}}`,
	}
	for _, inline := range []bool{true, false} {
		for _, v := range values {
			t.Run(v, func(t *testing.T) {
				n, err := FromJSON(v, inline)
				require.NoError(t, err)
				out, err := ToJSON(n)
				require.NoError(t, err)
				requireJSONEqual(t, v, string(out))
			})
		}
	}

	t.Run("null member of a block table", func(t *testing.T) {
		n, err := FromJSON(`{"a": null, "b": [true]}`, false)
		require.NoError(t, err)
		out, err := ToJSON(n)
		require.NoError(t, err)
		requireJSONEqual(t, `{"a": null, "b": [true]}`, string(out))
	})
}

func TestConvertPrintRoundTrip(t *testing.T) {
	values := []string{
		`1`,
		`"unicode é and \"quotes\"\n"`,
		`[1, 2, 3]`,
		`[]`,
		`{}`,
		`[[1, 2], [3]]`,
		`["a", {"b": 1}]`,
		`[1, {"e": 2}, [3, {"f": [4]}]]`,
		`{"d": [1, {"e": 2}], "t": {"u": true}}`,
		`[{"a": 1}, {"a": 2, "b": {"c": "x"}}]`,
		`[[{"a": 1}]]`,
	}
	for _, inline := range []bool{true, false} {
		for _, v := range values {
			t.Run(v, func(t *testing.T) {
				n, err := FromJSON(v, inline)
				require.NoError(t, err)
				doc := tomldoc.New()
				doc.Root().Insert("v", n)

				reparsed, err := tomldoc.Parse(doc.String())
				require.NoError(t, err, "printed:\n%s", doc.String())
				got, err := New(reparsed, Options{}).Get("v")
				require.NoError(t, err)
				requireJSONEqual(t, v, string(got))
			})
		}
	}
}

func TestToJSONFromDocument(t *testing.T) {
	doc, err := tomldoc.Parse(`title = "x"
when = 1979-05-27T07:32:00Z
day = 1979-05-27
hex = 0xff
pi = 3.14
big = 1e20

[owner]
name = "Tom"
langs = ["go", 'toml']

[[owner.pets]]
kind = "cat"
`)
	require.NoError(t, err)

	out, err := ToJSON(doc.Root())
	require.NoError(t, err)
	requireJSONEqual(t, `{
		"title": "x",
		"when": "1979-05-27T07:32:00Z",
		"day": "1979-05-27",
		"hex": 255,
		"pi": 3.14,
		"big": 1e20,
		"owner": {"name": "Tom", "langs": ["go", "toml"], "pets": [{"kind": "cat"}]}
	}`, string(out))

	// Keys keep document order.
	require.True(t, strings.HasPrefix(string(out), `{"title":"x","when":`), string(out))
}

func TestToJSONNonFinite(t *testing.T) {
	doc, err := tomldoc.Parse("a = nan\nb = -inf\n")
	require.NoError(t, err)
	for _, key := range []string{"a", "b"} {
		n, _ := doc.Root().Get(key)
		_, err := ToJSON(n)
		require.ErrorIs(t, err, ErrConversion)
	}
}

func requireJSONEqual(t *testing.T, want, got string) {
	t.Helper()
	var w, g any
	require.NoError(t, json.Unmarshal([]byte(want), &w), "want: %s", want)
	require.NoError(t, json.Unmarshal([]byte(got), &g), "got: %s", got)
	if diff := cmp.Diff(w, g); diff != "" {
		t.Fatalf("JSON mismatch (-want +got):\n%s", diff)
	}
}
