package batch

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tomlkit/tomldoc"
	"github.com/joshuapare/tomlkit/tomldoc/edit"
)

const envDoc = `[env]
HOME = "/root"
`

func newSession(t *testing.T, src string) *Session {
	t.Helper()
	doc, err := tomldoc.Parse(src)
	require.NoError(t, err)
	return NewSession(doc, DefaultOptions())
}

func results(rs []json.RawMessage) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

func TestSessionApply(t *testing.T) {
	s := newSession(t, envDoc)
	plan := NewPlan()
	plan.Add("env/PATH", `"/usr/bin"`)
	plan.Get("env")
	plan.Remove("env/HOME")
	plan.Get("env/HOME")
	plan.Get("env")

	res, err := s.Apply(context.Background(), plan)
	require.NoError(t, err)

	want := []string{`"ok"`, `{"HOME":"/root","PATH":"/usr/bin"}`, `"ok"`, `null`, `{"PATH":"/usr/bin"}`}
	if diff := cmp.Diff(want, results(res.Results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, res.Changed)
	assert.Equal(t, Applied{Added: 1, Removed: 1, Read: 2}, res.Applied)
	assert.Equal(t, "[env]\nPATH = \"/usr/bin\"\n", s.Document().String())
}

func TestSessionUnchangedAdd(t *testing.T) {
	s := newSession(t, envDoc)
	plan := NewPlan()
	plan.Add("env/HOME", `"/root"`)
	plan.Remove("env/missing")

	res, err := s.Apply(context.Background(), plan)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, []string{`"ok"`, `"ok"`}, results(res.Results))
	assert.Equal(t, envDoc, s.Document().String())
}

func TestSessionAbortsOnMutationError(t *testing.T) {
	s := newSession(t, envDoc)
	plan := NewPlan()
	plan.Add("env/PATH", `"/usr/bin"`)
	plan.Add("env/HOME/inner", `1`)
	plan.Add("env/LANG", `"C"`)

	res, err := s.Apply(context.Background(), plan)
	require.Error(t, err)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, 1, opErr.Index)
	assert.Equal(t, OpAdd, opErr.Op)
	assert.Equal(t, "env/HOME/inner", opErr.Path)
	require.ErrorIs(t, err, edit.ErrTypeMismatch)
	assert.True(t, strings.HasPrefix(err.Error(), "operation 1 (add env/HOME/inner): "))

	assert.Equal(t, []string{`"ok"`}, results(res.Results))
	assert.True(t, res.Changed)
	assert.Equal(t, Applied{Added: 1}, res.Applied)
}

func TestSessionBadIndexAborts(t *testing.T) {
	s := newSession(t, "arr = [1, 2]\n")
	plan := NewPlan()
	plan.Add("arr/5", `3`)

	_, err := s.Apply(context.Background(), plan)
	require.ErrorIs(t, err, edit.ErrBadIndex)
	assert.Equal(t, "arr = [1, 2]\n", s.Document().String())
}

func TestSessionGetDegradesToNull(t *testing.T) {
	s := newSession(t, "arr = [1, 2]\nname = \"x\"\n")
	plan := NewPlan()
	plan.Get("arr/9")
	plan.Get("name/inner")
	plan.Get("nope")
	plan.Get("arr/1")

	res, err := s.Apply(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, []string{`null`, `null`, `null`, `2`}, results(res.Results))
	assert.Equal(t, Applied{Read: 1}, res.Applied)
	assert.False(t, res.Changed)
}

func TestSessionHeaderMode(t *testing.T) {
	src := `[[tool.uv.index]]
name = "pytorch-cu121"
`
	s := newSession(t, src)
	plan := NewPlan()
	plan.AddUnderHeader("tool/uv/index/[[]]", "", `{"name":"pytorch-cpu"}`)
	plan.Get("tool/uv/index")

	res, err := s.Apply(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"pytorch-cu121"},{"name":"pytorch-cpu"}]`, string(res.Results[1]))
	assert.Equal(t, src+"\n[[tool.uv.index]]\nname = \"pytorch-cpu\"\n", s.Document().String())
}

func TestSessionTest(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value string
		ok    bool
	}{
		{"equal scalar", "a", `1`, true},
		{"equal object ignores order", "t", `{"y":2,"x":1}`, true},
		{"different scalar", "a", `2`, false},
		{"different type", "a", `"1"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, "a = 1\nt = { x = 1, y = 2 }\n")
			plan := NewPlan()
			plan.Test(tt.path, tt.value)
			plan.Remove("a")

			res, err := s.Apply(context.Background(), plan)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, []string{`"ok"`, `"ok"`}, results(res.Results))
				return
			}
			require.ErrorIs(t, err, ErrTestFailed)
			assert.Empty(t, res.Results)
			assert.False(t, res.Changed)
		})
	}
}

func TestSessionTestMissingPathFails(t *testing.T) {
	s := newSession(t, "a = 1\n")
	plan := NewPlan()
	plan.Test("b", `null`)

	_, err := s.Apply(context.Background(), plan)
	require.ErrorIs(t, err, edit.ErrNotFound)
}

func TestSessionCopyMove(t *testing.T) {
	src := "a = [1, 2]\nb = \"x\"\n"
	tests := []struct {
		name string
		op   Op
		want string
	}{
		{
			name: "copy key",
			op:   Op{Type: OpCopy, From: "b", Path: "c"},
			want: "a = [1, 2]\nb = \"x\"\nc = \"x\"\n",
		},
		{
			name: "copy into array slot",
			op:   Op{Type: OpCopy, From: "b", Path: "a", Append: true},
			want: "a = [1, 2, \"x\"]\nb = \"x\"\n",
		},
		{
			name: "move key",
			op:   Op{Type: OpMove, From: "b", Path: "c"},
			want: "a = [1, 2]\nc = \"x\"\n",
		},
		{
			name: "move element to end",
			op:   Op{Type: OpMove, From: "a/0", Path: "a", Append: true},
			want: "a = [2, 1]\nb = \"x\"\n",
		},
		{
			name: "move onto itself",
			op:   Op{Type: OpMove, From: "b", Path: "b"},
			want: src,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, src)
			res, err := s.Apply(context.Background(), &Plan{Ops: []Op{tt.op}})
			require.NoError(t, err)
			assert.Equal(t, []string{`"ok"`}, results(res.Results))
			assert.Equal(t, tt.want, s.Document().String())
		})
	}
}

func TestSessionCopyMoveErrors(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		want error
	}{
		{"missing source", Op{Type: OpCopy, From: "nope", Path: "c"}, edit.ErrNotFound},
		{"move into itself", Op{Type: OpMove, From: "t", Path: "t/inner"}, edit.ErrTypeMismatch},
		{"append to scalar", Op{Type: OpCopy, From: "b", Path: "b", Append: true}, edit.ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, "b = \"x\"\nt = { k = 1 }\n")
			_, err := s.Apply(context.Background(), &Plan{Ops: []Op{tt.op}})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSessionAppendCreatesArray(t *testing.T) {
	s := newSession(t, "")
	plan := &Plan{Ops: []Op{{Type: OpAdd, Path: "modules", Value: `"python-3.11"`, Append: true}}}

	_, err := s.Apply(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "modules = [\"python-3.11\"]\n", s.Document().String())
}

func TestSessionCanceled(t *testing.T) {
	s := newSession(t, envDoc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := NewPlan()
	plan.Add("env/PATH", `"/usr/bin"`)
	res, err := s.Apply(ctx, plan)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Results)
	assert.Equal(t, envDoc, s.Document().String())
}
