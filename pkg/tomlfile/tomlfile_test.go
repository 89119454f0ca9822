package tomlfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tomlkit/internal/testutil"
	"github.com/joshuapare/tomlkit/pkg/tomlfile"
	"github.com/joshuapare/tomlkit/tomldoc/batch"
)

func TestAdd(t *testing.T) {
	path := testutil.WriteDocFile(t, "a.toml", "# settings\nname = \"demo\" # keep\n")

	require.NoError(t, tomlfile.Add(path, "name", `"renamed"`, nil))
	require.NoError(t, tomlfile.Add(path, "tags", `["a", "b"]`, nil))

	assert.Equal(t, "# settings\nname = \"renamed\" # keep\ntags = [\"a\", \"b\"]\n", testutil.ReadFile(t, path))
}

func TestAddCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.toml")

	require.NoError(t, tomlfile.Add(path, "tool/ruff/line-length", `100`, nil))

	raw, err := tomlfile.Get(path, "tool")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ruff":{"line-length":100}}`, string(raw))
}

func TestAddIndexPolicy(t *testing.T) {
	path := testutil.WriteDocFile(t, "a.toml", "arr = [1, 2]\n")

	err := tomlfile.Add(path, "arr/5", `3`, nil)
	require.ErrorIs(t, err, tomlfile.ErrBadIndex)
	assert.Equal(t, "arr = [1, 2]\n", testutil.ReadFile(t, path))

	require.NoError(t, tomlfile.Add(path, "arr/5", `3`, &tomlfile.Options{ClampIndex: true}))
	assert.Equal(t, "arr = [1, 2, 3]\n", testutil.ReadFile(t, path))
}

func TestAddUnderHeader(t *testing.T) {
	path := testutil.SetupDocFile(t, testutil.FixturePyproject, "pyproject.toml")

	require.NoError(t, tomlfile.AddUnderHeader(path, "tool/uv/index/[[]]", "",
		`{"name":"pytorch-cpu","url":"https://download.pytorch.org/whl/cpu","explicit":true}`, nil))

	want := testutil.ReadFixture(t, testutil.FixturePyproject) + `
[[tool.uv.index]]
name = "pytorch-cpu"
url = "https://download.pytorch.org/whl/cpu"
explicit = true
`
	assert.Equal(t, want, testutil.ReadFile(t, path))
}

func TestRemove(t *testing.T) {
	path := testutil.SetupDocFile(t, testutil.FixtureReplit, ".replit")

	require.NoError(t, tomlfile.Remove(path, "hidden", nil))
	require.NoError(t, tomlfile.Remove(path, "hidden", nil))

	got := testutil.ReadFile(t, path)
	assert.NotContains(t, got, "hidden")
	_, err := tomlfile.Get(path, "hidden")
	require.ErrorIs(t, err, tomlfile.ErrNotFound)
}

func TestRemoveBadIndex(t *testing.T) {
	path := testutil.WriteDocFile(t, "a.toml", "arr = [1]\n")

	require.ErrorIs(t, tomlfile.Remove(path, "arr/3", nil), tomlfile.ErrBadIndex)
	require.ErrorIs(t, tomlfile.Remove(path, "arr/x", nil), tomlfile.ErrBadIndex)
}

func TestGet(t *testing.T) {
	path := testutil.SetupDocFile(t, testutil.FixtureReplit, ".replit")

	tests := []struct {
		key  string
		want string
	}{
		{"run", `"python main.py"`},
		{"modules/0", `"python-3.11"`},
		{"ports/0", `{"localPort":8080,"externalPort":80}`},
		{"deployment/run", `["sh","-c","python main.py"]`},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			raw, err := tomlfile.Get(path, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(raw))
		})
	}

	_, err := tomlfile.Get(path, "run/inner")
	require.ErrorIs(t, err, tomlfile.ErrTypeMismatch)
}

func TestApply(t *testing.T) {
	path := testutil.SetupDocFile(t, testutil.FixtureReplit, ".replit")

	plan := batch.NewPlan()
	plan.Add("entrypoint", `"app.py"`)
	plan.Add("run", `"python app.py"`)
	plan.Get("entrypoint")

	res, err := tomlfile.Apply(context.Background(), path, plan, &tomlfile.Options{CreateBackup: true})
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Equal(t, `"app.py"`, string(res.Results[2]))

	want := strings.NewReplacer(`"python main.py"`+"\n", `"python app.py"`+"\n", `entrypoint = "main.py"`, `entrypoint = "app.py"`).
		Replace(testutil.ReadFixture(t, testutil.FixtureReplit))
	assert.Equal(t, want, testutil.ReadFile(t, path))
	assert.Equal(t, testutil.ReadFixture(t, testutil.FixtureReplit), testutil.ReadFile(t, path+".bak"))
}

func TestApplyReadOnlyPlanSkipsBackup(t *testing.T) {
	path := testutil.WriteDocFile(t, "a.toml", "a = 1\n")

	plan := batch.NewPlan()
	plan.Get("a")
	_, err := tomlfile.Apply(context.Background(), path, plan, &tomlfile.Options{CreateBackup: true})
	require.NoError(t, err)

	_, err = os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestApplyPatch(t *testing.T) {
	path := testutil.SetupDocFile(t, testutil.FixturePyproject, "pyproject.toml")

	patch := `[
		{"op":"test","path":"/project/name","value":"demo"},
		{"op":"replace","path":"/project/version","value":"0.2.0"},
		{"op":"add","path":"/project/dependencies/-","value":"rich"},
		{"op":"remove","path":"/project/dependencies/0"}
	]`
	res, err := tomlfile.ApplyPatch(context.Background(), path, []byte(patch), nil)
	require.NoError(t, err)
	assert.Equal(t, batch.Applied{Added: 2, Removed: 1, Read: 1}, res.Applied)

	raw, err := tomlfile.Get(path, "project")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"demo","version":"0.2.0","dependencies":["numpy","rich"]}`, string(raw))
}

func TestApplyPatchFailedTestWritesNothing(t *testing.T) {
	path := testutil.SetupDocFile(t, testutil.FixturePyproject, "pyproject.toml")

	patch := `[
		{"op":"replace","path":"/project/version","value":"0.2.0"},
		{"op":"test","path":"/project/name","value":"other"}
	]`
	_, err := tomlfile.ApplyPatch(context.Background(), path, []byte(patch), nil)
	require.ErrorIs(t, err, batch.ErrTestFailed)
	assert.Equal(t, testutil.ReadFixture(t, testutil.FixturePyproject), testutil.ReadFile(t, path))
}

func TestPreview(t *testing.T) {
	path := testutil.WriteDocFile(t, "a.toml", "a = 1\n")

	plan := batch.NewPlan()
	plan.Add("b", `2`)
	before, after, err := tomlfile.Preview(context.Background(), path, plan, nil)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n", before)
	assert.Equal(t, "a = 1\nb = 2\n", after)
	assert.Equal(t, "a = 1\n", testutil.ReadFile(t, path))
}

func TestKeepFormattingOnEqual(t *testing.T) {
	src := "n = 0x10\n"
	off := false

	path := testutil.WriteDocFile(t, "a.toml", src)
	require.NoError(t, tomlfile.Add(path, "n", `16`, nil))
	assert.Equal(t, src, testutil.ReadFile(t, path))

	require.NoError(t, tomlfile.Add(path, "n", `16`, &tomlfile.Options{KeepFormattingOnEqual: &off}))
	assert.Equal(t, "n = 16\n", testutil.ReadFile(t, path))
}
