package testutil

// Fixture documents relative to the repository root.
const (
	// FixtureReplit is a workspace configuration with sections, arrays and
	// an array of tables.
	FixtureReplit = "testdata/fixtures/replit.toml"

	// FixturePyproject is a project manifest using dotted tables, a
	// multi-line array and inline tables inside arrays.
	FixturePyproject = "testdata/fixtures/pyproject.toml"
)
