package migrate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmigrate/internal/testutil"
	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/leapstack-labs/leapmigrate/pkg/dialects/hive"
	"github.com/leapstack-labs/leapmigrate/pkg/dialects/redshift"
)

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		d           *dialect.Dialect
		outputDir   string
		wantOutput  string
		wantMapping string
	}{
		{
			name:        "hive next to input",
			input:       filepath.Join("jobs", "daily.hql"),
			d:           hive.Hive,
			wantOutput:  filepath.Join("jobs", "daily.scala"),
			wantMapping: filepath.Join("jobs", "daily.searchreplace"),
		},
		{
			name:       "redshift has no side file",
			input:      filepath.Join("jobs", "users.sql"),
			d:          redshift.Redshift,
			wantOutput: filepath.Join("jobs", "users.py"),
		},
		{
			name:        "output dir",
			input:       filepath.Join("jobs", "daily.hql"),
			d:           hive.Hive,
			outputDir:   "out",
			wantOutput:  filepath.Join("out", "daily.scala"),
			wantMapping: filepath.Join("out", "daily.searchreplace"),
		},
		{
			name:       "extension override",
			input:      "daily.sql",
			d:          redshift.Redshift.With(dialect.Overrides{Extension: "ipynb.py"}),
			wantOutput: "daily.ipynb.py",
		},
		{
			name:        "no extension",
			input:       "script",
			d:           hive.Hive,
			wantOutput:  "script.scala",
			wantMapping: "script.searchreplace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, mapping := OutputPaths(tt.input, tt.d, tt.outputDir)
			assert.Equal(t, tt.wantOutput, output)
			assert.Equal(t, tt.wantMapping, mapping)
		})
	}
}

func TestConvert_Hive(t *testing.T) {
	input := testutil.WriteScript(t, "daily.hql", testutil.HiveScript)

	out, err := Convert(context.Background(), input, Options{
		Dialect: hive.Hive,
		Logger:  testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	dir := filepath.Dir(input)
	assert.Equal(t, filepath.Join(dir, "daily.scala"), out.Output)
	assert.Equal(t, filepath.Join(dir, "daily.searchreplace"), out.MappingFile)

	generated := testutil.ReadFile(t, out.Output)
	assert.Contains(t, generated, `val TEMP_DB="TEMP_DB"`)
	assert.Contains(t, generated, `temp_db_daily_orders_df.createOrReplaceTempView("temp_db_daily_orders")`)

	assert.Equal(t, "${TEMP_DB}.daily_orders -> temp_db_daily_orders\n", testutil.ReadFile(t, out.MappingFile))
	assert.Equal(t, 4, len(out.Result.Statements))
	assert.Equal(t, 2, out.Result.Emitted())
}

func TestConvert_Redshift(t *testing.T) {
	input := testutil.WriteScript(t, "users.sql", testutil.RedshiftScript)

	out, err := Convert(context.Background(), input, Options{Dialect: redshift.Redshift})
	require.NoError(t, err)

	assert.Empty(t, out.MappingFile)
	assert.Contains(t, testutil.ReadFile(t, out.Output), "user_id='user_id'")

	entries, err := os.ReadDir(filepath.Dir(input))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "only input and generated file")
}

func TestConvert_SkipMappings(t *testing.T) {
	input := testutil.WriteScript(t, "daily.hql", testutil.HiveScript)

	out, err := Convert(context.Background(), input, Options{Dialect: hive.Hive, SkipMappings: true})
	require.NoError(t, err)

	assert.Empty(t, out.MappingFile)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(input), "daily.searchreplace"))
}

func TestConvert_OutputDir(t *testing.T) {
	input := testutil.WriteScript(t, "daily.hql", testutil.HiveScript)
	outDir := filepath.Join(t.TempDir(), "nested", "out")

	out, err := Convert(context.Background(), input, Options{Dialect: hive.Hive, OutputDir: outDir})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "daily.scala"))
	assert.FileExists(t, filepath.Join(outDir, "daily.searchreplace"))
	assert.Equal(t, filepath.Join(outDir, "daily.scala"), out.Output)
}

func TestConvert_MissingInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "missing.hql")

	_, err := Convert(context.Background(), input, Options{Dialect: hive.Hive})
	require.Error(t, err)

	var fae *FileAccessError
	require.True(t, errors.As(err, &fae))
	assert.Equal(t, "open input", fae.Op)
	assert.Equal(t, input, fae.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, filepath.Join(dir, "missing.scala"))
}

func TestConvert_UnwritableOutput(t *testing.T) {
	input := testutil.WriteScript(t, "daily.hql", testutil.HiveScript)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	_, err := Convert(context.Background(), input, Options{
		Dialect:   hive.Hive,
		OutputDir: filepath.Join(blocker, "out"),
	})

	var fae *FileAccessError
	require.ErrorAs(t, err, &fae)
	assert.Equal(t, "create output directory", fae.Op)
}

func TestConvert_SameFile(t *testing.T) {
	input := testutil.WriteScript(t, "job.scala", "SELECT 1;\n")

	_, err := Convert(context.Background(), input, Options{Dialect: hive.Hive})
	assert.ErrorIs(t, err, ErrSameFile)
	assert.Equal(t, "SELECT 1;\n", testutil.ReadFile(t, input), "input untouched")
}

func TestConvert_CancelledRemovesOutputs(t *testing.T) {
	input := testutil.WriteScript(t, "daily.hql", testutil.HiveScript)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Convert(ctx, input, Options{Dialect: hive.Hive})
	require.ErrorIs(t, err, context.Canceled)

	var fae *FileAccessError
	assert.False(t, errors.As(err, &fae))

	dir := filepath.Dir(input)
	assert.NoFileExists(t, filepath.Join(dir, "daily.scala"))
	assert.NoFileExists(t, filepath.Join(dir, "daily.searchreplace"))
}

func TestConvert_NilDialect(t *testing.T) {
	_, err := Convert(context.Background(), "x.hql", Options{})
	assert.ErrorContains(t, err, "dialect is required")
}
