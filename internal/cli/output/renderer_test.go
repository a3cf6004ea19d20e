package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeAuto},
		{in: "auto", want: ModeAuto},
		{in: "text", want: ModeText},
		{in: "markdown", want: ModeMarkdown},
		{in: "md", want: ModeMarkdown},
		{in: "json", want: ModeJSON},
		{in: "yaml", want: ModeYAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, ModeMarkdown, NewRenderer(&buf, &buf, ModeAuto).EffectiveMode(), "non-TTY auto is markdown")
	assert.Equal(t, ModeMarkdown, NewRenderer(&buf, &buf, "").EffectiveMode())
	assert.Equal(t, ModeText, NewRenderer(&buf, &buf, ModeText).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRenderer(&buf, &buf, ModeJSON).EffectiveMode())
}

func TestTable(t *testing.T) {
	header := []string{"Line", "Kind"}
	rows := [][]string{{"1", "generic"}, {"4", "target"}}

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		NewRenderer(&buf, &buf, ModeMarkdown).Table(header, rows)

		out := buf.String()
		assert.Contains(t, out, "| Line | Kind |")
		assert.Contains(t, out, "| 4 | target |")
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		NewRenderer(&buf, &buf, ModeText).Table(header, rows)

		out := buf.String()
		assert.Contains(t, out, "┌")
		assert.Contains(t, out, "LINE")
		assert.Contains(t, out, "generic")
	})
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, &buf, ModeMarkdown).Header(2, "Statements")
	assert.Equal(t, "## Statements\n\n", buf.String())

	buf.Reset()
	NewRenderer(&buf, &buf, ModeText).Header(1, "Statements")
	assert.Equal(t, "Statements\n", buf.String(), "no escape codes off a terminal")
}

func TestDiagnosticsGoToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Success("converted")
	r.Warning("discarded")
	r.Error("failed")

	assert.Equal(t, "✓ converted\n", out.String())
	assert.Contains(t, errOut.String(), "! discarded")
	assert.Contains(t, errOut.String(), "✗ failed")
}

func TestStructuredOutput(t *testing.T) {
	plan := PlanOutput{
		Input:      "job.hql",
		Dialect:    "hive",
		Variables:  []string{"TEMP_DB"},
		Statements: []StatementInfo{{Line: 1, Kind: "target", Emitted: true, Target: "${TEMP_DB}.t", Variables: []string{"TEMP_DB"}}},
		Mappings:   []MappingInfo{{Original: "${TEMP_DB}.t", Sanitized: "temp_db_t"}},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, &buf, ModeJSON).JSON(plan))

		var got PlanOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, plan, got)
		assert.NotContains(t, buf.String(), "discarded")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, &buf, ModeYAML).YAML(plan))

		assert.Contains(t, buf.String(), "sanitized: temp_db_t")
		var got PlanOutput
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, plan, got)
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "- **Output**: job.scala", FormatKeyValue("Output", "job.scala"))
	assert.Equal(t, "```scala\nval a=1\n```", FormatCodeBlock("scala", "val a=1\n"))
}
