package sqlscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmigrate/pkg/token"
)

func feed(a *Accumulator, s *Scanner, lines ...string) []*Statement {
	var closed []*Statement
	for i, l := range lines {
		if ClassifyLine(l) != LineFragment {
			continue
		}
		if stmt, ok := a.Add(i+1, l, s.Scan(i+1, l)); ok {
			closed = append(closed, stmt)
		}
	}
	return closed
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"", LineBlank},
		{"   \t", LineBlank},
		{"-- comment", LineComment},
		{"   -- indented comment", LineComment},
		{`\set ON_ERROR_STOP on`, LineComment},
		{"SELECT 1;", LineFragment},
		{"SELECT 1 -- trailing", LineFragment},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLine(tt.line))
		})
	}
}

func TestAccumulator_SingleLineStatement(t *testing.T) {
	a := NewAccumulator()
	stmt, ok := a.Add(1, "SELECT 1;", nil)

	require.True(t, ok)
	assert.Equal(t, "SELECT 1", stmt.Text())
	assert.False(t, a.Open())
}

func TestAccumulator_MultiLineStatement(t *testing.T) {
	a := NewAccumulator()

	_, ok := a.Add(3, "SELECT a,", nil)
	assert.False(t, ok)
	assert.True(t, a.Open())

	_, ok = a.Add(4, "       b", nil)
	assert.False(t, ok)

	stmt, ok := a.Add(5, "FROM t ;  ", nil)
	require.True(t, ok)
	assert.Equal(t, "SELECT a,\n       b\nFROM t ", stmt.Text())
	assert.Equal(t, 3, stmt.StartLine())
	assert.Nil(t, a.Pending())
}

func TestAccumulator_RejoinReproducesText(t *testing.T) {
	src := []string{
		"SELECT id,",
		"  name",
		"FROM customers",
		"WHERE active = 1;",
	}
	closed := feed(NewAccumulator(), NewScanner(token.GrammarBrace), src...)

	require.Len(t, closed, 1)
	assert.Equal(t, "SELECT id,\n  name\nFROM customers\nWHERE active = 1", closed[0].Text())
}

func TestAccumulator_StatementVarsInsertionOrder(t *testing.T) {
	closed := feed(NewAccumulator(), NewScanner(token.GrammarColon),
		"SELECT * FROM t",
		"WHERE b = :beta AND a = :alpha",
		"AND b2 = :beta;",
		"SELECT :gamma;",
	)

	require.Len(t, closed, 2)
	assert.Equal(t, []string{"beta", "alpha"}, closed[0].Vars)
	assert.Equal(t, []string{"gamma"}, closed[1].Vars, "local set is cleared at each boundary")
}

func TestAccumulator_DropsPlaceholdersAfterSemicolon(t *testing.T) {
	line := "SELECT :a; -- :b"
	a := NewAccumulator()
	stmt, ok := a.Add(1, line, NewScanner(token.GrammarColon).Scan(1, line))

	require.True(t, ok)
	assert.Equal(t, "SELECT :a", stmt.Lines[0].Text)
	assert.Len(t, stmt.Lines[0].Placeholders, 1)
	assert.Equal(t, []string{"a", "b"}, stmt.Vars)
}

func TestAccumulator_UnterminatedStatementIsPending(t *testing.T) {
	a := NewAccumulator()
	closed := feed(a, NewScanner(token.GrammarBrace),
		"SELECT 1;",
		"SELECT * FROM never_closed",
	)

	assert.Len(t, closed, 1)
	require.NotNil(t, a.Pending())
	assert.Equal(t, "SELECT * FROM never_closed", a.Pending().Text())
}

func TestAccumulator_StatementCountMatchesSemicolons(t *testing.T) {
	src := []string{
		"-- header",
		"SELECT 1;",
		"",
		"SELECT 2",
		"FROM t;",
		"SELECT 3; ",
		"  -- trailing",
	}
	closed := feed(NewAccumulator(), NewScanner(token.GrammarBrace), src...)
	assert.Len(t, closed, 3)
}
