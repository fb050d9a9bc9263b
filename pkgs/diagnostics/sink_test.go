package diagnostics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReportSyntaxFormats(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.ReportSyntax(3, "", "Unexpected character.")
	require.Equal(t, "[line 3] Error: Unexpected character.\n", buf.String())
	require.True(t, s.HadError())
}

func TestReportSyntaxWithLexeme(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.ReportSyntax(5, "+", "Expect expression.")
	require.Equal(t, "[line 5] Error at '+': Expect expression.\n", buf.String())
}

func TestReportAtEnd(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.ReportAtEnd(7, "Expect ';' after value.")
	require.Equal(t, "[line 7] Error at end: Expect ';' after value.\n", buf.String())
}

func TestReportRuntime(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.ReportRuntime("Undefined Identifier 'x' .", 2)
	require.Equal(t, "Undefined Identifier 'x' .\n[line 2]\n", buf.String())
	require.True(t, s.HadRuntimeError())
}

func TestResetClearsBothFlags(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.ReportSyntax(1, "", "oops")
	s.ReportRuntime("oops", 1)
	require.True(t, s.HadError())
	require.True(t, s.HadRuntimeError())

	s.Reset()
	require.False(t, s.HadError())
	require.False(t, s.HadRuntimeError())
}
