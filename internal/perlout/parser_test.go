package perlout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/perlcheck/perlcheck/internal/diag"
)

func TestParseClassifiesAndOrdersDiagnostics(t *testing.T) {
	output := `Subroutine foo redefined at t.pl line 4.
Useless use of a constant (42) in void context at t.pl line 7.
Bareword "Frobnicate" not allowed while "strict subs" in use at t.pl line 9.
t.pl had compilation errors.
`

	want := []diag.Diagnostic{
		{Severity: diag.SeverityWarning, Message: "Subroutine foo redefined", Line: 4},
		{Severity: diag.SeverityWarning, Message: "Useless use of a constant (42) in void context", Line: 7},
		{Severity: diag.SeverityError, Message: `Bareword "Frobnicate" not allowed while "strict subs" in use`, Line: 9},
	}

	got := Parse(output)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMissingModuleIsError(t *testing.T) {
	output := `Can't locate No/Such/Module.pm in @INC (you may need to install the No::Such::Module module) (@INC contains: lib /usr/share/perl5) at script.pl line 3.
BEGIN failed--compilation aborted at script.pl line 3.
`

	// The BEGIN failed trailer restates the same error and must be dropped.
	got := Parse(output)
	assert.Len(t, got, 1)
	assert.Equal(t, diag.SeverityError, got[0].Severity)
	assert.Contains(t, got[0].Message, "No/Such/Module.pm")
	assert.Equal(t, 3, got[0].Line)
}

func TestParseCommaTailIsError(t *testing.T) {
	got := Parse(`syntax error at broken.pl line 12, near "my $x"` + "\n")

	assert.Len(t, got, 1)
	assert.Equal(t, diag.SeverityError, got[0].Severity)
	assert.Equal(t, "syntax error", got[0].Message)
	assert.Equal(t, 12, got[0].Line)
}

func TestParseDropsUnmatchedLines(t *testing.T) {
	output := `script.pl syntax OK
some informational chatter
Loading modules...
`

	assert.Empty(t, Parse(output))
}

func TestParseEmptyOutput(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestParseAnchorsOnFinalLocator(t *testing.T) {
	// The message itself contains " at "; the last locator wins.
	got := Parse("Useless use of private variable at large at t.pl line 2.\n")

	assert.Len(t, got, 1)
	assert.Equal(t, "Useless use of private variable at large", got[0].Message)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, diag.SeverityWarning, got[0].Severity)
}

func TestParsePreservesEmissionOrder(t *testing.T) {
	output := `Name "main::x" used only once: possible typo at a.pl line 2.
syntax error at a.pl line 5, near ")"
Subroutine bar redefined at a.pl line 8.
`

	got := Parse(output)
	assert.Len(t, got, 3)
	assert.Equal(t, []int{2, 5, 8}, []int{got[0].Line, got[1].Line, got[2].Line})
	assert.Equal(t, diag.SeverityWarning, got[0].Severity)
	assert.Equal(t, diag.SeverityError, got[1].Severity)
	assert.Equal(t, diag.SeverityWarning, got[2].Severity)
}
