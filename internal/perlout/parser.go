// Package perlout extracts structured diagnostics from the combined output
// of a "perl -c" invocation. The interpreter's phrasing is the only signal
// available, so all grammar knowledge is concentrated here.
package perlout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/perlcheck/perlcheck/internal/diag"
)

// reLocator matches the interpreter's standard diagnostic locator suffix,
// "... at FILE line N." or "... at FILE line N, <detail>". The leading group
// is greedy so a message that itself contains " at " still anchors on the
// final locator.
var reLocator = regexp.MustCompile(`^(.*) at \S+ line (\d+)(\.|, .*)$`)

// fatalPhrasings are message prefixes the interpreter only emits for fatal
// compilation errors even though the line ends with a bare period like a
// warning would.
var fatalPhrasings = []*regexp.Regexp{
	regexp.MustCompile(`^syntax error`),
	regexp.MustCompile(`^Can't locate .* in @INC`),
	regexp.MustCompile(`^Global symbol `),
	regexp.MustCompile(`^Bareword `),
	regexp.MustCompile(`^Missing right curly`),
}

// trailerPhrasings are locator-bearing lines that only restate an error
// already reported on a preceding line. They are dropped so one underlying
// issue yields exactly one diagnostic.
var trailerPhrasings = []*regexp.Regexp{
	regexp.MustCompile(`^BEGIN failed--compilation aborted`),
	regexp.MustCompile(`^Compilation failed in require`),
	regexp.MustCompile(`^Execution of .* aborted due to compilation errors`),
}

// Parse converts raw interpreter output into diagnostics, preserving the
// emission order. Lines that do not match the locator grammar ("syntax OK",
// progress chatter, continuation lines) are dropped.
func Parse(output string) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, line := range strings.Split(output, "\n") {
		if d, ok := parseLine(strings.TrimRight(line, "\r")); ok {
			diags = append(diags, d)
		}
	}
	return diags
}

func parseLine(line string) (diag.Diagnostic, bool) {
	m := reLocator.FindStringSubmatch(line)
	if m == nil {
		return diag.Diagnostic{}, false
	}

	lineNo, err := strconv.Atoi(m[2])
	if err != nil || lineNo < 1 {
		return diag.Diagnostic{}, false
	}

	for _, re := range trailerPhrasings {
		if re.MatchString(m[1]) {
			return diag.Diagnostic{}, false
		}
	}

	return diag.Diagnostic{
		Severity: classify(m[1], m[3]),
		Message:  m[1],
		Line:     lineNo,
	}, true
}

// classify decides warning vs. error from the locator tail and the message
// phrasing. A ", near ..." style tail is strict-failure output; a bare "."
// is warning-style unless the message itself is a known fatal phrasing.
func classify(message, tail string) diag.Severity {
	if strings.HasPrefix(tail, ",") {
		return diag.SeverityError
	}
	for _, re := range fatalPhrasings {
		if re.MatchString(message) {
			return diag.SeverityError
		}
	}
	return diag.SeverityWarning
}
