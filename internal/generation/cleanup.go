package generation

import (
	"regexp"
	"strings"
)

const fence = "```"

// fencePattern matches a code fence delimiter with an optional language tag
var fencePattern = regexp.MustCompile("```[A-Za-z0-9_+#.-]*")

// CleanCode strips every markdown code fence from model output and trims
// surrounding whitespace. Applying it twice gives the same result as once.
func CleanCode(text string) string {
	for strings.Contains(text, fence) {
		text = fencePattern.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
