package ics

import "strings"

// Text values escape backslash, semicolon, comma and newline as two-character
// sequences. Backslash goes first so already-escaped sequences are not
// escaped twice; unescaping resolves backslash last for the same reason. Both
// replacers run in a single left-to-right pass, which makes unescape the
// exact inverse of escape.
var (
	escaper = strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	unescaper = strings.NewReplacer(
		`\n`, "\n",
		`\,`, ",",
		`\;`, ";",
		`\\`, `\`,
	)
)

func escapeText(s string) string {
	return escaper.Replace(s)
}

func unescapeText(s string) string {
	return unescaper.Replace(s)
}
