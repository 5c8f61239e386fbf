package textutil

import "strings"

var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes name safe to create on any of the supported
// platforms. Path separators, colons and asterisks become dashes; quotes,
// angle brackets, pipes and question marks are dropped. Control characters
// are removed and the result is trimmed of surrounding spaces and dots.
func SanitizeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, fileNameReplacer.Replace(name))
	return strings.Trim(name, " .")
}
