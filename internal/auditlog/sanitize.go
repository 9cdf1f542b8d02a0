package auditlog

import "strings"

// Option flags whose values carry message content or local file paths.
// Their values are replaced in the stored argv so the log never retains
// bodies or attachment locations.
var sensitiveFlags = map[string]bool{
	"--body":   true,
	"--attach": true,
}

// Redacted is the marker stored in place of a sensitive value.
const Redacted = "[REDACTED]"

// SanitizeArgs returns a copy of argv with the value following any
// sensitive flag replaced by the redaction marker. Flag names themselves
// are kept so the log still shows which options were used.
func SanitizeArgs(argv []string) []string {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		// The --flag=value form carries the value inside the argument.
		if name, _, found := strings.Cut(arg, "="); found && sensitiveFlags[name] {
			out = append(out, name+"="+Redacted)
			continue
		}

		out = append(out, arg)
		if sensitiveFlags[arg] && i+1 < len(argv) {
			out = append(out, Redacted)
			i++
		}
	}
	return out
}
