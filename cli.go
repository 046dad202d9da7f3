// FILE: cli.go
package config

import (
	"strings"
)

// parseArgs tokenizes --key value / --key=value arguments into a map keyed by
// normalized dotted path. A flag with no following value is boolean true unless
// its key is listed in valueFlags. A lone "--" stops parsing.
func parseArgs(args []string, valueFlags map[string]bool) (Value, error) {
	fields := make(map[string]Value)

	i := 0
	for i < len(args) {
		arg := args[i]
		if arg == "--" {
			// Everything after the separator belongs to the application
			break
		}
		if !strings.HasPrefix(arg, "--") || strings.HasPrefix(arg, "---") {
			return Value{}, malformed(arg, "expected --key, --key=value or --key value")
		}

		argContent := strings.TrimPrefix(arg, "--")

		var keyPath string
		var value Value

		if name, raw, hasValue := strings.Cut(argContent, "="); hasValue {
			keyPath = NormalizeFlagKey(name)
			if keyPath == "" {
				return Value{}, malformed(arg, "empty key")
			}
			value = String(raw)
			i++
		} else {
			keyPath = NormalizeFlagKey(argContent)
			if keyPath == "" {
				return Value{}, malformed(arg, "empty key")
			}

			isBareFlag := i+1 >= len(args) || strings.HasPrefix(args[i+1], "--")
			if isBareFlag {
				if valueFlags[keyPath] {
					return Value{}, malformed(arg, "flag requires a value")
				}
				value = Bool(true)
				i++
			} else {
				value = String(args[i+1])
				i += 2
			}
		}

		if !validKeyPath(keyPath) {
			return Value{}, malformed(arg, "invalid key path "+keyPath)
		}
		fields[keyPath] = value
	}

	return Map(fields), nil
}

// NormalizeFlagKey strips leading dashes and maps the remaining dashes to the
// path separator: --database-url becomes database.url.
func NormalizeFlagKey(flag string) string {
	return strings.ReplaceAll(strings.TrimLeft(flag, "-"), "-", ".")
}

func malformed(token, msg string) *ParseError {
	return &ParseError{Kind: ParseMalformedArgument, Token: token, Msg: msg}
}

// validKeyPath rejects paths with empty segments such as "a..b" or "a."
func validKeyPath(path string) bool {
	for _, segment := range strings.Split(path, ".") {
		if !isValidKeySegment(segment) {
			return false
		}
	}
	return true
}
