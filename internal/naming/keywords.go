package naming

import "strings"

// Keywords splits an app name into words on whitespace.
func Keywords(appName string) []string {
	return strings.Fields(appName)
}

// HasKeywords reports whether name contains any of keywords. Empty keywords
// never match.
func HasKeywords(keywords []string, name string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
