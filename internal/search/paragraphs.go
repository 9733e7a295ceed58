package search

import "strings"

// Paragraphs splits article markdown into non-empty blocks separated by
// blank lines. The title, when set, becomes paragraph 0.
func Paragraphs(title, content string) []string {
	var out []string
	if t := strings.TrimSpace(title); t != "" {
		out = append(out, t)
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(block), " "))
	}
	return out
}
