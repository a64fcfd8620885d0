package loader

import "strings"

// delimiters in order of preference when counts tie.
var delimiters = []rune{';', ',', '\t', '|'}

// SniffDelimiter picks the candidate delimiter that occurs most often in the
// header line. Quoted sections are ignored. Defaults to a comma.
func SniffDelimiter(headerLine string) rune {
	counts := make(map[rune]int, len(delimiters))
	inQuotes := false
	for _, r := range headerLine {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		for _, d := range delimiters {
			if r == d {
				counts[d]++
			}
		}
	}

	best, bestCount := ',', 0
	for _, d := range delimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

func firstLine(content string) string {
	if i := strings.IndexAny(content, "\r\n"); i >= 0 {
		return content[:i]
	}
	return content
}
