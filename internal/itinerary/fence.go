package itinerary

import "strings"

var chatterPrefixes = []string{
	"Here's the travel plan:",
	"Here is the travel plan:",
	"Here is the itinerary:",
	"Here are the ride options:",
	"Travel plan:",
	"Itinerary:",
}

// ExtractJSON strips markdown fences and surrounding prose from model output
// and returns the outermost JSON object or array. Input without any JSON is
// returned trimmed so the caller's parse fails with a useful message.
func ExtractJSON(response string) string {
	response = trimFence(response)

	for _, prefix := range chatterPrefixes {
		if strings.HasPrefix(response, prefix) {
			response = strings.TrimSpace(strings.TrimPrefix(response, prefix))
			break
		}
	}

	objStart := strings.IndexByte(response, '{')
	arrStart := strings.IndexByte(response, '[')

	start := -1
	switch {
	case objStart != -1 && (arrStart == -1 || objStart < arrStart):
		start = objStart
	case arrStart != -1:
		start = arrStart
	}
	if start == -1 {
		return response
	}
	if end := findClosing(response, start); end != -1 {
		return response[start : end+1]
	}
	return response[start:]
}

// trimFence drops a markdown fence wrapping the whole response. Fences after
// leading prose need no stripping: the JSON value is isolated by bracket
// matching, which leaves backticks inside strings alone.
func trimFence(s string) string {
	s = strings.TrimSpace(s)
	for _, open := range []string{"```json", "```JSON", "```"} {
		if strings.HasPrefix(s, open) {
			s = strings.TrimPrefix(s, open)
			break
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// findClosing returns the index of the bracket closing the one at start,
// ignoring brackets inside string literals, or -1.
func findClosing(s string, start int) int {
	open := s[start]
	var closeCh byte = '}'
	if open == '[' {
		closeCh = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
