package slackbot

import "strings"

// titleLookahead is how far into the text we look for an existing blank line
// before deciding the title needs separating from the body.
const titleLookahead = 50

// FormatResponse normalizes raw model output for Slack. Models sometimes
// emit literal "\n"/"\t" escape sequences instead of control characters;
// those are replaced first. Then, if the text does not already open with a
// blank line after its title, one is inserted at the first line break.
func FormatResponse(content string) string {
	formatted := strings.ReplaceAll(content, `\n`, "\n")
	formatted = strings.ReplaceAll(formatted, `\t`, "\t")

	head := formatted
	if len(head) > titleLookahead {
		head = head[:titleLookahead]
	}
	if !strings.Contains(head, "\n\n") {
		formatted = strings.Replace(formatted, "\n", "\n\n", 1)
	}
	return formatted
}
