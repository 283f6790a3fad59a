package reactionrole

import (
	"regexp"
	"strings"
)

var channelRE = regexp.MustCompile(`^<#(\d+)>`)

// ParseCommand splits a command body into the mentioned channel id and the
// board text that follows it. The body must start with a channel mention.
func ParseCommand(body string) (channelID, text string, ok bool) {
	body = strings.TrimSpace(body)
	m := channelRE.FindStringSubmatch(body)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(body[len(m[0]):]), true
}

// Usage explains the command and its grammar.
func Usage(command string) string {
	return `Usage: ` + command + ` #channel-mention
Now you can type whatever you want here
Any line that has a role @Mention and an :emoji:
will become a reaction assignable role.
if you have multiple roles you want to be assignable
make sure each @Role and :emoji: are on separate lines.
you can also have the bot create roles that do not yet exist for you
by using <@My New Cool Role Name> or course with an :emoji: on the same line
And here is the exact regex used if you're curious.
` + Pattern + `
Final thing, at least one reaction role is required.`
}
