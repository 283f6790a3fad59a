package reactionrole

import (
	"regexp"
	"strings"
)

// Pattern is the grammar of a single board line, as shown to users.
const Pattern = `^.*<@(?:&(\d+)|([^\n:<>@&]+))>.*?((?:<a?)?:[^\n: ]+:(?:\d+>)?|\x{00a9}|\x{00ae}|[\x{2000}-\x{3300}]|[\x{1F000}-\x{1FBFF}])`

var (
	definitionRE = regexp.MustCompile(`(?m)` + Pattern)
	roleRefRE    = regexp.MustCompile(`<@(?:&(\d+)|([^\n:<>@&]+))>`)

	// lineBreaks turns every line break into \n, the only one (?m) knows.
	lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Definition pairs a role reference with the emoji that toggles it.
//
// Exactly one of RoleID and Name is set before resolution, RoleID is
// always set after it.
type Definition struct {
	RoleID string
	Name   string
	Emoji  string
}

// Resolved reports whether the definition refers to a concrete role.
func (d Definition) Resolved() bool {
	return d.RoleID != ""
}

// Mention returns the role mention token for a resolved definition.
func (d Definition) Mention() string {
	return "<@&" + d.RoleID + ">"
}

// Parse extracts definitions from text in document order. It returns nil
// when the text holds no definition.
func Parse(text string) []Definition {
	matches := definitionRE.FindAllStringSubmatch(lineBreaks.Replace(text), -1)
	if len(matches) == 0 {
		return nil
	}

	defs := make([]Definition, 0, len(matches))
	for _, m := range matches {
		defs = append(defs, Definition{
			RoleID: m[1],
			Name:   m[2],
			Emoji:  m[3],
		})
	}
	return defs
}

// Valid reports whether text holds at least one definition.
func Valid(text string) bool {
	return definitionRE.MatchString(lineBreaks.Replace(text))
}
