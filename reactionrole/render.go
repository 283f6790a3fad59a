package reactionrole

// EmbedColor is the colour of a published board's embed.
const EmbedColor = 0x2F4562

// Render replaces bare role names in text with mentions of the roles they
// were resolved to and returns the emoji to attach, one per definition.
//
// Role ids already present in text are kept as they are, as are names no
// definition resolved.
func Render(text string, defs []Definition) (string, []string) {
	mentions := make(map[string]string, len(defs))
	emoji := make([]string, 0, len(defs))
	for _, d := range defs {
		emoji = append(emoji, d.Emoji)
		if d.Name == "" || !d.Resolved() {
			continue
		}
		if _, ok := mentions[d.Name]; !ok {
			mentions[d.Name] = d.Mention()
		}
	}

	published := roleRefRE.ReplaceAllStringFunc(text, func(token string) string {
		m := roleRefRE.FindStringSubmatch(token)
		if m[1] != "" {
			return token
		}
		if mention, ok := mentions[m[2]]; ok {
			return mention
		}
		return token
	})
	return published, emoji
}
