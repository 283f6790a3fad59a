/*
Package reactionrole turns free text into reaction role boards and keeps
role membership in sync with the reactions placed on them.

# Grammar summary

A board is any text in which one or more lines contain a role reference
followed, later on the same line, by an emoji.

	line = [text] role_ref [text] emoji [text]

	role_ref = "<@&" DIGITS ">" | "<@" NAME ">"
	emoji = custom_emoji | unicode_emoji

	custom_emoji = ["<" ["a"]] ":" EMOJI_NAME ":" [DIGITS ">"]
	unicode_emoji = U+00A9 | U+00AE | U+2000..U+3300 | U+1F000..U+1FBFF

# Grammar description

NAME - any run of characters except newline, ":", "<", ">", "@" and "&".
A NAME reference is a role that may not exist yet, it is looked up by its
exact name and created when missing.

EMOJI_NAME - any run of characters except newline, ":" and space.

Only one definition is taken from a line: the last role reference that is
followed by an emoji, paired with the first emoji after it.

# Lifecycle

A board is never stored. It is recognised again on every reaction by
looking at the message itself: authored by the bot, no visible content and
exactly one embed whose description parses into at least one definition.
Editing the embed therefore changes what future reactions do.

Examples

	<@&123456789> :smile:       existing role, custom emoji
	Ping me <@Pingable> 🔔       role created on demand
*/
package reactionrole
