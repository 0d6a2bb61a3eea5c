package common

import "github.com/diamondburned/arikawa/v3/discord"

// Colours used for embeds that don't take an element's own colour.
const (
	ColourPurple discord.Color = 0x9f84c2
	ColourRed    discord.Color = 0xe55352
	ColourYellow discord.Color = 0xffff00
)
