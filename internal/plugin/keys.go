package plugin

// Key codes passed to OnKeyPress. Printable keys arrive as their
// character value; control keys use the byte the terminal sends for
// them; keys with no byte representation use negative codes.
const (
	KeyTab       = 9
	KeyEnter     = 13
	KeyEscape    = 27
	KeyBackspace = 127

	KeyUp       = -1
	KeyDown     = -2
	KeyLeft     = -3
	KeyRight    = -4
	KeyHome     = -5
	KeyEnd      = -6
	KeyPageUp   = -7
	KeyPageDown = -8
	KeyDelete   = -9
)
