package services

// palette holds the colors handed out to icon keys, in assignment order
var palette = []string{
	"#e57373",
	"#64b5f6",
	"#81c784",
	"#ffb74d",
	"#ba68c8",
	"#4db6ac",
	"#f06292",
	"#a1887f",
}

// ColorChooser assigns display colors to icon keys. Assignment is
// deterministic within a run: the same key always gets the same color, new
// keys take the next palette slot, wrapping when the palette is exhausted.
// Not safe for concurrent use; each render pass owns its own chooser.
type ColorChooser struct {
	assigned map[string]string
	next     int
}

// NewColorChooser creates an empty ColorChooser
func NewColorChooser() *ColorChooser {
	return &ColorChooser{assigned: make(map[string]string)}
}

// ColorForName returns the color assigned to name, assigning one on first use
func (c *ColorChooser) ColorForName(name string) string {
	if color, ok := c.assigned[name]; ok {
		return color
	}
	color := palette[c.next%len(palette)]
	c.assigned[name] = color
	c.next++
	return color
}
