package matrix

// Attr is the fixed display attribute for a strength code. The query
// engine never styles output; renderers (terminal and web alike) look
// the attribute up here.
type Attr struct {
	Color string // hex color, empty for unranked values
	Bold  bool
}

var strengthAttrs = map[Strength]Attr{
	High:   {Color: "#d9534f", Bold: true},
	Medium: {Color: "#f0ad4e", Bold: true},
	Low:    {Color: "#5bc0de", Bold: true},
}

// Attr returns the display attribute for the strength. Unranked values
// get a zero Attr and render in the surrounding style.
func (s Strength) Attr() Attr {
	return strengthAttrs[s]
}
