package model

// ScrapClass expresses whether a remainder is still worth keeping for the
// 700-800 mm reuse range.
type ScrapClass string

const (
	ScrapUsable    ScrapClass = "USABLE"
	ScrapNotUsable ScrapClass = "NOT USABLE"
)

// ClassifyScrap classifies a remainder length for future usability. A
// remainder at or above usableThreshold can directly yield, or be combined
// with a similar future remainder to yield, a piece in the reuse range;
// anything shorter is written off.
func ClassifyScrap(scrap, usableThreshold float64) ScrapClass {
	if scrap >= usableThreshold {
		return ScrapUsable
	}
	return ScrapNotUsable
}
