package component

import "image/color"

// ColorFlash tints a fighter while On. RenderInFront draws it above the
// other fighters. Depth counts overlapping flashes; the tint clears when the
// last one reverts.
type ColorFlash struct {
	Color         color.NRGBA
	RenderInFront bool
	On            bool
	Depth         int
}

var ColorFlashComponent = NewComponent[ColorFlash]()
