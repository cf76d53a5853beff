package ui

import "image/color"

var (
	colBackground = color.RGBA{240, 240, 240, 255}
	colGridLine   = color.RGBA{204, 204, 204, 255}
	colVertex     = color.RGBA{204, 204, 204, 255}
	colSelected   = color.RGBA{52, 152, 219, 255}

	colLabel         = color.RGBA{28, 28, 28, 255}
	colLabelSelected = color.RGBA{255, 255, 255, 255}

	colBar          = color.RGBA{15, 15, 15, 255}
	colButtonBorder = color.RGBA{240, 240, 240, 255}
	colRunButton    = color.RGBA{40, 200, 40, 255}
	colStopButton   = color.RGBA{200, 40, 40, 255}
	colStepButton   = color.RGBA{40, 40, 200, 255}
	colTickButton   = color.RGBA{40, 160, 200, 255}
)
