package render

import (
	"math"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// ContainerWidth is the fixed width, in layout units, the image is fitted into.
const ContainerWidth = 60.0

// ImageBox fits an image of the given aspect ratio into ContainerWidth.
// Portrait images get the full width as height; landscape and square images
// get the full width.
func ImageBox(ratio float64) Box {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	if ratio < 1 {
		return Box{Width: ContainerWidth * ratio, Height: ContainerWidth}
	}
	return Box{Width: ContainerWidth, Height: ContainerWidth / ratio}
}

// AspectRatioOf returns the image's width/height, or 1 without an image.
func AspectRatioOf(data *domain.PreviewData) float64 {
	if data == nil {
		return 1
	}
	if ratio, ok := data.AspectRatio(); ok {
		return ratio
	}
	return 1
}
