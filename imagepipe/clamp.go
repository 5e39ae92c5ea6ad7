package imagepipe

import "nftproxy/config"

// clampDimension clamps v to [ImageDimensionMin, ImageDimensionMax],
// defaulting non-positive input to ImageDimensionDefault (spec.md §4.5).
func clampDimension(v int) int {
	if v <= 0 {
		return config.ImageDimensionDefault
	}
	if v < config.ImageDimensionMin {
		return config.ImageDimensionMin
	}
	if v > config.ImageDimensionMax {
		return config.ImageDimensionMax
	}
	return v
}

// clampQuality clamps v to [ImageQualityMin, ImageQualityMax], defaulting
// non-positive input to ImageQualityDefault.
func clampQuality(v int) int {
	if v <= 0 {
		return config.ImageQualityDefault
	}
	if v < config.ImageQualityMin {
		return config.ImageQualityMin
	}
	if v > config.ImageQualityMax {
		return config.ImageQualityMax
	}
	return v
}
