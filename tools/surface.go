package tools

import (
	"cmp"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

// Clamp limits v to the range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if hi < v {
		return hi
	}
	return v
}

// PickSurfaceFormat prefers 8-bit UNORM formats in sRGB nonlinear space. A
// lone undefined format means the surface has no preference.
func PickSurfaceFormat(formats []khr_surface.SurfaceFormat) (khr_surface.SurfaceFormat, error) {
	if len(formats) == 0 {
		return khr_surface.SurfaceFormat{}, errors.New("surface reports no formats")
	}

	picked := formats[0]
	if len(formats) == 1 {
		if formats[0].Format == core1_0.FormatUndefined {
			picked.Format = core1_0.FormatB8G8R8A8UnsignedNormalized
			picked.ColorSpace = requestedColorSpace
		}
	} else {
	requested:
		for _, requestedFormat := range requestedFormats {
			for _, format := range formats {
				if format.Format == requestedFormat && format.ColorSpace == requestedColorSpace {
					picked = format
					break requested
				}
			}
		}
	}

	if picked.ColorSpace != requestedColorSpace {
		return picked, errors.Newf("surface format %s uses color space %s", picked.Format, picked.ColorSpace)
	}
	return picked, nil
}

// PickPresentMode takes mailbox when offered, then immediate, and falls back
// to FIFO which every driver must support.
func PickPresentMode(presentModes []khr_surface.PresentMode) khr_surface.PresentMode {
	picked := khr_surface.PresentModeFIFO
	for _, mode := range presentModes {
		if mode == khr_surface.PresentModeMailbox {
			return mode
		}
		if mode == khr_surface.PresentModeImmediate {
			picked = mode
		}
	}
	return picked
}

// undefinedExtent is the 0xFFFFFFFF width the driver reports when the
// swapchain decides the surface size, widened to int by the binding.
const undefinedExtent = int(^uint32(0))

// ChooseSwapchainExtent uses the surface's current extent when it has one.
// An undefined width means the swapchain decides, so the requested size is
// clamped to the surface limits.
func ChooseSwapchainExtent(caps *khr_surface.SurfaceCapabilities, requested core1_0.Extent2D) core1_0.Extent2D {
	if caps.CurrentExtent.Width != undefinedExtent && caps.CurrentExtent.Width >= 0 {
		return caps.CurrentExtent
	}

	return core1_0.Extent2D{
		Width:  Clamp(requested.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: Clamp(requested.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// ChoosePreTransform prefers the identity transform.
func ChoosePreTransform(caps *khr_surface.SurfaceCapabilities) khr_surface.SurfaceTransformFlags {
	if (caps.SupportedTransforms & khr_surface.TransformIdentity) != 0 {
		return khr_surface.TransformIdentity
	}
	return caps.CurrentTransform
}

var compositeAlphaPreference = []khr_surface.CompositeAlphaFlags{
	khr_surface.CompositeAlphaPreMultiplied,
	khr_surface.CompositeAlphaPostMultiplied,
	khr_surface.CompositeAlphaInherit,
}

// ChooseCompositeAlpha returns the first supported alpha mode, falling back to opaque.
func ChooseCompositeAlpha(caps *khr_surface.SurfaceCapabilities) khr_surface.CompositeAlphaFlags {
	for _, alpha := range compositeAlphaPreference {
		if (caps.SupportedCompositeAlpha & alpha) != 0 {
			return alpha
		}
	}
	return khr_surface.CompositeAlphaOpaque
}

// ChooseImageCount clamps desired into the surface's image count range. A
// MaxImageCount of 0 means there is no upper bound.
func ChooseImageCount(caps *khr_surface.SurfaceCapabilities, desired int) int {
	if desired < caps.MinImageCount {
		return caps.MinImageCount
	}
	if caps.MaxImageCount > 0 && desired > caps.MaxImageCount {
		return caps.MaxImageCount
	}
	return desired
}
