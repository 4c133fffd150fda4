// Package tools holds the Vulkan setup helpers: instance and device creation,
// queue family discovery, swapchain negotiation, memory allocation and
// one-shot command submission.
package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

const (
	ValidationLayerName = "VK_LAYER_KHRONOS_validation"

	// DesiredImageCount is the swapchain image count requested before
	// clamping to the surface limits.
	DesiredImageCount = 3

	DefaultAPIVersion = common.Vulkan1_0
)

const (
	// vkCreateInstance warns whenever VK_EXT_debug_utils is enabled.
	messageIDDebugUtilsEnabled uint32 = 0x822806fa
	// Debug builds of the validation layers report themselves as slow.
	messageIDDebugLayersSlow uint32 = 0xe8d1a9fe
)

var (
	ErrNoSuitableQueueFamily = errors.New("could not find queues for both graphics and present")
	ErrNoSuitableMemoryType  = errors.New("could not find a suitable memory type")
)

// requestedFormats is tried in order when the surface offers more than one format.
var requestedFormats = []core1_0.Format{
	core1_0.FormatB8G8R8A8UnsignedNormalized,
	core1_0.FormatR8G8B8A8UnsignedNormalized,
	core1_0.FormatB8G8R8UnsignedNormalized,
	core1_0.FormatR8G8B8UnsignedNormalized,
}

const requestedColorSpace = khr_surface.ColorSpaceSRGBNonlinear
