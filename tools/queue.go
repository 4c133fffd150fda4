package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

// PresentSupportFunc reports whether the queue family at index can present
// to the surface in question.
type PresentSupportFunc func(queueFamilyIndex int) (bool, error)

// SurfaceSupport adapts the surface extension into a PresentSupportFunc.
func SurfaceSupport(surfaceDriver khr_surface.ExtensionDriver, surface khr_surface.Surface, physicalDevice core1_0.PhysicalDevice) PresentSupportFunc {
	return func(queueFamilyIndex int) (bool, error) {
		supported, _, err := surfaceDriver.GetPhysicalDeviceSurfaceSupport(surface, physicalDevice, queueFamilyIndex)
		if err != nil {
			return false, errors.Wrapf(err, "query present support for queue family %d", queueFamilyIndex)
		}
		return supported, nil
	}
}

// FindGraphicsQueueFamilyIndex returns the first queue family that supports graphics.
func FindGraphicsQueueFamilyIndex(queueFamilies []*core1_0.QueueFamilyProperties) (int, error) {
	for index, family := range queueFamilies {
		if (family.QueueFlags & core1_0.QueueGraphics) != 0 {
			return index, nil
		}
	}

	return -1, errors.Wrap(ErrNoSuitableQueueFamily, "no graphics queue family")
}

// FindGraphicsAndPresentQueueFamilyIndex prefers one family serving both
// graphics and present. Failing that it pairs the first graphics family with
// the first family able to present.
func FindGraphicsAndPresentQueueFamilyIndex(queueFamilies []*core1_0.QueueFamilyProperties, supportsPresent PresentSupportFunc) (graphics int, present int, err error) {
	graphics, err = FindGraphicsQueueFamilyIndex(queueFamilies)
	if err != nil {
		return -1, -1, err
	}

	supported, err := supportsPresent(graphics)
	if err != nil {
		return -1, -1, err
	}
	if supported {
		return graphics, graphics, nil
	}

	for index, family := range queueFamilies {
		if (family.QueueFlags & core1_0.QueueGraphics) == 0 {
			continue
		}
		supported, err = supportsPresent(index)
		if err != nil {
			return -1, -1, err
		}
		if supported {
			return index, index, nil
		}
	}

	for index := range queueFamilies {
		supported, err = supportsPresent(index)
		if err != nil {
			return -1, -1, err
		}
		if supported {
			return graphics, index, nil
		}
	}

	return -1, -1, ErrNoSuitableQueueFamily
}
