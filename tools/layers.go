package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// GatherLayers checks every requested layer against the layers the loader
// reports. In debug mode the Khronos validation layer is added when it is
// available and was not asked for already.
func GatherLayers[T any](requested []string, available map[string]T, debug bool) ([]string, error) {
	return gather("layer", requested, available, debug, ValidationLayerName)
}

// GatherExtensions is GatherLayers for instance extensions; debug mode adds
// VK_EXT_debug_utils.
func GatherExtensions[T any](requested []string, available map[string]T, debug bool) ([]string, error) {
	return gather("extension", requested, available, debug, ext_debug_utils.ExtensionName)
}

func gather[T any](kind string, requested []string, available map[string]T, debug bool, debugName string) ([]string, error) {
	enabled := make([]string, 0, len(requested)+1)
	for _, name := range requested {
		if _, ok := available[name]; !ok {
			return nil, errors.Newf("%s %s is not available", kind, name)
		}
		enabled = append(enabled, name)
	}

	if debug && !contains(requested, debugName) {
		if _, ok := available[debugName]; ok {
			enabled = append(enabled, debugName)
		}
	}

	return enabled, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// DeviceExtensions lists the device extensions every swapchain user needs.
func DeviceExtensions() []string {
	return []string{khr_swapchain.ExtensionName}
}
