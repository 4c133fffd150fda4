package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/glimgfx/glim/internal/logger"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

// InstanceOptions describes the instance MakeInstance creates.
type InstanceOptions struct {
	AppName    string
	EngineName string
	Layers     []string
	Extensions []string
	APIVersion common.APIVersion

	// Debug enables the validation layer, the debug utils extension and a
	// debug messenger chained into instance creation.
	Debug bool
	// Log receives validation messages. An unset Log writes with a
	// "vulkan" prefix.
	Log logger.Logger
}

// MakeInstanceCreateInfo fills an InstanceCreateInfo from already gathered
// layers and extensions. In debug mode the messenger create info rides on
// Next so instance creation and destruction get reported too.
func MakeInstanceCreateInfo(options InstanceOptions, layers, extensions []string) core1_0.InstanceCreateInfo {
	apiVersion := options.APIVersion
	if apiVersion == 0 {
		apiVersion = DefaultAPIVersion
	}

	info := core1_0.InstanceCreateInfo{
		ApplicationName:       options.AppName,
		ApplicationVersion:    common.CreateVersion(0, 0, 1),
		EngineName:            options.EngineName,
		EngineVersion:         common.CreateVersion(0, 0, 1),
		APIVersion:            apiVersion,
		EnabledLayerNames:     layers,
		EnabledExtensionNames: extensions,
	}

	if options.Debug {
		info.Next = DebugMessengerCreateInfo(debugLogger(options.Log))
	}

	return info
}

// MakeInstance creates an instance with the requested layers and extensions,
// adding portability enumeration whenever the loader offers it.
func MakeInstance(driver core1_0.GlobalDriver, options InstanceOptions) (core1_0.CoreInstanceDriver, error) {
	availableLayers, _, err := driver.AvailableLayers()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance layers")
	}

	availableExtensions, _, err := driver.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance extensions")
	}

	layers, err := GatherLayers(options.Layers, availableLayers, options.Debug)
	if err != nil {
		return nil, err
	}

	extensions, err := GatherExtensions(options.Extensions, availableExtensions, options.Debug)
	if err != nil {
		return nil, err
	}

	info := MakeInstanceCreateInfo(options, layers, extensions)

	// Needed to enumerate portability drivers such as MoltenVK.
	if _, ok := availableExtensions[khr_portability_enumeration.ExtensionName]; ok {
		if !contains(extensions, khr_portability_enumeration.ExtensionName) {
			info.EnabledExtensionNames = append(info.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		}
		info.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	instanceDriver, _, err := driver.CreateInstance(nil, info)
	if err != nil {
		return nil, errors.Wrapf(err, "create instance %q", options.AppName)
	}

	return instanceDriver, nil
}
