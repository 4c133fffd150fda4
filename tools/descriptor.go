package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

type DescriptorBinding struct {
	Type   core1_0.DescriptorType
	Count  int
	Stages core1_0.ShaderStageFlags
}

// DescriptorSetLayoutBindings numbers bindings by their position.
func DescriptorSetLayoutBindings(bindings []DescriptorBinding) []core1_0.DescriptorSetLayoutBinding {
	layoutBindings := make([]core1_0.DescriptorSetLayoutBinding, 0, len(bindings))
	for i, binding := range bindings {
		layoutBindings = append(layoutBindings, core1_0.DescriptorSetLayoutBinding{
			Binding:         i,
			DescriptorType:  binding.Type,
			DescriptorCount: binding.Count,
			StageFlags:      binding.Stages,
		})
	}
	return layoutBindings
}

// MakeDescriptorSetLayout creates a layout from bindings numbered by position.
func MakeDescriptorSetLayout(deviceDriver core1_0.DeviceDriver, bindings []DescriptorBinding, flags core1_0.DescriptorSetLayoutCreateFlags) (core1_0.DescriptorSetLayout, error) {
	layout, _, err := deviceDriver.CreateDescriptorSetLayout(nil, core1_0.DescriptorSetLayoutCreateInfo{
		Flags:    flags,
		Bindings: DescriptorSetLayoutBindings(bindings),
	})
	if err != nil {
		return core1_0.DescriptorSetLayout{}, errors.Wrap(err, "create descriptor set layout")
	}
	return layout, nil
}
