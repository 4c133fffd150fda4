package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
)

// MakeDevice creates a logical device with a single queue from one family.
// features and next may be nil.
func MakeDevice(instanceDriver core1_0.CoreInstanceDriver, physicalDevice core1_0.PhysicalDevice, queueFamilyIndex int, extensions []string, features *core1_0.PhysicalDeviceFeatures, next common.Options) (core1_0.CoreDeviceDriver, error) {
	enabled := append([]string(nil), extensions...)

	available, _, err := instanceDriver.EnumerateDeviceExtensionProperties(physicalDevice)
	if err != nil {
		return nil, errors.Wrap(err, "enumerate device extensions")
	}
	// Portability implementations refuse device creation without it.
	if _, ok := available[khr_portability_subset.ExtensionName]; ok && !contains(enabled, khr_portability_subset.ExtensionName) {
		enabled = append(enabled, khr_portability_subset.ExtensionName)
	}

	info := core1_0.DeviceCreateInfo{
		QueueCreateInfos: []core1_0.DeviceQueueCreateInfo{
			{
				QueueFamilyIndex: queueFamilyIndex,
				QueuePriorities:  []float32{0.0},
			},
		},
		EnabledFeatures:       features,
		EnabledExtensionNames: enabled,
	}
	info.Next = next

	deviceDriver, _, err := instanceDriver.CreateDevice(physicalDevice, nil, info)
	if err != nil {
		return nil, errors.Wrapf(err, "create device on queue family %d", queueFamilyIndex)
	}
	return deviceDriver, nil
}

// MakeCommandPool creates a command pool for queueFamilyIndex.
func MakeCommandPool(deviceDriver core1_0.DeviceDriver, queueFamilyIndex int, flags core1_0.CommandPoolCreateFlags) (core1_0.CommandPool, error) {
	pool, _, err := deviceDriver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		Flags:            flags,
		QueueFamilyIndex: queueFamilyIndex,
	})
	if err != nil {
		return core1_0.CommandPool{}, errors.Wrap(err, "create command pool")
	}
	return pool, nil
}

// MakeCommandBuffer allocates a single primary command buffer from pool.
func MakeCommandBuffer(deviceDriver core1_0.DeviceDriver, pool core1_0.CommandPool) (core1_0.CommandBuffer, error) {
	buffers, _, err := deviceDriver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        pool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		return core1_0.CommandBuffer{}, errors.Wrap(err, "allocate command buffer")
	}
	return buffers[0], nil
}

// SubmitOneTime records a throwaway command buffer with record, submits it to
// queue and blocks until the queue is idle. The buffer is freed either way.
func SubmitOneTime(deviceDriver core1_0.DeviceDriver, pool core1_0.CommandPool, queue core1_0.Queue, record func(core1_0.CommandBuffer) error) error {
	buffer, err := MakeCommandBuffer(deviceDriver, pool)
	if err != nil {
		return err
	}
	defer deviceDriver.FreeCommandBuffers(buffer)

	_, err = deviceDriver.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{
		Flags: core1_0.CommandBufferUsageOneTimeSubmit,
	})
	if err != nil {
		return errors.Wrap(err, "begin one-time command buffer")
	}

	if err = record(buffer); err != nil {
		return err
	}

	_, err = deviceDriver.EndCommandBuffer(buffer)
	if err != nil {
		return errors.Wrap(err, "end one-time command buffer")
	}

	_, err = deviceDriver.QueueSubmit(queue, nil, core1_0.SubmitInfo{
		CommandBuffers: []core1_0.CommandBuffer{buffer},
	})
	if err != nil {
		return errors.Wrap(err, "submit one-time command buffer")
	}

	_, err = deviceDriver.QueueWaitIdle(queue)
	return errors.Wrap(err, "wait for queue idle")
}
