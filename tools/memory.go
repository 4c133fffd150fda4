package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// FindMemoryType returns the lowest memory type allowed by typeBits whose
// property flags include all of required.
func FindMemoryType(memoryProperties *core1_0.PhysicalDeviceMemoryProperties, typeBits uint32, required core1_0.MemoryPropertyFlags) (int, error) {
	bits := typeBits
	for typeIndex, memoryType := range memoryProperties.MemoryTypes {
		if (bits&1) != 0 && (memoryType.PropertyFlags&required) == required {
			return typeIndex, nil
		}
		bits >>= 1
	}

	return -1, errors.Wrapf(ErrNoSuitableMemoryType, "type bits %#x, flags %s", typeBits, required)
}

// AllocateDeviceMemory allocates size bytes from the first memory type matching typeBits and required.
func AllocateDeviceMemory(deviceDriver core1_0.DeviceDriver, memoryProperties *core1_0.PhysicalDeviceMemoryProperties, size int, typeBits uint32, required core1_0.MemoryPropertyFlags) (core1_0.DeviceMemory, error) {
	typeIndex, err := FindMemoryType(memoryProperties, typeBits, required)
	if err != nil {
		return core1_0.DeviceMemory{}, err
	}

	memory, _, err := deviceDriver.AllocateMemory(nil, core1_0.MemoryAllocateInfo{
		AllocationSize:  size,
		MemoryTypeIndex: typeIndex,
	})
	if err != nil {
		return core1_0.DeviceMemory{}, errors.Wrapf(err, "allocate %d bytes from memory type %d", size, typeIndex)
	}
	return memory, nil
}
