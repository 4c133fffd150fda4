package tools

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	gu "github.com/docker/go-units"
	"github.com/google/uuid"
	"github.com/vkngwrapper/core/v3/core1_0"
)

type QueueFamilyReport struct {
	Index    int
	Count    int
	Graphics bool
	Compute  bool
	Transfer bool
}

type MemoryHeapReport struct {
	Index       int
	Size        int
	DeviceLocal bool
}

// DeviceReport is a printable summary of a physical device.
type DeviceReport struct {
	Name              string
	Type              string
	APIVersion        string
	DriverVersion     string
	VendorID          uint32
	DeviceID          uint32
	PipelineCacheUUID uuid.UUID
	QueueFamilies     []QueueFamilyReport
	MemoryHeaps       []MemoryHeapReport
}

// DescribePhysicalDevice queries everything NewDeviceReport needs from the driver.
func DescribePhysicalDevice(instanceDriver core1_0.CoreInstanceDriver, physicalDevice core1_0.PhysicalDevice) (DeviceReport, error) {
	props, err := instanceDriver.GetPhysicalDeviceProperties(physicalDevice)
	if err != nil {
		return DeviceReport{}, errors.Wrap(err, "get physical device properties")
	}

	return NewDeviceReport(props,
		instanceDriver.GetPhysicalDeviceQueueFamilyProperties(physicalDevice),
		instanceDriver.GetPhysicalDeviceMemoryProperties(physicalDevice)), nil
}

// NewDeviceReport summarizes a physical device from already queried properties.
func NewDeviceReport(props *core1_0.PhysicalDeviceProperties, queueFamilies []*core1_0.QueueFamilyProperties, memory *core1_0.PhysicalDeviceMemoryProperties) DeviceReport {
	report := DeviceReport{
		Name:              props.DriverName,
		Type:              fmt.Sprint(props.DriverType),
		APIVersion:        fmt.Sprint(props.APIVersion),
		DriverVersion:     fmt.Sprint(props.DriverVersion),
		VendorID:          props.VendorID,
		DeviceID:          props.DeviceID,
		PipelineCacheUUID: uuid.UUID(props.PipelineCacheUUID),
	}

	for index, family := range queueFamilies {
		report.QueueFamilies = append(report.QueueFamilies, QueueFamilyReport{
			Index:    index,
			Count:    family.QueueCount,
			Graphics: (family.QueueFlags & core1_0.QueueGraphics) != 0,
			Compute:  (family.QueueFlags & core1_0.QueueCompute) != 0,
			Transfer: (family.QueueFlags & core1_0.QueueTransfer) != 0,
		})
	}

	if memory != nil {
		for index, heap := range memory.MemoryHeaps {
			report.MemoryHeaps = append(report.MemoryHeaps, MemoryHeapReport{
				Index:       index,
				Size:        heap.Size,
				DeviceLocal: (heap.Flags & core1_0.MemoryHeapDeviceLocal) != 0,
			})
		}
	}

	return report
}

func (r DeviceReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", r.Name, r.Type)
	fmt.Fprintf(&sb, "\tapi %s, driver %s, vendor %#04x, device %#04x\n", r.APIVersion, r.DriverVersion, r.VendorID, r.DeviceID)
	fmt.Fprintf(&sb, "\tpipeline cache %s\n", r.PipelineCacheUUID)

	for _, family := range r.QueueFamilies {
		var caps []string
		if family.Graphics {
			caps = append(caps, "graphics")
		}
		if family.Compute {
			caps = append(caps, "compute")
		}
		if family.Transfer {
			caps = append(caps, "transfer")
		}
		fmt.Fprintf(&sb, "\tqueue family %d: %d queues [%s]\n", family.Index, family.Count, strings.Join(caps, " "))
	}

	for _, heap := range r.MemoryHeaps {
		local := ""
		if heap.DeviceLocal {
			local = " device local"
		}
		fmt.Fprintf(&sb, "\tmemory heap %d: %s%s\n", heap.Index, gu.BytesSize(float64(heap.Size)), local)
	}

	return sb.String()
}
