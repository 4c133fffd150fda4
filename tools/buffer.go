package tools

import (
	"bytes"
	"encoding/binary"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// BufferData is a buffer bound to memory allocated just for it.
type BufferData struct {
	Size         int
	Usage        core1_0.BufferUsageFlags
	Properties   core1_0.MemoryPropertyFlags
	Buffer       core1_0.Buffer
	DeviceMemory core1_0.DeviceMemory

	deviceDriver core1_0.DeviceDriver
}

// NewBufferData creates a buffer of size bytes backed by memory with the given properties.
func NewBufferData(instanceDriver core1_0.CoreInstanceDriver, physicalDevice core1_0.PhysicalDevice, deviceDriver core1_0.DeviceDriver, size int, usage core1_0.BufferUsageFlags, properties core1_0.MemoryPropertyFlags) (*BufferData, error) {
	if size <= 0 {
		return nil, errors.Newf("invalid buffer size %d", size)
	}

	data := &BufferData{
		Size:         size,
		Usage:        usage,
		Properties:   properties,
		deviceDriver: deviceDriver,
	}

	var err error
	data.Buffer, _, err = deviceDriver.CreateBuffer(nil, core1_0.BufferCreateInfo{
		Size:        size,
		Usage:       usage,
		SharingMode: core1_0.SharingModeExclusive,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create buffer of %d bytes", size)
	}

	memReqs := deviceDriver.GetBufferMemoryRequirements(data.Buffer)
	memoryProperties := instanceDriver.GetPhysicalDeviceMemoryProperties(physicalDevice)
	data.DeviceMemory, err = AllocateDeviceMemory(deviceDriver, memoryProperties, memReqs.Size, memReqs.MemoryTypeBits, properties)
	if err != nil {
		data.Destroy()
		return nil, err
	}

	_, err = deviceDriver.BindBufferMemory(data.Buffer, data.DeviceMemory, 0)
	if err != nil {
		data.Destroy()
		return nil, errors.Wrap(err, "bind buffer memory")
	}

	return data, nil
}

// Upload encodes value with the binding's byte order and copies it to the
// start of the buffer. The memory must be host visible.
func (d *BufferData) Upload(value any) error {
	if (d.Properties & core1_0.MemoryPropertyHostVisible) == 0 {
		return errors.New("upload needs host visible memory")
	}

	encoded, err := EncodeData(value)
	if err != nil {
		return err
	}
	if len(encoded) > d.Size {
		return errors.Newf("%d bytes do not fit in a buffer of %d bytes", len(encoded), d.Size)
	}

	ptr, _, err := d.deviceDriver.MapMemory(d.DeviceMemory, 0, len(encoded), 0)
	if err != nil {
		return errors.Wrap(err, "map buffer memory")
	}
	defer d.deviceDriver.UnmapMemory(d.DeviceMemory)

	copy(unsafe.Slice((*byte)(ptr), len(encoded)), encoded)
	return nil
}

// EncodeData lays value out the way the device expects to read it.
func EncodeData(value any) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, common.ByteOrder, value); err != nil {
		return nil, errors.Wrap(err, "encode buffer data")
	}
	return buf.Bytes(), nil
}

func (d *BufferData) Destroy() {
	if d.Buffer.Initialized() {
		d.deviceDriver.DestroyBuffer(d.Buffer, nil)
		d.Buffer = core1_0.Buffer{}
	}

	if d.DeviceMemory.Initialized() {
		d.deviceDriver.FreeMemory(d.DeviceMemory, nil)
		d.DeviceMemory = core1_0.DeviceMemory{}
	}
}

// CopyBuffer copies size bytes between buffers with a one-time submit.
func CopyBuffer(deviceDriver core1_0.DeviceDriver, pool core1_0.CommandPool, queue core1_0.Queue, src, dst core1_0.Buffer, size int) error {
	return SubmitOneTime(deviceDriver, pool, queue, func(buffer core1_0.CommandBuffer) error {
		err := deviceDriver.CmdCopyBuffer(buffer, src, dst, core1_0.BufferCopy{
			SrcOffset: 0,
			DstOffset: 0,
			Size:      size,
		})
		return errors.Wrap(err, "record buffer copy")
	})
}
