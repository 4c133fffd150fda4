package tools

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/core/v3/loader"
	"github.com/vkngwrapper/core/v3/mocks"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// recordingDevice logs the command buffer calls SubmitOneTime makes.
type recordingDevice struct {
	core1_0.DeviceDriver

	buffer    core1_0.CommandBuffer
	calls     []string
	freed     []core1_0.CommandBuffer
	submitted []core1_0.SubmitInfo
}

func newRecordingDevice() *recordingDevice {
	device := mocks.NewDummyDevice(common.Vulkan1_0, nil)
	pool := mocks.NewDummyCommandPool(device)
	return &recordingDevice{buffer: mocks.NewDummyCommandBuffer(pool, device)}
}

func (d *recordingDevice) AllocateCommandBuffers(o core1_0.CommandBufferAllocateInfo) ([]core1_0.CommandBuffer, common.VkResult, error) {
	d.calls = append(d.calls, "allocate")
	return []core1_0.CommandBuffer{d.buffer}, core1_0.VKSuccess, nil
}

func (d *recordingDevice) BeginCommandBuffer(buffer core1_0.CommandBuffer, o core1_0.CommandBufferBeginInfo) (common.VkResult, error) {
	d.calls = append(d.calls, "begin")
	if o.Flags != core1_0.CommandBufferUsageOneTimeSubmit {
		return core1_0.VKErrorUnknown, errors.Newf("unexpected usage %s", o.Flags)
	}
	return core1_0.VKSuccess, nil
}

func (d *recordingDevice) EndCommandBuffer(core1_0.CommandBuffer) (common.VkResult, error) {
	d.calls = append(d.calls, "end")
	return core1_0.VKSuccess, nil
}

func (d *recordingDevice) QueueSubmit(queue core1_0.Queue, fence *core1_0.Fence, o ...core1_0.SubmitInfo) (common.VkResult, error) {
	d.calls = append(d.calls, "submit")
	d.submitted = append(d.submitted, o...)
	return core1_0.VKSuccess, nil
}

func (d *recordingDevice) QueueWaitIdle(core1_0.Queue) (common.VkResult, error) {
	d.calls = append(d.calls, "wait")
	return core1_0.VKSuccess, nil
}

func (d *recordingDevice) FreeCommandBuffers(buffers ...core1_0.CommandBuffer) {
	d.calls = append(d.calls, "free")
	d.freed = append(d.freed, buffers...)
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSubmitOneTime(t *testing.T) {
	driver := newRecordingDevice()
	queue := mocks.NewDummyQueue(mocks.NewDummyDevice(common.Vulkan1_0, nil))

	var recorded core1_0.CommandBuffer
	err := SubmitOneTime(driver, core1_0.CommandPool{}, queue, func(buffer core1_0.CommandBuffer) error {
		recorded = buffer
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recorded != driver.buffer {
		t.Error("record did not receive the allocated buffer")
	}
	if want := []string{"allocate", "begin", "end", "submit", "wait", "free"}; !equalStrings(driver.calls, want) {
		t.Errorf("expected calls %v, got %v", want, driver.calls)
	}
	if len(driver.submitted) != 1 || len(driver.submitted[0].CommandBuffers) != 1 || driver.submitted[0].CommandBuffers[0] != driver.buffer {
		t.Errorf("expected a single submit of the buffer, got %+v", driver.submitted)
	}
}

func TestSubmitOneTimeFreesBufferWhenRecordFails(t *testing.T) {
	driver := newRecordingDevice()
	boom := errors.New("record failed")

	err := SubmitOneTime(driver, core1_0.CommandPool{}, core1_0.Queue{}, func(core1_0.CommandBuffer) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the record error, got %v", err)
	}

	if want := []string{"allocate", "begin", "free"}; !equalStrings(driver.calls, want) {
		t.Errorf("expected calls %v, got %v", want, driver.calls)
	}
	if len(driver.freed) != 1 || driver.freed[0] != driver.buffer {
		t.Errorf("expected the allocated buffer freed once, got %v", driver.freed)
	}
	if len(driver.submitted) != 0 {
		t.Error("nothing may be submitted after a failed record")
	}
}

// recordingInstance captures the DeviceCreateInfo passed to CreateDevice.
type recordingInstance struct {
	core1_0.CoreInstanceDriver

	extensions map[string]*core1_0.ExtensionProperties
	created    *core1_0.DeviceCreateInfo
}

func (i *recordingInstance) EnumerateDeviceExtensionProperties(core1_0.PhysicalDevice) (map[string]*core1_0.ExtensionProperties, common.VkResult, error) {
	return i.extensions, core1_0.VKSuccess, nil
}

func (i *recordingInstance) CreateDevice(physicalDevice core1_0.PhysicalDevice, callbacks *loader.AllocationCallbacks, options core1_0.DeviceCreateInfo) (core1_0.CoreDeviceDriver, common.VkResult, error) {
	i.created = &options
	return nil, core1_0.VKSuccess, nil
}

func TestMakeDevice(t *testing.T) {
	instance := mocks.NewDummyInstance(common.Vulkan1_0, nil)
	physicalDevice := mocks.NewDummyPhysicalDevice(instance, common.Vulkan1_0)
	driver := &recordingInstance{extensions: map[string]*core1_0.ExtensionProperties{
		khr_swapchain.ExtensionName: {ExtensionName: khr_swapchain.ExtensionName},
	}}

	requested := DeviceExtensions()
	if _, err := MakeDevice(driver, physicalDevice, 2, requested, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := driver.created
	if info == nil {
		t.Fatal("CreateDevice was not called")
	}
	if len(info.QueueCreateInfos) != 1 {
		t.Fatalf("expected one queue create info, got %d", len(info.QueueCreateInfos))
	}
	queue := info.QueueCreateInfos[0]
	if queue.QueueFamilyIndex != 2 {
		t.Errorf("expected family 2, got %d", queue.QueueFamilyIndex)
	}
	if len(queue.QueuePriorities) != 1 || queue.QueuePriorities[0] != 0.0 {
		t.Errorf("expected a single 0.0 priority, got %v", queue.QueuePriorities)
	}
	if !equalStrings(info.EnabledExtensionNames, []string{khr_swapchain.ExtensionName}) {
		t.Errorf("unexpected extensions %v", info.EnabledExtensionNames)
	}
	if info.EnabledFeatures != nil {
		t.Errorf("expected no features, got %+v", info.EnabledFeatures)
	}
}

func TestMakeDeviceEnablesPortabilitySubset(t *testing.T) {
	instance := mocks.NewDummyInstance(common.Vulkan1_0, nil)
	physicalDevice := mocks.NewDummyPhysicalDevice(instance, common.Vulkan1_0)
	driver := &recordingInstance{extensions: map[string]*core1_0.ExtensionProperties{
		khr_swapchain.ExtensionName:          {ExtensionName: khr_swapchain.ExtensionName},
		khr_portability_subset.ExtensionName: {ExtensionName: khr_portability_subset.ExtensionName},
	}}

	requested := DeviceExtensions()
	if _, err := MakeDevice(driver, physicalDevice, 0, requested, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{khr_swapchain.ExtensionName, khr_portability_subset.ExtensionName}
	if !equalStrings(driver.created.EnabledExtensionNames, want) {
		t.Errorf("expected %v, got %v", want, driver.created.EnabledExtensionNames)
	}
	if !equalStrings(requested, DeviceExtensions()) {
		t.Errorf("the caller's slice was modified: %v", requested)
	}

	// Asking for it explicitly must not add it twice.
	if _, err := MakeDevice(driver, physicalDevice, 0, want, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStrings(driver.created.EnabledExtensionNames, want) {
		t.Errorf("expected %v, got %v", want, driver.created.EnabledExtensionNames)
	}
}
