package glim

import (
	"github.com/cockroachdb/errors"
	"github.com/glimgfx/glim/tools"
	"github.com/loov/hrtime"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

var ErrNoSuitableDevice = errors.New("failed to find a suitable GPU")

// CreateSurfaceFunc creates the presentation surface for the window the
// caller owns.
type CreateSurfaceFunc func(instance core1_0.Instance, surfaceDriver khr_surface.ExtensionDriver) (khr_surface.Surface, error)

type QueueFamilyIndices struct {
	Graphics *int
	Present  *int
}

// Complete reports whether both graphics and present families were found.
func (i QueueFamilyIndices) Complete() bool {
	return i.Graphics != nil && i.Present != nil
}

// Unique lists the graphics family, then the present family when it differs.
func (i QueueFamilyIndices) Unique() []int {
	families := []int{*i.Graphics}
	if *i.Present != *i.Graphics {
		families = append(families, *i.Present)
	}
	return families
}

// Context owns the instance, surface and device shared by everything glim creates.
type Context struct {
	GlobalDriver   core1_0.GlobalDriver
	InstanceDriver core1_0.CoreInstanceDriver
	PhysicalDevice core1_0.PhysicalDevice
	DeviceDriver   core1_0.CoreDeviceDriver
	GraphicsQueue  core1_0.Queue
	PresentQueue   core1_0.Queue

	SurfaceDriver khr_surface.ExtensionDriver
	Surface       khr_surface.Surface
	Swapchain     *Swapchain

	QueueFamilyIndices QueueFamilyIndices

	debugDriver    ext_debug_utils.ExtensionDriver
	debugMessenger ext_debug_utils.DebugUtilsMessenger
}

func newContext(driver core1_0.GlobalDriver, cfg Config, extensions []string, createSurface CreateSurfaceFunc) (*Context, error) {
	ctx := &Context{GlobalDriver: driver}

	steps := []struct {
		name string
		run  func() error
	}{
		{"instance", func() error { return ctx.createInstance(cfg, extensions) }},
		{"debug messenger", func() error { return ctx.setupDebugMessenger(cfg) }},
		{"surface", func() error { return ctx.createSurface(createSurface) }},
		{"physical device", ctx.pickPhysicalDevice},
		{"device", ctx.createDevice},
	}

	for _, step := range steps {
		start := hrtime.Now()
		if err := step.run(); err != nil {
			ctx.destroy()
			return nil, errors.Wrapf(err, "init %s", step.name)
		}
		log.Trace("%s ready in %s", step.name, hrtime.Since(start))
	}

	ctx.getQueues()
	return ctx, nil
}

func (c *Context) createInstance(cfg Config, extensions []string) error {
	var err error
	c.InstanceDriver, err = tools.MakeInstance(c.GlobalDriver, tools.InstanceOptions{
		AppName:    cfg.AppName,
		EngineName: cfg.EngineName,
		Extensions: extensions,
		APIVersion: cfg.APIVersion,
		Debug:      cfg.Validation,
		Log:        log,
	})
	return err
}

func (c *Context) setupDebugMessenger(cfg Config) error {
	if !cfg.Validation {
		return nil
	}

	c.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(c.InstanceDriver)
	if c.debugDriver == nil {
		log.Warn("%s is not available, validation messages will not be reported", ext_debug_utils.ExtensionName)
		return nil
	}

	var err error
	c.debugMessenger, _, err = c.debugDriver.CreateDebugUtilsMessenger(nil, tools.DebugMessengerCreateInfo(log))
	return err
}

func (c *Context) createSurface(createSurface CreateSurfaceFunc) error {
	c.SurfaceDriver = khr_surface.CreateExtensionDriverFromCoreDriver(c.InstanceDriver)
	if c.SurfaceDriver == nil {
		return errors.Newf("%s is not enabled", khr_surface.ExtensionName)
	}

	var err error
	c.Surface, err = createSurface(c.InstanceDriver.Instance(), c.SurfaceDriver)
	return err
}

type deviceCandidate struct {
	queueFamilies QueueFamilyIndices
	discrete      bool
	suitable      bool
}

// chooseDevice returns the first suitable discrete GPU, or failing that the
// first suitable device of any kind.
func chooseDevice(candidates []deviceCandidate) (int, error) {
	chosen := -1
	for i, candidate := range candidates {
		if !candidate.suitable {
			continue
		}
		if candidate.discrete {
			return i, nil
		}
		if chosen < 0 {
			chosen = i
		}
	}

	if chosen < 0 {
		return -1, ErrNoSuitableDevice
	}
	return chosen, nil
}

func (c *Context) pickPhysicalDevice() error {
	physicalDevices, _, err := c.InstanceDriver.EnumeratePhysicalDevices()
	if err != nil {
		return errors.Wrap(err, "enumerate physical devices")
	}

	candidates := make([]deviceCandidate, 0, len(physicalDevices))
	for _, device := range physicalDevices {
		candidate, err := c.inspectDevice(device)
		if err != nil {
			return err
		}
		candidates = append(candidates, candidate)
	}

	chosen, err := chooseDevice(candidates)
	if err != nil {
		return err
	}

	c.PhysicalDevice = physicalDevices[chosen]
	c.QueueFamilyIndices = candidates[chosen].queueFamilies

	props, err := c.InstanceDriver.GetPhysicalDeviceProperties(c.PhysicalDevice)
	if err == nil {
		log.Log("using %s", props.DriverName)
	}
	return nil
}

func (c *Context) inspectDevice(device core1_0.PhysicalDevice) (deviceCandidate, error) {
	var candidate deviceCandidate

	indices, err := queryQueueFamilyIndices(
		c.InstanceDriver.GetPhysicalDeviceQueueFamilyProperties(device),
		tools.SurfaceSupport(c.SurfaceDriver, c.Surface, device),
	)
	if err != nil {
		return candidate, err
	}
	candidate.queueFamilies = indices

	extensions, _, err := c.InstanceDriver.EnumerateDeviceExtensionProperties(device)
	if err != nil {
		return candidate, errors.Wrap(err, "enumerate device extensions")
	}
	hasExtensions := true
	for _, name := range tools.DeviceExtensions() {
		if _, ok := extensions[name]; !ok {
			hasExtensions = false
		}
	}

	props, err := c.InstanceDriver.GetPhysicalDeviceProperties(device)
	if err != nil {
		return candidate, errors.Wrap(err, "get physical device properties")
	}

	candidate.discrete = props.DriverType == core1_0.PhysicalDeviceTypeDiscreteGPU
	candidate.suitable = indices.Complete() && hasExtensions
	return candidate, nil
}

// queryQueueFamilyIndices walks the families until both a graphics and a
// present family have been seen.
func queryQueueFamilyIndices(families []*core1_0.QueueFamilyProperties, supportsPresent tools.PresentSupportFunc) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}

	for index, family := range families {
		if (family.QueueFlags & core1_0.QueueGraphics) != 0 {
			indices.Graphics = new(int)
			*indices.Graphics = index
		}

		supported, err := supportsPresent(index)
		if err != nil {
			return indices, err
		}
		if supported {
			indices.Present = new(int)
			*indices.Present = index
		}

		if indices.Complete() {
			break
		}
	}

	return indices, nil
}

func (c *Context) createDevice() error {
	var queueInfos []core1_0.DeviceQueueCreateInfo
	for _, family := range c.QueueFamilyIndices.Unique() {
		queueInfos = append(queueInfos, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{1.0},
		})
	}

	extensionNames := tools.DeviceExtensions()

	available, _, err := c.InstanceDriver.EnumerateDeviceExtensionProperties(c.PhysicalDevice)
	if err != nil {
		return errors.Wrap(err, "enumerate device extensions")
	}
	if _, ok := available[khr_portability_subset.ExtensionName]; ok {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	c.DeviceDriver, _, err = c.InstanceDriver.CreateDevice(c.PhysicalDevice, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueInfos,
		EnabledExtensionNames: extensionNames,
	})
	return err
}

func (c *Context) getQueues() {
	c.GraphicsQueue = c.DeviceDriver.GetQueue(*c.QueueFamilyIndices.Graphics, 0)
	c.PresentQueue = c.DeviceDriver.GetQueue(*c.QueueFamilyIndices.Present, 0)
}

// InitSwapchain replaces the current swapchain with one of the given size.
func (c *Context) InitSwapchain(w, h int) error {
	old := c.Swapchain
	swapchain, err := newSwapchain(c, w, h, old)
	if old != nil {
		old.Destroy()
	}
	c.Swapchain = swapchain
	return err
}

// DestroySwapchain releases the current swapchain, if any.
func (c *Context) DestroySwapchain() {
	if c.Swapchain != nil {
		c.Swapchain.Destroy()
		c.Swapchain = nil
	}
}

func (c *Context) destroy() {
	c.DestroySwapchain()

	if c.DeviceDriver != nil {
		c.DeviceDriver.DestroyDevice(nil)
		c.DeviceDriver = nil
	}

	if c.Surface.Initialized() {
		c.SurfaceDriver.DestroySurface(c.Surface, nil)
		c.Surface = khr_surface.Surface{}
	}

	if c.debugMessenger.Initialized() {
		c.debugDriver.DestroyDebugUtilsMessenger(c.debugMessenger, nil)
		c.debugMessenger = ext_debug_utils.DebugUtilsMessenger{}
	}

	if c.InstanceDriver != nil {
		c.InstanceDriver.DestroyInstance(nil)
		c.InstanceDriver = nil
	}
}
