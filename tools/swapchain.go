package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// SwapchainData is a swapchain plus a color view for each of its images.
type SwapchainData struct {
	ColorFormat core1_0.Format
	ColorSpace  khr_surface.ColorSpace
	PresentMode khr_surface.PresentMode
	Extent      core1_0.Extent2D
	Swapchain   khr_swapchain.Swapchain
	Images      []core1_0.Image
	ImageViews  []core1_0.ImageView

	deviceDriver    core1_0.DeviceDriver
	swapchainDriver khr_swapchain.ExtensionDriver
}

type SwapchainOptions struct {
	Surface khr_surface.Surface
	// Extent is only used when the surface leaves the size to the swapchain.
	Extent core1_0.Extent2D
	Usage  core1_0.ImageUsageFlags
	// OldSwapchain is the swapchain being replaced, or the zero value.
	OldSwapchain        khr_swapchain.Swapchain
	GraphicsQueueFamily int
	PresentQueueFamily  int
	DesiredImageCount   int
}

// SurfaceQuery is the subset of the surface extension swapchain negotiation reads.
type SurfaceQuery interface {
	GetPhysicalDeviceSurfaceCapabilities(surface khr_surface.Surface, physicalDevice core1_0.PhysicalDevice) (*khr_surface.SurfaceCapabilities, common.VkResult, error)
	GetPhysicalDeviceSurfaceFormats(surface khr_surface.Surface, physicalDevice core1_0.PhysicalDevice) ([]khr_surface.SurfaceFormat, common.VkResult, error)
	GetPhysicalDeviceSurfacePresentModes(surface khr_surface.Surface, physicalDevice core1_0.PhysicalDevice) ([]khr_surface.PresentMode, common.VkResult, error)
}

// MakeSwapchainCreateInfo negotiates format, extent, transform, alpha, present
// mode and image count against what the surface reports.
func MakeSwapchainCreateInfo(surfaceQuery SurfaceQuery, physicalDevice core1_0.PhysicalDevice, options SwapchainOptions) (khr_swapchain.SwapchainCreateInfo, error) {
	formats, _, err := surfaceQuery.GetPhysicalDeviceSurfaceFormats(options.Surface, physicalDevice)
	if err != nil {
		return khr_swapchain.SwapchainCreateInfo{}, errors.Wrap(err, "query surface formats")
	}
	surfaceFormat, err := PickSurfaceFormat(formats)
	if err != nil {
		return khr_swapchain.SwapchainCreateInfo{}, err
	}

	caps, _, err := surfaceQuery.GetPhysicalDeviceSurfaceCapabilities(options.Surface, physicalDevice)
	if err != nil {
		return khr_swapchain.SwapchainCreateInfo{}, errors.Wrap(err, "query surface capabilities")
	}

	presentModes, _, err := surfaceQuery.GetPhysicalDeviceSurfacePresentModes(options.Surface, physicalDevice)
	if err != nil {
		return khr_swapchain.SwapchainCreateInfo{}, errors.Wrap(err, "query surface present modes")
	}

	desired := options.DesiredImageCount
	if desired <= 0 {
		desired = DesiredImageCount
	}

	info := khr_swapchain.SwapchainCreateInfo{
		Surface:          options.Surface,
		MinImageCount:    ChooseImageCount(caps, desired),
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      ChooseSwapchainExtent(caps, options.Extent),
		ImageArrayLayers: 1,
		ImageUsage:       options.Usage,
		ImageSharingMode: core1_0.SharingModeExclusive,
		PreTransform:     ChoosePreTransform(caps),
		CompositeAlpha:   ChooseCompositeAlpha(caps),
		PresentMode:      PickPresentMode(presentModes),
		Clipped:          true,
		OldSwapchain:     options.OldSwapchain,
	}

	// Images shared by two families either need ownership transfers or
	// concurrent sharing; concurrent is simpler.
	if options.GraphicsQueueFamily != options.PresentQueueFamily {
		info.ImageSharingMode = core1_0.SharingModeConcurrent
		info.QueueFamilyIndices = []int{options.GraphicsQueueFamily, options.PresentQueueFamily}
	}

	return info, nil
}

// NewSwapchainData creates a swapchain and a color view for each of its images.
func NewSwapchainData(surfaceQuery SurfaceQuery, physicalDevice core1_0.PhysicalDevice, deviceDriver core1_0.CoreDeviceDriver, options SwapchainOptions) (*SwapchainData, error) {
	info, err := MakeSwapchainCreateInfo(surfaceQuery, physicalDevice, options)
	if err != nil {
		return nil, err
	}

	data := &SwapchainData{
		ColorFormat:     info.ImageFormat,
		ColorSpace:      info.ImageColorSpace,
		PresentMode:     info.PresentMode,
		Extent:          info.ImageExtent,
		deviceDriver:    deviceDriver,
		swapchainDriver: khr_swapchain.CreateExtensionDriverFromCoreDriver(deviceDriver),
	}

	data.Swapchain, _, err = data.swapchainDriver.CreateSwapchain(nil, info)
	if err != nil {
		return nil, errors.Wrap(err, "create swapchain")
	}

	data.Images, _, err = data.swapchainDriver.GetSwapchainImages(data.Swapchain)
	if err != nil {
		data.Destroy()
		return nil, errors.Wrap(err, "get swapchain images")
	}

	for _, image := range data.Images {
		view, err := MakeImageView(deviceDriver, image, data.ColorFormat, core1_0.ImageAspectColor)
		if err != nil {
			data.Destroy()
			return nil, err
		}
		data.ImageViews = append(data.ImageViews, view)
	}

	return data, nil
}

func (d *SwapchainData) Destroy() {
	for _, view := range d.ImageViews {
		d.deviceDriver.DestroyImageView(view, nil)
	}
	d.ImageViews = nil
	d.Images = nil

	if d.Swapchain.Initialized() {
		d.swapchainDriver.DestroySwapchain(d.Swapchain, nil)
		d.Swapchain = khr_swapchain.Swapchain{}
	}
}
