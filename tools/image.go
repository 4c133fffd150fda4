package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// ImageData is a single-sample 2D image with its own memory and a view over
// the whole image. The image is always created sampleable.
type ImageData struct {
	Format       core1_0.Format
	Extent       core1_0.Extent2D
	Image        core1_0.Image
	DeviceMemory core1_0.DeviceMemory
	ImageView    core1_0.ImageView

	deviceDriver core1_0.DeviceDriver
}

type ImageOptions struct {
	Format           core1_0.Format
	Extent           core1_0.Extent2D
	Tiling           core1_0.ImageTiling
	Usage            core1_0.ImageUsageFlags
	InitialLayout    core1_0.ImageLayout
	MemoryProperties core1_0.MemoryPropertyFlags
	AspectMask       core1_0.ImageAspectFlags
}

// NewImageData creates a 2D image, binds memory to it and adds a view.
func NewImageData(instanceDriver core1_0.CoreInstanceDriver, physicalDevice core1_0.PhysicalDevice, deviceDriver core1_0.DeviceDriver, options ImageOptions) (*ImageData, error) {
	data := &ImageData{
		Format:       options.Format,
		Extent:       options.Extent,
		deviceDriver: deviceDriver,
	}

	var err error
	data.Image, _, err = deviceDriver.CreateImage(nil, core1_0.ImageCreateInfo{
		ImageType: core1_0.ImageType2D,
		Format:    options.Format,
		Extent: core1_0.Extent3D{
			Width:  options.Extent.Width,
			Height: options.Extent.Height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       core1_0.Samples1,
		Tiling:        options.Tiling,
		Usage:         options.Usage | core1_0.ImageUsageSampled,
		SharingMode:   core1_0.SharingModeExclusive,
		InitialLayout: options.InitialLayout,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create %s image", options.Format)
	}

	memReqs := deviceDriver.GetImageMemoryRequirements(data.Image)
	memoryProperties := instanceDriver.GetPhysicalDeviceMemoryProperties(physicalDevice)
	data.DeviceMemory, err = AllocateDeviceMemory(deviceDriver, memoryProperties, memReqs.Size, memReqs.MemoryTypeBits, options.MemoryProperties)
	if err != nil {
		data.Destroy()
		return nil, err
	}

	_, err = deviceDriver.BindImageMemory(data.Image, data.DeviceMemory, 0)
	if err != nil {
		data.Destroy()
		return nil, errors.Wrap(err, "bind image memory")
	}

	data.ImageView, err = MakeImageView(deviceDriver, data.Image, options.Format, options.AspectMask)
	if err != nil {
		data.Destroy()
		return nil, err
	}

	return data, nil
}

func (d *ImageData) Destroy() {
	if d.ImageView.Initialized() {
		d.deviceDriver.DestroyImageView(d.ImageView, nil)
		d.ImageView = core1_0.ImageView{}
	}

	if d.Image.Initialized() {
		d.deviceDriver.DestroyImage(d.Image, nil)
		d.Image = core1_0.Image{}
	}

	if d.DeviceMemory.Initialized() {
		d.deviceDriver.FreeMemory(d.DeviceMemory, nil)
		d.DeviceMemory = core1_0.DeviceMemory{}
	}
}

// MakeImageView creates a 2D view over a single mip level and layer of image.
func MakeImageView(deviceDriver core1_0.DeviceDriver, image core1_0.Image, format core1_0.Format, aspect core1_0.ImageAspectFlags) (core1_0.ImageView, error) {
	view, _, err := deviceDriver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    image,
		ViewType: core1_0.ImageViewType2D,
		Format:   format,
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     aspect,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
	if err != nil {
		return core1_0.ImageView{}, errors.Wrapf(err, "create %s image view", format)
	}
	return view, nil
}
