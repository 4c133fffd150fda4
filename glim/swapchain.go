package glim

import (
	"github.com/glimgfx/glim/tools"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// Swapchain is the context's color swapchain.
type Swapchain struct {
	*tools.SwapchainData
}

func newSwapchain(ctx *Context, w, h int, old *Swapchain) (*Swapchain, error) {
	var oldSwapchain khr_swapchain.Swapchain
	if old != nil {
		oldSwapchain = old.Swapchain
	}

	data, err := tools.NewSwapchainData(ctx.SurfaceDriver, ctx.PhysicalDevice, ctx.DeviceDriver, tools.SwapchainOptions{
		Surface:             ctx.Surface,
		Extent:              core1_0.Extent2D{Width: w, Height: h},
		Usage:               core1_0.ImageUsageColorAttachment,
		OldSwapchain:        oldSwapchain,
		GraphicsQueueFamily: *ctx.QueueFamilyIndices.Graphics,
		PresentQueueFamily:  *ctx.QueueFamilyIndices.Present,
		DesiredImageCount:   tools.DesiredImageCount,
	})
	if err != nil {
		return nil, err
	}

	log.Log("swapchain %dx%d, %d images, format %s", data.Extent.Width, data.Extent.Height, len(data.Images), data.ColorFormat)
	return &Swapchain{SwapchainData: data}, nil
}

func (s *Swapchain) Destroy() {
	if s.SwapchainData != nil {
		s.SwapchainData.Destroy()
	}
}
