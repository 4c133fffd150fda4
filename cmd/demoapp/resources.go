package main

import (
	"github.com/cockroachdb/errors"
	"github.com/glimgfx/glim/glim"
	"github.com/glimgfx/glim/tools"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// sceneResources is what a cube sample needs next to the swapchain: a depth
// buffer, a device local uniform buffer holding the MVP matrix and the
// descriptor set layout that exposes it to the vertex stage.
type sceneResources struct {
	deviceDriver core1_0.DeviceDriver

	commandPool core1_0.CommandPool
	depth       *tools.ImageData
	uniform     *tools.BufferData
	layout      core1_0.DescriptorSetLayout
}

func newSceneResources(ctx *glim.Context) (*sceneResources, error) {
	res := &sceneResources{deviceDriver: ctx.DeviceDriver}

	var err error
	res.commandPool, err = tools.MakeCommandPool(ctx.DeviceDriver, *ctx.QueueFamilyIndices.Graphics, core1_0.CommandPoolCreateResetBuffer)
	if err != nil {
		return nil, err
	}

	extent := ctx.Swapchain.Extent
	res.depth, err = tools.NewImageData(ctx.InstanceDriver, ctx.PhysicalDevice, ctx.DeviceDriver, tools.ImageOptions{
		Format:           core1_0.FormatD16UnsignedNormalized,
		Extent:           extent,
		Tiling:           core1_0.ImageTilingOptimal,
		Usage:            core1_0.ImageUsageDepthStencilAttachment,
		InitialLayout:    core1_0.ImageLayoutUndefined,
		MemoryProperties: core1_0.MemoryPropertyDeviceLocal,
		AspectMask:       core1_0.ImageAspectDepth,
	})
	if err != nil {
		res.Destroy()
		return nil, errors.Wrap(err, "create depth buffer")
	}

	if err = res.uploadMatrix(ctx, extent); err != nil {
		res.Destroy()
		return nil, err
	}

	res.layout, err = tools.MakeDescriptorSetLayout(ctx.DeviceDriver, []tools.DescriptorBinding{
		{Type: core1_0.DescriptorTypeUniformBuffer, Count: 1, Stages: core1_0.StageVertex},
	}, 0)
	if err != nil {
		res.Destroy()
		return nil, err
	}

	return res, nil
}

func (r *sceneResources) uploadMatrix(ctx *glim.Context, extent core1_0.Extent2D) error {
	matrix := tools.ModelViewProjectionClip(extent)
	mvpc, err := tools.EncodeData(matrix)
	if err != nil {
		return err
	}

	staging, err := tools.NewBufferData(ctx.InstanceDriver, ctx.PhysicalDevice, ctx.DeviceDriver, len(mvpc),
		core1_0.BufferUsageTransferSrc,
		core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent)
	if err != nil {
		return errors.Wrap(err, "create staging buffer")
	}
	defer staging.Destroy()

	if err = staging.Upload(matrix); err != nil {
		return err
	}

	r.uniform, err = tools.NewBufferData(ctx.InstanceDriver, ctx.PhysicalDevice, ctx.DeviceDriver, len(mvpc),
		core1_0.BufferUsageUniformBuffer|core1_0.BufferUsageTransferDst,
		core1_0.MemoryPropertyDeviceLocal)
	if err != nil {
		return errors.Wrap(err, "create uniform buffer")
	}

	return tools.CopyBuffer(ctx.DeviceDriver, r.commandPool, ctx.GraphicsQueue, staging.Buffer, r.uniform.Buffer, len(mvpc))
}

func (r *sceneResources) Destroy() {
	if r.layout.Initialized() {
		r.deviceDriver.DestroyDescriptorSetLayout(r.layout, nil)
		r.layout = core1_0.DescriptorSetLayout{}
	}
	if r.uniform != nil {
		r.uniform.Destroy()
		r.uniform = nil
	}
	if r.depth != nil {
		r.depth.Destroy()
		r.depth = nil
	}
	if r.commandPool.Initialized() {
		r.deviceDriver.DestroyCommandPool(r.commandPool, nil)
		r.commandPool = core1_0.CommandPool{}
	}
}
