package tools

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// vulkanClip flips y and maps z from [-1,1] to [0,1].
var vulkanClip = mgl32.Mat4{
	1, 0, 0, 0,
	0, -1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// ModelViewProjectionClip is the fixed camera the samples draw their cube with.
func ModelViewProjectionClip(extent core1_0.Extent2D) mgl32.Mat4 {
	fov := mgl32.DegToRad(45)
	if extent.Width > extent.Height {
		fov *= float32(extent.Height) / float32(extent.Width)
	}

	model := mgl32.Ident4()
	view := mgl32.LookAt(-5, 3, -10, 0, 0, 0, 0, -1, 0)
	projection := mgl32.Perspective(fov, 1, 0.1, 100)

	return vulkanClip.Mul4(projection).Mul4(view).Mul4(model)
}
