package tools

import (
	"testing"

	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

func TestClamp(t *testing.T) {
	if got := Clamp(3, 1, 2); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := Clamp(0, 1, 2); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := Clamp(1.5, 1.0, 2.0); got != 1.5 {
		t.Errorf("expected 1.5, got %f", got)
	}
}

func srgb(format core1_0.Format) khr_surface.SurfaceFormat {
	return khr_surface.SurfaceFormat{Format: format, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}
}

func TestPickSurfaceFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []khr_surface.SurfaceFormat
		want    core1_0.Format
	}{
		{
			name:    "undefined means anything goes",
			formats: []khr_surface.SurfaceFormat{{Format: core1_0.FormatUndefined}},
			want:    core1_0.FormatB8G8R8A8UnsignedNormalized,
		},
		{
			name:    "single format is taken",
			formats: []khr_surface.SurfaceFormat{srgb(core1_0.FormatB8G8R8A8SRGB)},
			want:    core1_0.FormatB8G8R8A8SRGB,
		},
		{
			name: "preference order beats list order",
			formats: []khr_surface.SurfaceFormat{
				srgb(core1_0.FormatB8G8R8A8SRGB),
				srgb(core1_0.FormatR8G8B8A8UnsignedNormalized),
				srgb(core1_0.FormatB8G8R8A8UnsignedNormalized),
			},
			want: core1_0.FormatB8G8R8A8UnsignedNormalized,
		},
		{
			name: "falls back to first format",
			formats: []khr_surface.SurfaceFormat{
				srgb(core1_0.FormatR8G8B8A8SRGB),
				srgb(core1_0.FormatB8G8R8A8SRGB),
			},
			want: core1_0.FormatR8G8B8A8SRGB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PickSurfaceFormat(tt.formats)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Format)
			}
			if got.ColorSpace != khr_surface.ColorSpaceSRGBNonlinear {
				t.Errorf("expected sRGB nonlinear color space, got %d", got.ColorSpace)
			}
		})
	}
}

func TestPickSurfaceFormatErrors(t *testing.T) {
	if _, err := PickSurfaceFormat(nil); err == nil {
		t.Error("expected an error for no formats")
	}

	extended := khr_surface.SurfaceFormat{
		Format:     core1_0.FormatR8G8B8A8UnsignedNormalized,
		ColorSpace: khr_surface.ColorSpace(1000104002),
	}
	if _, err := PickSurfaceFormat([]khr_surface.SurfaceFormat{extended}); err == nil {
		t.Error("expected an error for a non-sRGB color space")
	}
}

func TestPickPresentMode(t *testing.T) {
	tests := []struct {
		name  string
		modes []khr_surface.PresentMode
		want  khr_surface.PresentMode
	}{
		{name: "mailbox wins", modes: []khr_surface.PresentMode{khr_surface.PresentModeImmediate, khr_surface.PresentModeMailbox, khr_surface.PresentModeFIFO}, want: khr_surface.PresentModeMailbox},
		{name: "immediate over fifo", modes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO, khr_surface.PresentModeImmediate}, want: khr_surface.PresentModeImmediate},
		{name: "fifo only", modes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO}, want: khr_surface.PresentModeFIFO},
		{name: "nothing reported", modes: nil, want: khr_surface.PresentModeFIFO},
	}

	for _, tt := range tests {
		if got := PickPresentMode(tt.modes); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestChooseSwapchainExtent(t *testing.T) {
	caps := &khr_surface.SurfaceCapabilities{
		CurrentExtent:  core1_0.Extent2D{Width: 4294967295, Height: 4294967295},
		MinImageExtent: core1_0.Extent2D{Width: 100, Height: 100},
		MaxImageExtent: core1_0.Extent2D{Width: 1000, Height: 500},
	}

	got := ChooseSwapchainExtent(caps, core1_0.Extent2D{Width: 1024, Height: 720})
	if got != (core1_0.Extent2D{Width: 1000, Height: 500}) {
		t.Errorf("expected clamp to max, got %+v", got)
	}

	got = ChooseSwapchainExtent(caps, core1_0.Extent2D{Width: 50, Height: 300})
	if got != (core1_0.Extent2D{Width: 100, Height: 300}) {
		t.Errorf("expected clamp to min width, got %+v", got)
	}

	caps.CurrentExtent = core1_0.Extent2D{Width: -1, Height: -1}
	got = ChooseSwapchainExtent(caps, core1_0.Extent2D{Width: 1024, Height: 720})
	if got != (core1_0.Extent2D{Width: 1000, Height: 500}) {
		t.Errorf("expected a negative width to clamp as well, got %+v", got)
	}

	caps.CurrentExtent = core1_0.Extent2D{Width: 640, Height: 480}
	got = ChooseSwapchainExtent(caps, core1_0.Extent2D{Width: 1024, Height: 720})
	if got != caps.CurrentExtent {
		t.Errorf("expected the current extent, got %+v", got)
	}
}

func TestChoosePreTransform(t *testing.T) {
	caps := &khr_surface.SurfaceCapabilities{
		SupportedTransforms: khr_surface.TransformIdentity,
		CurrentTransform:    khr_surface.SurfaceTransformFlags(2),
	}
	if got := ChoosePreTransform(caps); got != khr_surface.TransformIdentity {
		t.Errorf("expected identity, got %d", got)
	}

	caps.SupportedTransforms = khr_surface.SurfaceTransformFlags(2)
	if got := ChoosePreTransform(caps); got != khr_surface.SurfaceTransformFlags(2) {
		t.Errorf("expected the current transform, got %d", got)
	}
}

func TestChooseCompositeAlpha(t *testing.T) {
	tests := []struct {
		supported khr_surface.CompositeAlphaFlags
		want      khr_surface.CompositeAlphaFlags
	}{
		{supported: khr_surface.CompositeAlphaOpaque | khr_surface.CompositeAlphaPreMultiplied | khr_surface.CompositeAlphaInherit, want: khr_surface.CompositeAlphaPreMultiplied},
		{supported: khr_surface.CompositeAlphaOpaque | khr_surface.CompositeAlphaPostMultiplied | khr_surface.CompositeAlphaInherit, want: khr_surface.CompositeAlphaPostMultiplied},
		{supported: khr_surface.CompositeAlphaOpaque | khr_surface.CompositeAlphaInherit, want: khr_surface.CompositeAlphaInherit},
		{supported: khr_surface.CompositeAlphaOpaque, want: khr_surface.CompositeAlphaOpaque},
		{supported: 0, want: khr_surface.CompositeAlphaOpaque},
	}

	for _, tt := range tests {
		caps := &khr_surface.SurfaceCapabilities{SupportedCompositeAlpha: tt.supported}
		if got := ChooseCompositeAlpha(caps); got != tt.want {
			t.Errorf("supported %d: expected %d, got %d", tt.supported, tt.want, got)
		}
	}
}

func TestChooseImageCount(t *testing.T) {
	tests := []struct {
		min, max, want int
	}{
		{min: 2, max: 0, want: 3},
		{min: 1, max: 2, want: 2},
		{min: 4, max: 8, want: 4},
		{min: 2, max: 8, want: 3},
	}

	for _, tt := range tests {
		caps := &khr_surface.SurfaceCapabilities{MinImageCount: tt.min, MaxImageCount: tt.max}
		if got := ChooseImageCount(caps, DesiredImageCount); got != tt.want {
			t.Errorf("min %d max %d: expected %d, got %d", tt.min, tt.max, tt.want, got)
		}
	}
}
