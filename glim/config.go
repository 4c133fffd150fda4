package glim

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
)

// Config describes the window-sized resources Init creates and the shaders it loads.
type Config struct {
	AppName    string
	EngineName string

	Width  int
	Height int

	// Validation enables the Khronos validation layer and routes its reports
	// through the glim logger.
	Validation bool

	VertexShaderPath   string
	FragmentShaderPath string

	APIVersion common.APIVersion
}

// DefaultConfig returns the window size and shader paths the demo uses.
func DefaultConfig() Config {
	return Config{
		AppName:            "glim",
		EngineName:         "glim",
		Width:              1024,
		Height:             720,
		VertexShaderPath:   "shaders/vert.spv",
		FragmentShaderPath: "shaders/frag.spv",
		APIVersion:         common.Vulkan1_0,
	}
}

// Validate rejects sizes and paths Init cannot work with.
func (c Config) Validate() error {
	if c.AppName == "" {
		return errors.New("config: application name is empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Newf("config: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.VertexShaderPath == "" {
		return errors.New("config: vertex shader path is empty")
	}
	if c.FragmentShaderPath == "" {
		return errors.New("config: fragment shader path is empty")
	}
	return nil
}
