package main

import (
	"flag"
	"io"

	"github.com/glimgfx/glim/glim"
)

const (
	appName    = "05_InitSwapchainRAII"
	engineName = "Vulkan.hpp"
)

type options struct {
	glim.Config

	Title   string
	UseGlim bool
	Info    bool
}

func parseOptions(args []string, output io.Writer) (options, error) {
	opts := options{Config: glim.DefaultConfig()}
	opts.AppName = appName
	opts.EngineName = engineName

	flags := flag.NewFlagSet("demoapp", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.IntVar(&opts.Width, "width", opts.Width, "window width")
	flags.IntVar(&opts.Height, "height", opts.Height, "window height")
	flags.StringVar(&opts.Title, "title", "sandbox", "window title")
	flags.BoolVar(&opts.Validation, "validation", false, "enable the validation layer")
	flags.BoolVar(&opts.UseGlim, "glim", false, "create the swapchain and shaders through glim")
	flags.BoolVar(&opts.Info, "info", false, "log every physical device")
	flags.StringVar(&opts.VertexShaderPath, "vert", opts.VertexShaderPath, "vertex shader SPIR-V")
	flags.StringVar(&opts.FragmentShaderPath, "frag", opts.FragmentShaderPath, "fragment shader SPIR-V")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}
