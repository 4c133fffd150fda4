package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/glimgfx/glim/glim"
	"github.com/glimgfx/glim/internal/logger"
	"github.com/glimgfx/glim/tools"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

var log = logger.New("demoapp")

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Err(err, "bad arguments")
		os.Exit(1)
	}

	os.Exit(run(opts))
}

func run(opts options) int {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Err(err, "init SDL")
		return 1
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(opts.Width), int32(opts.Height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		log.Err(err, "create window failed")
		return 2
	}
	defer window.Destroy()

	extensions := window.VulkanGetInstanceExtensions()

	driver, err := core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		log.Err(err, "load vulkan")
		return 1
	}

	if opts.UseGlim {
		err = runGlim(driver, window, opts, extensions)
	} else {
		err = runInstance(driver, opts, extensions)
	}
	if err != nil {
		log.Err(err, "demo failed")
		return 1
	}
	return 0
}

func runInstance(driver core1_0.GlobalDriver, opts options, extensions []string) error {
	instanceDriver, err := tools.MakeInstance(driver, tools.InstanceOptions{
		AppName:    opts.AppName,
		EngineName: opts.EngineName,
		Extensions: extensions,
		APIVersion: opts.APIVersion,
		Debug:      opts.Validation,
		Log:        log,
	})
	if err != nil {
		return err
	}
	defer instanceDriver.DestroyInstance(nil)

	if opts.Validation {
		debugDriver := ext_debug_utils.CreateExtensionDriverFromCoreDriver(instanceDriver)
		if debugDriver != nil {
			messenger, _, err := debugDriver.CreateDebugUtilsMessenger(nil, tools.DebugMessengerCreateInfo(log))
			if err != nil {
				return errors.Wrap(err, "create debug messenger")
			}
			defer debugDriver.DestroyDebugUtilsMessenger(messenger, nil)
		}
	}

	if opts.Info {
		reportDevices(instanceDriver)
	}

	deviceDriver, err := initDevice(instanceDriver)
	if err != nil {
		return err
	}
	defer deviceDriver.DestroyDevice(nil)

	pollEvents()
	return nil
}

// initDevice opens a logical device on the first physical device that has a
// graphics queue.
func initDevice(instanceDriver core1_0.CoreInstanceDriver) (core1_0.CoreDeviceDriver, error) {
	physicalDevices, _, err := instanceDriver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate physical devices")
	}

	for _, physicalDevice := range physicalDevices {
		families := instanceDriver.GetPhysicalDeviceQueueFamilyProperties(physicalDevice)
		graphics, err := tools.FindGraphicsQueueFamilyIndex(families)
		if err != nil {
			continue
		}
		return tools.MakeDevice(instanceDriver, physicalDevice, graphics, tools.DeviceExtensions(), nil, nil)
	}
	return nil, errors.Wrap(tools.ErrNoSuitableQueueFamily, "no physical device with a graphics queue")
}

func runGlim(driver core1_0.GlobalDriver, window *sdl.Window, opts options, extensions []string) error {
	err := glim.Init(driver, opts.Config, extensions, func(instance core1_0.Instance, surfaceDriver khr_surface.ExtensionDriver) (khr_surface.Surface, error) {
		return vkng_sdl2.CreateSurface(instance, surfaceDriver, window)
	})
	if err != nil {
		return err
	}
	defer glim.Quit()

	ctx := glim.Instance()
	if opts.Info {
		reportDevices(ctx.InstanceDriver)
	}

	scene, err := newSceneResources(ctx)
	if err != nil {
		return err
	}
	defer scene.Destroy()

	pollEvents()

	_, err = ctx.DeviceDriver.DeviceWaitIdle()
	return err
}

func reportDevices(instanceDriver core1_0.CoreInstanceDriver) {
	physicalDevices, _, err := instanceDriver.EnumeratePhysicalDevices()
	if err != nil {
		log.Err(err, "enumerate physical devices")
		return
	}

	for _, device := range physicalDevices {
		report, err := tools.DescribePhysicalDevice(instanceDriver, device)
		if err != nil {
			log.Err(err, "describe physical device")
			continue
		}
		log.Log("%s", report)
	}
}

func pollEvents() {
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, quit := event.(*sdl.QuitEvent); quit {
				return
			}
		}
		sdl.Delay(10)
	}
}
