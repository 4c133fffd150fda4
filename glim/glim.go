// Package glim runs the Vulkan setup sequence once per process and keeps the
// resulting context, swapchain and shaders behind package-level accessors.
package glim

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/glimgfx/glim/internal/logger"
	"github.com/loov/hrtime"
	"github.com/vkngwrapper/core/v3/core1_0"
)

var ErrAlreadyInitialized = errors.New("glim is already initialized")

var (
	log = logger.New("glim")

	mu      sync.Mutex
	current *Context
	shader  *Shader
)

// Init creates the context, a swapchain of cfg.Width by cfg.Height and the
// shader modules. Calling it again before Quit is an error.
func Init(driver core1_0.GlobalDriver, cfg Config, extensions []string, createSurface CreateSurfaceFunc) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if driver == nil {
		return errors.New("nil global driver")
	}
	if createSurface == nil {
		return errors.New("nil surface factory")
	}

	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return ErrAlreadyInitialized
	}

	start := hrtime.Now()

	// Shader files are read before any Vulkan object is created.
	vertexCode, fragmentCode, err := LoadShaderCode(cfg.VertexShaderPath, cfg.FragmentShaderPath)
	if err != nil {
		return err
	}

	ctx, err := newContext(driver, cfg, extensions, createSurface)
	if err != nil {
		return err
	}

	if err = ctx.InitSwapchain(cfg.Width, cfg.Height); err != nil {
		ctx.destroy()
		return errors.Wrap(err, "init swapchain")
	}

	shader, err = NewShader(ctx.DeviceDriver, vertexCode, fragmentCode)
	if err != nil {
		ctx.destroy()
		return err
	}

	current = ctx
	log.Log("initialized in %s", hrtime.Since(start))
	return nil
}

// Instance returns the context created by Init. It panics when glim is not
// initialized.
func Instance() *Context {
	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		panic("glim: Instance called before Init")
	}
	return current
}

// Shaders returns the shader modules created by Init, or nil.
func Shaders() *Shader {
	mu.Lock()
	defer mu.Unlock()

	return shader
}

// Quit releases the swapchain, the shaders and the context, in that order.
// It does nothing when glim is not initialized.
func Quit() {
	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		return
	}

	current.DestroySwapchain()
	if shader != nil {
		shader.Destroy()
		shader = nil
	}
	current.destroy()
	current = nil
}
