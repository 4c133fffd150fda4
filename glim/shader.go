package glim

import (
	"encoding/binary"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"golang.org/x/sync/errgroup"
)

const spirvMagic uint32 = 0x07230203

// Shader holds the vertex and fragment modules every pipeline is built from.
type Shader struct {
	Vertex   core1_0.ShaderModule
	Fragment core1_0.ShaderModule

	deviceDriver core1_0.DeviceDriver
}

// NewShader creates the vertex and fragment modules from SPIR-V words.
func NewShader(deviceDriver core1_0.DeviceDriver, vertexCode, fragmentCode []uint32) (*Shader, error) {
	shader := &Shader{deviceDriver: deviceDriver}

	var err error
	shader.Vertex, _, err = deviceDriver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: vertexCode,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create vertex shader module")
	}

	shader.Fragment, _, err = deviceDriver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: fragmentCode,
	})
	if err != nil {
		shader.Destroy()
		return nil, errors.Wrap(err, "create fragment shader module")
	}

	return shader, nil
}

func (s *Shader) Destroy() {
	if s.Vertex.Initialized() {
		s.deviceDriver.DestroyShaderModule(s.Vertex, nil)
		s.Vertex = core1_0.ShaderModule{}
	}
	if s.Fragment.Initialized() {
		s.deviceDriver.DestroyShaderModule(s.Fragment, nil)
		s.Fragment = core1_0.ShaderModule{}
	}
}

// LoadShaderCode reads both SPIR-V files in parallel.
func LoadShaderCode(vertexPath, fragmentPath string) (vertexCode, fragmentCode []uint32, err error) {
	var group errgroup.Group

	group.Go(func() error {
		var err error
		vertexCode, err = readShaderFile(vertexPath)
		return err
	})
	group.Go(func() error {
		var err error
		fragmentCode, err = readShaderFile(fragmentPath)
		return err
	})

	if err = group.Wait(); err != nil {
		return nil, nil, err
	}
	return vertexCode, fragmentCode, nil
}

func readShaderFile(path string) ([]uint32, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read shader %s", path)
	}

	code, err := BytesToCode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "shader %s", path)
	}
	return code, nil
}

// ValidateSPIRV checks the framing of a SPIR-V binary, not its contents.
func ValidateSPIRV(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty SPIR-V binary")
	}
	if len(b)%4 != 0 {
		return errors.Newf("SPIR-V binary of %d bytes is not a whole number of words", len(b))
	}
	if magic := binary.LittleEndian.Uint32(b); magic != spirvMagic {
		return errors.Newf("bad SPIR-V magic %#08x", magic)
	}
	return nil
}

// BytesToCode converts a little-endian SPIR-V binary to the words
// vkCreateShaderModule takes.
func BytesToCode(b []byte) ([]uint32, error) {
	if err := ValidateSPIRV(b); err != nil {
		return nil, err
	}

	code := make([]uint32, len(b)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return code, nil
}
