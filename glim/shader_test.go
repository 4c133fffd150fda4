package glim

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var minimalSPIRV = []byte{
	0x03, 0x02, 0x23, 0x07, // magic
	0x00, 0x00, 0x01, 0x00, // version 1.0
	0x00, 0x00, 0x00, 0x00, // generator
	0x01, 0x00, 0x00, 0x00, // bound
	0x00, 0x00, 0x00, 0x00, // schema
}

func TestBytesToCode(t *testing.T) {
	code, err := BytesToCode(minimalSPIRV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []uint32{0x07230203, 0x00010000, 0, 1, 0}
	if !reflect.DeepEqual(code, want) {
		t.Errorf("expected %#x, got %#x", want, code)
	}
}

func TestValidateSPIRV(t *testing.T) {
	tests := []struct {
		name    string
		b       []byte
		wantErr bool
	}{
		{name: "valid", b: minimalSPIRV},
		{name: "empty", b: nil, wantErr: true},
		{name: "partial word", b: minimalSPIRV[:6], wantErr: true},
		{name: "big endian magic", b: []byte{0x07, 0x23, 0x02, 0x03}, wantErr: true},
		{name: "text file", b: []byte("void main() {}\n\n\n\n"), wantErr: true},
	}

	for _, tt := range tests {
		err := ValidateSPIRV(tt.b)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: expected error %v, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func writeFile(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadShaderCode(t *testing.T) {
	dir := t.TempDir()
	vert := writeFile(t, dir, "vert.spv", minimalSPIRV)
	frag := writeFile(t, dir, "frag.spv", append(append([]byte{}, minimalSPIRV...), 0xff, 0xff, 0xff, 0xff))

	vertexCode, fragmentCode, err := LoadShaderCode(vert, frag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vertexCode) != 5 || len(fragmentCode) != 6 {
		t.Errorf("unexpected word counts %d and %d", len(vertexCode), len(fragmentCode))
	}
	if fragmentCode[5] != 0xffffffff {
		t.Errorf("unexpected last word %#x", fragmentCode[5])
	}
}

func TestLoadShaderCodeErrors(t *testing.T) {
	dir := t.TempDir()
	vert := writeFile(t, dir, "vert.spv", minimalSPIRV)
	bad := writeFile(t, dir, "bad.spv", []byte{1, 2, 3})

	if _, _, err := LoadShaderCode(vert, filepath.Join(dir, "missing.spv")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, _, err := LoadShaderCode(bad, vert); err == nil {
		t.Error("expected an error for a malformed file")
	}
}
