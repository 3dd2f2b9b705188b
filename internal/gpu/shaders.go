// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/hqx.wgsl
var hqxShaderSource string

// workgroupSize is the compute workgroup edge length declared in hqx.wgsl.
const workgroupSize = 8

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// CompileHQxShader compiles the HQx kernel from WGSL to SPIR-V words.
func CompileHQxShader() ([]uint32, error) {
	return compileToSPIRV(hqxShaderSource)
}

// compileToSPIRV compiles WGSL with naga and converts the little-endian
// byte stream to 32-bit words.
func compileToSPIRV(wgsl string) ([]uint32, error) {
	if wgsl == "" {
		return nil, errors.New("shader source is empty")
	}
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: malformed SPIR-V (%d bytes)", len(spirvBytes))
	}

	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	if code[0] != spirvMagic {
		return nil, fmt.Errorf("compile shader: invalid SPIR-V magic 0x%08X", code[0])
	}
	return code, nil
}

// createShaderModule creates a HAL shader module from SPIR-V code.
func createShaderModule(device hal.Device, label string, code []uint32) (hal.ShaderModule, error) {
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
}

// dispatchSize returns the number of workgroups covering n pixels.
func dispatchSize(n uint32) uint32 {
	return (n + workgroupSize - 1) / workgroupSize
}
