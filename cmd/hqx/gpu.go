//go:build !nogpu

package main

import _ "github.com/gogpu/hqx/gpu" // register the GPU accelerator
