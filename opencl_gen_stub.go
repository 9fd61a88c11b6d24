//go:build !opencl

package main

import "errors"

func generateFieldGPU(c *chunk, seed int64) error {
	return errors.New("OpenCL terrain generation is not enabled; rebuild with -tags opencl")
}
