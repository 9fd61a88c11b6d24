package main

import (
	"flag"
	"runtime"
)

// Command-line flags that control optional rendering, generation, and runtime
// behavior.
var (
	// debugFlag enables the FPS and cast statistics overlay.
	debugFlag = flag.Bool("debug", false, "show FPS, position, and cast statistics overlay")

	// seedFlag fixes the terrain seed. Zero picks one from the clock.
	seedFlag = flag.Int64("seed", 0, "terrain seed (0 = time-based)")

	// scanWorkersFlag sets how many goroutines service octant scans.
	scanWorkersFlag = flag.Int("scan-workers", defaultScanWorkers(), "worker goroutines for octant scans")

	// gpuGenFlag attempts terrain generation on the OpenCL device when the
	// binary is built with the opencl tag.
	gpuGenFlag = flag.Bool("gpu-gen", true, "generate terrain on the OpenCL device when available")

	// muteFlag disables all audio output.
	muteFlag = flag.Bool("mute", false, "disable audio output")

	// recordDefaultPGO triggers a scripted exploration to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "auto-explore for 30s while capturing default.pgo, then exit")

	editsPathFlag = flag.String("edits", editsFileName, "path of the editor persistence file")
)

// defaultScanWorkers matches the worker pool to the machine without
// oversubscribing beyond the eight octants a cast produces.
func defaultScanWorkers() int {
	n := runtime.NumCPU()
	if n > 8 {
		n = 8
	}
	if n < 1 {
		n = 1
	}
	return n
}
