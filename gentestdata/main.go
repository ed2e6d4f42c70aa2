// Command gentestdata writes a synthetic run directory of frame files for
// tests and local development.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	extract "github.com/mjlarson/effective-area-example/pkg"
)

var (
	outDir  = flag.String("outdir", "testdata", "output base directory")
	run     = flag.String("run", "140000", "run identifier")
	nFiles  = flag.Int("nfiles", 3, "number of files to write")
	nFrames = flag.Int("nframes", 10, "physics frames per file")
	genie   = flag.Bool("genie", true, "mark frames as GENIE output")
	seed    = flag.Int64("seed", 1, "random seed")
)

func main() {
	log.SetPrefix("gentestdata: ")
	log.SetFlags(0)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	runDir := filepath.Join(*outDir, *run)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		log.Fatal(err)
	}

	frameId := uint32(0)
	for i := 0; i < *nFiles; i++ {
		fname := filepath.Join(runDir, fmt.Sprintf("oscNext_%s_%05d.i3f", *run, i))
		writer, err := extract.CreateFrameFile(fname, 140000)
		if err != nil {
			log.Fatal(err)
		}

		for j := 0; j < *nFrames; j++ {
			frameId++
			// One DAQ frame ahead of every physics frame, as the
			// real processing chain emits.
			daq := extract.Frame{
				Header: extract.FrameHeaderStruct{StopType: extract.DAQ_FRAME, FrameId: frameId, RunNb: 140000},
			}
			if err := writer.WriteFrame(daq); err != nil {
				log.Fatal(err)
			}

			if err := writer.WriteFrame(physicsFrame(rng, frameId)); err != nil {
				log.Fatal(err)
			}
		}
		if err := writer.Close(); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", fname)
	}
	log.Printf("wrote %d files under %s", *nFiles, runDir)
}

func physicsFrame(rng *rand.Rand, frameId uint32) extract.Frame {
	types := []int32{extract.NU_E, extract.NU_E_BAR, extract.NU_MU, extract.NU_MU_BAR, extract.NU_TAU, extract.NU_TAU_BAR}
	primary := extract.Particle{
		Type:    types[rng.Intn(len(types))],
		Energy:  math.Pow(10, rng.Float64()*4), // 1 GeV - 10 TeV
		Zenith:  rng.Float64() * math.Pi,
		Azimuth: rng.Float64() * 2 * math.Pi,
	}
	// A secondary muon below the primary energy, never selected.
	muon := extract.Particle{
		Type:    13,
		Energy:  primary.Energy * rng.Float64(),
		Zenith:  primary.Zenith,
		Azimuth: primary.Azimuth,
	}

	frame := extract.Frame{
		Header: extract.FrameHeaderStruct{StopType: extract.PHYSICS_FRAME, FrameId: frameId, RunNb: 140000},
		Weights: map[string]float64{
			extract.OneWeightKey: rng.Float64() * 1e4,
			extract.NEventsKey:   100000,
		},
		Particles: []extract.Particle{primary, muon},
		Objects:   map[string]int32{},
	}
	if *genie {
		frame.Objects[extract.GenieResultsName] = extract.OBJ_OPAQUE
	}
	return frame
}
