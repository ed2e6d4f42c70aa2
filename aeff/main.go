// Command aeff computes an effective-area histogram from a table extracted
// by the extraction binary and saves it as a plot.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	extract "github.com/mjlarson/effective-area-example/pkg"
)

var (
	logEMin = flag.Float64("minloge", 0, "minimum log10(E/GeV)")
	logEMax = flag.Float64("maxloge", 4, "maximum log10(E/GeV)")
	nBins   = flag.Int("nbins", 40, "number of log10(E) bins")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <npy-input-file> <output-prefix>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("aeff: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 2 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	table, err := extract.ReadNpy(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("read %d rows from %s", table.Rows(), flag.Arg(0))

	owHist := hbook.NewH1D(*nBins, *logEMin, *logEMax)
	for i := range table.TrueE {
		owHist.Fill(math.Log10(float64(table.TrueE[i])), table.OW[i])
	}

	// OneWeight carries GeV cm^2 sr; dividing the summed weights by the
	// bin width in energy and the full-sky solid angle leaves cm^2.
	points := make(plotter.XYs, *nBins)
	for i, bin := range owHist.Binning.Bins {
		deltaE := math.Pow(10, bin.XMax()) - math.Pow(10, bin.XMin())
		aeff := bin.SumW() / (deltaE * 4 * math.Pi)
		points[i].X = bin.XMid()
		points[i].Y = aeff
		fmt.Printf("log10(E) [%6.3f, %6.3f): Aeff = %12.6g cm^2\n", bin.XMin(), bin.XMax(), aeff)
	}

	p := plot.New()
	p.Title.Text = "Effective area"
	p.X.Label.Text = "log10(E/GeV)"
	p.Y.Label.Text = "Aeff [cm^2]"

	line, err := plotter.NewLine(points)
	if err != nil {
		log.Fatal(err)
	}
	p.Add(line)

	prefix := flag.Arg(1)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, prefix+".png"); err != nil {
		log.Fatal(err)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, prefix+".pdf"); err != nil {
		log.Fatal(err)
	}
}
