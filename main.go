package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"

	extract "github.com/mjlarson/effective-area-example/pkg"
)

var dbConn *sqlx.DB
var configuration extract.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	extract.SetConfiguration(configuration)
	extract.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	fractions := extract.DefaultFractions()
	if !configuration.NoDB {
		dbConn, err = extract.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
		defer dbConn.Close()

		fractions, err = extract.LoadDatabase(dbConn, configuration.Run)
		if err != nil {
			os.Exit(1)
		}
	}

	files, err := extract.SelectFiles(configuration.InDir, configuration.Run, configuration.FilePattern, configuration.MaxFiles)
	if err != nil {
		message := fmt.Errorf("Error listing input files: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	message := fmt.Sprintf("Selected %d files for run %s", len(files), configuration.Run)
	logger.Info(message, "main")

	start := time.Now()
	table, runNumber, err := processFiles(files, fractions)
	if err != nil {
		message := fmt.Errorf("Error processing run %s: %w", configuration.Run, err)
		logger.Error(message.Error())
		os.Exit(1)
	}

	fmt.Println("Total rows extracted: ", table.Rows())

	fileOut := configuration.FileOut
	if fileOut == "" {
		fileOut = fmt.Sprintf("oscnext_%s.npy", configuration.Run)
	}
	err = extract.WriteNpy(fileOut, table)
	if err != nil {
		message := fmt.Errorf("Error writing %s: %w", fileOut, err)
		logger.Error(message.Error())
		os.Exit(1)
	}

	if configuration.WriteHDF5 {
		fileOutHDF5 := configuration.FileOutHDF5
		if fileOutHDF5 == "" {
			fileOutHDF5 = fmt.Sprintf("oscnext_%s.h5", configuration.Run)
		}
		writer, err := extract.NewWriter(fileOutHDF5)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		err = writer.WriteTable(table, runNumber, len(files))
		writer.Close()
		if err != nil {
			message := fmt.Errorf("Error writing %s: %w", fileOutHDF5, err)
			logger.Error(message.Error())
			os.Exit(1)
		}
	}

	duration := time.Since(start)
	fmt.Printf("Total time: %d ms\n", duration.Milliseconds())
}

// processFiles runs the sequential extraction loop over the sorted file
// list. Row order in the returned table is file order, then frame order
// within each file.
func processFiles(files []string, fractions extract.GenerationFractions) (*extract.Table, uint32, error) {
	table := &extract.Table{}
	runNumber := uint32(0)
	for i, fname := range files {
		message := fmt.Sprintf("Processing file %d/%d: %s", i+1, len(files), fname)
		logger.Info(message, "main")
		fileRun, err := processFile(fname, len(files), fractions, table)
		if err != nil {
			return nil, 0, err
		}
		if runNumber == 0 {
			runNumber = fileRun
		}
	}
	return table, runNumber, nil
}

func processFile(fname string, nFiles int, fractions extract.GenerationFractions, table *extract.Table) (uint32, error) {
	file, fileHeader, err := extract.OpenFrameFile(fname)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := NewFrameReader(file)
	for {
		header, payload, err := reader.getNextFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("reading %s: %w", fname, err)
		}
		err = extractFrame(header, payload, nFiles, fractions, table)
		if err != nil {
			return 0, fmt.Errorf("extracting frame %d from %s: %w", header.FrameId, fname, err)
		}
	}
	return fileHeader.RunNb, nil
}

// extractFrame appends one row per physics frame: the most energetic
// neutrino's energy, its declination (pi/2 - zenith) and the normalized
// OneWeight.
func extractFrame(header extract.FrameHeaderStruct, payload []byte, nFiles int,
	fractions extract.GenerationFractions, table *extract.Table) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction panic on frame %d: %v", header.FrameId, r)
		}
	}()

	frame, err := extract.DecodeFrame(header, payload)
	if err != nil {
		return err
	}
	primary, err := frame.MostEnergeticNeutrino()
	if err != nil {
		return err
	}
	ow, err := extract.NormalizeOneWeight(&frame, nFiles, fractions)
	if err != nil {
		return err
	}
	table.Append(float32(primary.Energy), float32(extract.Declination(primary.Zenith)), ow)
	return nil
}
