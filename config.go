package main

import (
	"encoding/json"
	"fmt"
	"os"

	extract "github.com/mjlarson/effective-area-example/pkg"
)

func LoadConfiguration(filename string) (extract.Configuration, error) {
	var config extract.Configuration

	// Set default values
	config.InDir = "/data/ana/LE/oscNext/pass2/genie/level7_v02.00"
	config.Run = "140000"
	config.FilePattern = "oscNext_*.i3f"
	config.MaxFiles = 100
	config.MaxFrames = 1000000000
	config.Skip = 0
	config.FileOut = ""
	config.WriteHDF5 = false
	config.FileOutHDF5 = ""
	config.CompressionLevel = 4
	config.NoDB = false
	config.Host = "mysql.icecube.wisc.edu"
	config.User = "simreader"
	config.Passwd = "readonly"
	config.DBName = "simprod"
	config.Verbosity = 0

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config extract.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Input dir: %s", config.InDir), "config")
	logger.Info(fmt.Sprintf("Run: %s", config.Run), "config")
	logger.Info(fmt.Sprintf("File pattern: %s", config.FilePattern), "config")
	logger.Info(fmt.Sprintf("Max files: %d", config.MaxFiles), "config")
	logger.Info(fmt.Sprintf("Max frames: %d", config.MaxFrames), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Write HDF5: %t", config.WriteHDF5), "config")
	logger.Info(fmt.Sprintf("File out HDF5: %s", config.FileOutHDF5), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
