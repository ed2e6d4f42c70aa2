package main

import (
	"fmt"
	"io"
	"os"

	extract "github.com/mjlarson/effective-area-example/pkg"
)

type FrameReader struct {
	File       *os.File
	FrameCount int
}

func NewFrameReader(file *os.File) *FrameReader {
	return &FrameReader{File: file, FrameCount: -1}
}

// getNextFrame pops frames until the next physics frame, honoring the
// MaxFrames and Skip settings. Returns io.EOF when the file is exhausted.
func (f *FrameReader) getNextFrame() (extract.FrameHeaderStruct, []byte, error) {
	header, payload, err := extract.ReadFrameFromFile(f.File)
	if err != nil {
		return header, nil, err
	}
	if !extract.ValidFrame(header) {
		return f.getNextFrame()
	}
	f.FrameCount++
	if f.FrameCount >= configuration.MaxFrames {
		if VerbosityLevel > 0 {
			logger.Info("Max frames reached", "fileReader")
		}
		return header, nil, io.EOF
	}
	if f.FrameCount < configuration.Skip {
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Skipping frame %d with ID %d", f.FrameCount, header.FrameId)
			logger.Info(message, "fileReader")
		}
		return f.getNextFrame()
	}
	if VerbosityLevel > 1 {
		message := fmt.Sprintf("Reading frame %d with ID %d", f.FrameCount, header.FrameId)
		logger.Info(message, "fileReader")
	}
	return header, payload, nil
}
