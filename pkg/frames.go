package extract

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	FrameFileMagic   uint64 = 0x454c494652463349 // "I3FRFILE"
	FrameFileVersion uint32 = 1
)

// Stop types. Only physics frames carry events to extract.
const (
	GEOMETRY_FRAME    int32 = 1
	CALIBRATION_FRAME int32 = 2
	STATUS_FRAME      int32 = 3
	DAQ_FRAME         int32 = 4
	PHYSICS_FRAME     int32 = 5
)

// Object types found in a frame payload.
const (
	OBJ_WEIGHT_MAP    int32 = 1
	OBJ_PARTICLE_TREE int32 = 2
	OBJ_OPAQUE        int32 = 3
)

// Conventional object names written by the simulation chain.
const (
	WeightMapName    = "I3MCWeightDict"
	ParticleTreeName = "I3MCTree"
	GenieResultsName = "GENIEResultsDict"
)

const NAMELEN = 32

type FileHeaderStruct struct {
	Magic   uint64
	Version uint32
	RunNb   uint32
}

type FrameHeaderStruct struct {
	FrameSize  uint32
	StopType   int32
	FrameId    uint32
	RunNb      uint32
	NumObjects uint32
}

type ObjectHeaderStruct struct {
	Name    [NAMELEN]byte
	ObjType int32
	ObjSize uint32
}

type WeightEntryStruct struct {
	Key   [NAMELEN]byte
	Value float64
}

type Particle struct {
	Type    int32
	Energy  float64
	Zenith  float64
	Azimuth float64
}

// Frame is the decoded in-memory view of one on-disk frame.
type Frame struct {
	Header    FrameHeaderStruct
	Weights   map[string]float64
	Particles []Particle
	// Objects maps every object name present in the frame to its type,
	// including opaque objects whose payload is skipped.
	Objects map[string]int32
}

func (f *Frame) HasObject(name string) bool {
	_, ok := f.Objects[name]
	return ok
}

func (f *Frame) Weight(key string) (float64, error) {
	value, ok := f.Weights[key]
	if !ok {
		return 0, &ErrMissingKey{Key: key, FrameId: f.Header.FrameId}
	}
	return value, nil
}

func ValidFrame(header FrameHeaderStruct) bool {
	return header.StopType == PHYSICS_FRAME
}

func convertToName(s string) [NAMELEN]byte {
	var byteArray [NAMELEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func nameToString(name [NAMELEN]byte) string {
	end := bytes.IndexByte(name[:], 0)
	if end < 0 {
		end = NAMELEN
	}
	return string(name[:end])
}

// OpenFrameFile opens a frame file and validates its magic number and
// version, leaving the file positioned at the first frame.
func OpenFrameFile(fname string) (*os.File, FileHeaderStruct, error) {
	var fileHeader FileHeaderStruct
	file, err := os.Open(fname)
	if err != nil {
		return nil, fileHeader, &ErrOpenFile{Filename: fname, Err: err}
	}
	err = binary.Read(file, binary.LittleEndian, &fileHeader)
	if err != nil {
		file.Close()
		return nil, fileHeader, &ErrOpenFile{Filename: fname, Err: err}
	}
	if fileHeader.Magic != FrameFileMagic {
		file.Close()
		return nil, fileHeader, &ErrBadMagic{Filename: fname, Magic: fileHeader.Magic}
	}
	if fileHeader.Version != FrameFileVersion {
		file.Close()
		err := fmt.Errorf("frame file version is %d, expected %d", fileHeader.Version, FrameFileVersion)
		return nil, fileHeader, &ErrOpenFile{Filename: fname, Err: err}
	}
	return file, fileHeader, nil
}

// ReadFrameFromFile pops the next frame header and its raw payload.
// Returns io.EOF when the file is exhausted.
func ReadFrameFromFile(file *os.File) (FrameHeaderStruct, []byte, error) {
	var header FrameHeaderStruct
	headerSize := binary.Size(header)
	headerBinary := make([]byte, headerSize)
	_, err := io.ReadFull(file, headerBinary)
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return header, nil, err
	}

	headerReader := bytes.NewReader(headerBinary)
	binary.Read(headerReader, binary.LittleEndian, &header)

	if header.FrameSize < uint32(headerSize) {
		return header, nil, &ErrBadFrame{FrameId: header.FrameId, Reason: "frame size smaller than header"}
	}
	payloadSize := header.FrameSize - uint32(headerSize)
	payload := make([]byte, payloadSize)
	_, err = io.ReadFull(file, payload)
	if err != nil {
		return header, nil, &ErrBadFrame{FrameId: header.FrameId, Reason: "truncated payload"}
	}
	return header, payload, nil
}

// DecodeFrame walks the payload object by object. Weight maps and particle
// trees are decoded; any other object type only records its presence.
func DecodeFrame(header FrameHeaderStruct, payload []byte) (Frame, error) {
	frame := Frame{
		Header:  header,
		Weights: make(map[string]float64),
		Objects: make(map[string]int32),
	}

	objHeaderSize := binary.Size(ObjectHeaderStruct{})
	position := 0
	for i := uint32(0); i < header.NumObjects; i++ {
		if position+objHeaderSize > len(payload) {
			return frame, &ErrBadFrame{FrameId: header.FrameId, Reason: "truncated object header"}
		}
		var objHeader ObjectHeaderStruct
		objHeaderReader := bytes.NewReader(payload[position : position+objHeaderSize])
		binary.Read(objHeaderReader, binary.LittleEndian, &objHeader)
		position += objHeaderSize

		end := position + int(objHeader.ObjSize)
		if end > len(payload) {
			return frame, &ErrBadFrame{FrameId: header.FrameId, Reason: "object payload past end of frame"}
		}

		name := nameToString(objHeader.Name)
		frame.Objects[name] = objHeader.ObjType

		switch objHeader.ObjType {
		case OBJ_WEIGHT_MAP:
			err := decodeWeightMap(payload[position:end], &frame)
			if err != nil {
				return frame, err
			}
		case OBJ_PARTICLE_TREE:
			err := decodeParticleTree(payload[position:end], &frame)
			if err != nil {
				return frame, err
			}
		}
		position = end
	}
	return frame, nil
}

func decodeWeightMap(data []byte, frame *Frame) error {
	entrySize := binary.Size(WeightEntryStruct{})
	if len(data)%entrySize != 0 {
		return &ErrBadFrame{FrameId: frame.Header.FrameId, Reason: "weight map size is not a multiple of entry size"}
	}
	reader := bytes.NewReader(data)
	for position := 0; position < len(data); position += entrySize {
		var entry WeightEntryStruct
		binary.Read(reader, binary.LittleEndian, &entry)
		frame.Weights[nameToString(entry.Key)] = entry.Value
	}
	return nil
}

func decodeParticleTree(data []byte, frame *Frame) error {
	entrySize := binary.Size(Particle{})
	if len(data)%entrySize != 0 {
		return &ErrBadFrame{FrameId: frame.Header.FrameId, Reason: "particle tree size is not a multiple of entry size"}
	}
	count := len(data) / entrySize
	particles := make([]Particle, count)
	reader := bytes.NewReader(data)
	binary.Read(reader, binary.LittleEndian, particles)
	frame.Particles = particles
	return nil
}

// FrameFileWriter writes frame files in the same layout the reader above
// expects. The simulation chain produces these files; this writer exists
// for fixtures and synthetic runs.
type FrameFileWriter struct {
	File   *os.File
	Frames int
}

func CreateFrameFile(fname string, runNb uint32) (*FrameFileWriter, error) {
	file, err := os.Create(fname)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	fileHeader := FileHeaderStruct{
		Magic:   FrameFileMagic,
		Version: FrameFileVersion,
		RunNb:   runNb,
	}
	err = binary.Write(file, binary.LittleEndian, fileHeader)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &FrameFileWriter{File: file}, nil
}

func (w *FrameFileWriter) WriteFrame(frame Frame) error {
	payload := new(bytes.Buffer)
	numObjects := uint32(0)

	if len(frame.Weights) > 0 {
		entries := new(bytes.Buffer)
		// Weight maps are encoded in sorted key order so files are
		// reproducible across runs.
		keys := maps.Keys(frame.Weights)
		slices.Sort(keys)
		for _, key := range keys {
			entry := WeightEntryStruct{Key: convertToName(key), Value: frame.Weights[key]}
			binary.Write(entries, binary.LittleEndian, entry)
		}
		writeObject(payload, WeightMapName, OBJ_WEIGHT_MAP, entries.Bytes())
		numObjects++
	}

	if len(frame.Particles) > 0 {
		entries := new(bytes.Buffer)
		binary.Write(entries, binary.LittleEndian, frame.Particles)
		writeObject(payload, ParticleTreeName, OBJ_PARTICLE_TREE, entries.Bytes())
		numObjects++
	}

	opaque := make([]string, 0, len(frame.Objects))
	for name, objType := range frame.Objects {
		if objType == OBJ_OPAQUE {
			opaque = append(opaque, name)
		}
	}
	slices.Sort(opaque)
	for _, name := range opaque {
		writeObject(payload, name, OBJ_OPAQUE, nil)
		numObjects++
	}

	header := FrameHeaderStruct{
		FrameSize:  uint32(binary.Size(FrameHeaderStruct{}) + payload.Len()),
		StopType:   frame.Header.StopType,
		FrameId:    frame.Header.FrameId,
		RunNb:      frame.Header.RunNb,
		NumObjects: numObjects,
	}
	err := binary.Write(w.File, binary.LittleEndian, header)
	if err != nil {
		return err
	}
	_, err = w.File.Write(payload.Bytes())
	if err != nil {
		return err
	}
	w.Frames++
	return nil
}

func writeObject(buffer *bytes.Buffer, name string, objType int32, data []byte) {
	objHeader := ObjectHeaderStruct{
		Name:    convertToName(name),
		ObjType: objType,
		ObjSize: uint32(len(data)),
	}
	binary.Write(buffer, binary.LittleEndian, objHeader)
	buffer.Write(data)
}

func (w *FrameFileWriter) Close() error {
	return w.File.Close()
}
