package extract

import "fmt"

// ErrOpenFile represents an error when opening a frame file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrBadMagic represents a file that is not a valid frame file.
type ErrBadMagic struct {
	Filename string
	Magic    uint64
}

func (e *ErrBadMagic) Error() string {
	return fmt.Sprintf("%q is not a frame file: magic number is %x, not %x", e.Filename, e.Magic, FrameFileMagic)
}

// ErrBadFrame represents a frame whose payload cannot be decoded.
type ErrBadFrame struct {
	FrameId uint32
	Reason  string
}

func (e *ErrBadFrame) Error() string {
	return fmt.Sprintf("error decoding frame %d: %s", e.FrameId, e.Reason)
}

// ErrMissingKey represents a required weight-map key that is absent.
type ErrMissingKey struct {
	Key     string
	FrameId uint32
}

func (e *ErrMissingKey) Error() string {
	return fmt.Sprintf("weight map of frame %d has no key %q", e.FrameId, e.Key)
}

// ErrNoNeutrino represents a particle tree with no neutrino entry.
type ErrNoNeutrino struct {
	FrameId uint32
}

func (e *ErrNoNeutrino) Error() string {
	return fmt.Sprintf("particle tree of frame %d has no neutrino", e.FrameId)
}

// ErrCreateGroup represents an error when creating an HDF5 group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating an HDF5 table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}
