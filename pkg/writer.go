package extract

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// Writer mirrors the result table into an HDF5 file for analyses that read
// HDF5 instead of npy.
type Writer struct {
	File         *hdf5.File
	Filename     string
	MCGroup      *hdf5.Group
	EventTable   *hdf5.Dataset
	RunInfoTable *hdf5.Dataset
}

func NewWriter(filename string) (*Writer, error) {
	writer := &Writer{}
	fmt.Println("hdf5writer: Creating file: ", filename)
	file, err := openFile(filename)
	if err != nil {
		return nil, err
	}
	writer.File = file
	writer.Filename = filename
	writer.MCGroup, err = createGroup(writer.File, "MC")
	if err != nil {
		return nil, err
	}
	writer.EventTable, err = createTable(writer.MCGroup, "events", EventRowHDF5{})
	if err != nil {
		return nil, err
	}
	writer.RunInfoTable, err = createTable(writer.MCGroup, "runInfo", RunInfoHDF5{})
	if err != nil {
		return nil, err
	}
	return writer, nil
}

func (w *Writer) WriteTable(table *Table, runNumber uint32, nFiles int) error {
	if err := table.validate(); err != nil {
		return err
	}

	// The array MUST be allocated at creation, if not, HDF5 will panic
	// doing appends will not work
	rows := make([]EventRowHDF5, table.Rows())
	for i := range rows {
		rows[i] = EventRowHDF5{
			trueE:   table.TrueE[i],
			trueDec: table.TrueDec[i],
			ow:      table.OW[i],
		}
	}

	err := writeEntryToTable(w.RunInfoTable, RunInfoHDF5{
		run_number: int32(runNumber),
		n_files:    int32(nFiles),
	})
	if err != nil {
		return err
	}
	return writeArrayToTable(w.EventTable, &rows)
}

func (w *Writer) Close() {
	w.EventTable.Close()
	w.RunInfoTable.Close()
	w.MCGroup.Close()
	w.File.Close()
}
