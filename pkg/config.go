package extract

type Configuration struct {
	InDir            string `json:"in_dir"`
	Run              string `json:"run"`
	FilePattern      string `json:"file_pattern"`
	MaxFiles         int    `json:"max_files"`
	MaxFrames        int    `json:"max_frames"`
	Skip             int    `json:"skip"`
	FileOut          string `json:"file_out"`
	WriteHDF5        bool   `json:"write_hdf5"`
	FileOutHDF5      string `json:"file_out_hdf5"`
	CompressionLevel int    `json:"compression_level"`
	NoDB             bool   `json:"no_db"`
	Host             string `json:"host"`
	User             string `json:"user"`
	Passwd           string `json:"pass"`
	DBName           string `json:"dbname"`
	Verbosity        int    `json:"verbosity"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
