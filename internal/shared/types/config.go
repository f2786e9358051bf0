package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DBPath     string   `json:"db_path" yaml:"db_path" toml:"db_path"`
	CSVDir     string   `json:"csv_dir" yaml:"csv_dir" toml:"csv_dir"`
	Reports    []string `json:"reports" yaml:"reports" toml:"reports"`
	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
	Audit      bool     `json:"audit" yaml:"audit" toml:"audit"`
	Trend      bool     `json:"trend" yaml:"trend" toml:"trend"`
}
