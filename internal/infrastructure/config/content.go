package config

// ContentConfig points at content files overriding the embedded dataset.
// Empty paths use the embedded files.
type ContentConfig struct {
	RegionsPath string `mapstructure:"regions_path"`
	CatalogPath string `mapstructure:"catalog_path"`
	EventsPath  string `mapstructure:"events_path"`
}
