package config

// Precachefile represents the structure of the precache.yaml configuration file.
type Precachefile struct {
	Version     string            `yaml:"version"`
	DevDir      string            `yaml:"devDir"`
	DistDir     string            `yaml:"distDir"`
	HelpersDir  string            `yaml:"helpersDir"`
	Template    string            `yaml:"template"`
	Output      string            `yaml:"output"`
	Placeholder string            `yaml:"placeholder"`
	Limits      LimitsDTO         `yaml:"limits"`
	Groups      map[string]string `yaml:"groups"`
	CopyIgnore  []string          `yaml:"copyIgnore"`
}

// LimitsDTO represents the group ceilings in the configuration.
// A zero value selects the default ceiling.
type LimitsDTO struct {
	MaxBytes int64 `yaml:"maxBytes"`
	MaxFiles int   `yaml:"maxFiles"`
}
