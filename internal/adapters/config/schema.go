package config

// Bakerfile represents the structure of the baker.yaml configuration file.
type Bakerfile struct {
	Version   string      `yaml:"version"`
	Project   string      `yaml:"project"`
	Artifact  string      `yaml:"artifact"`
	BuildType string      `yaml:"build_type"`
	Workers   int         `yaml:"workers"`
	Root      string      `yaml:"root"`
	EnvFile   string      `yaml:"env_file"`
	LinkFlags []string    `yaml:"link_flags"`
	Sources   []SourceDTO `yaml:"sources"`
}

// SourceDTO represents one group of source files sharing a flag set.
type SourceDTO struct {
	Dir   string   `yaml:"dir"`
	Files []string `yaml:"files"`
	Flags []string `yaml:"flags"`
}
