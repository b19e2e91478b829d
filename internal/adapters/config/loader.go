// Package config provides the configuration loader for baker.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when none is given.
const DefaultFilename = "baker.yaml"

const defaultWorkers = 4

var _ ports.ConfigLoader = (*Loader)(nil)

var buildTypes = map[string]domain.BuildType{
	"debug":         domain.BuildDebug,
	"release_small": domain.BuildReleaseSmall,
	"release_fast":  domain.BuildReleaseFast,
	"release_safe":  domain.BuildReleaseSafe,
}

var artifactKinds = map[string]domain.ArtifactKind{
	"executable": domain.ArtifactExecutable,
	"shared":     domain.ArtifactSharedLib,
}

// ParseBuildType maps a configuration string onto a build type.
func ParseBuildType(s string) (domain.BuildType, error) {
	bt, ok := buildTypes[s]
	if !ok {
		return "", zerr.With(zerr.New("unknown build type"), "build_type", s)
	}
	return bt, nil
}

// ParseArtifactKind maps a configuration string onto an artifact kind.
func ParseArtifactKind(s string) (domain.ArtifactKind, error) {
	kind, ok := artifactKinds[s]
	if !ok {
		return "", zerr.With(zerr.New("unknown artifact kind"), "artifact", s)
	}
	return kind, nil
}

// Loader reads and validates Bakerfiles.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration file at path and returns a resolved Plan.
// An env_file, when configured and present, is loaded into the process
// environment before toolchain detection reads CC, CXX and BAKER_LINKER.
func (l *Loader) Load(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Bakerfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	if file.Version != "" && file.Version != "1" {
		return nil, zerr.With(zerr.New("unsupported config version"), "version", file.Version)
	}
	if file.Project == "" {
		return nil, zerr.New("config is missing a project name")
	}
	if len(file.Sources) == 0 {
		return nil, zerr.New("config declares no sources")
	}

	buildType := domain.BuildDebug
	if file.BuildType != "" {
		bt, err := ParseBuildType(file.BuildType)
		if err != nil {
			return nil, err
		}
		buildType = bt
	}

	artifact := domain.ArtifactExecutable
	if file.Artifact != "" {
		kind, err := ParseArtifactKind(file.Artifact)
		if err != nil {
			return nil, err
		}
		artifact = kind
	}

	workers := file.Workers
	if workers == 0 {
		workers = defaultWorkers
	}

	// Relative paths in the file are resolved against the file's directory.
	base := filepath.Dir(path)
	root := file.Root
	if root == "" {
		root = base
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(base, root)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve build root")
	}

	if file.EnvFile != "" {
		envPath := file.EnvFile
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(base, envPath)
		}
		if err := godotenv.Load(envPath); err != nil {
			if !os.IsNotExist(err) {
				return nil, zerr.Wrap(err, "failed to load env file")
			}
			l.logger.Debug("env file not found", "path", envPath)
		}
	}

	sources := make([]domain.SourcePath, 0, len(file.Sources))
	for _, dto := range file.Sources {
		if dto.Dir == "" {
			return nil, zerr.New("source group is missing a directory")
		}
		dir := dto.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		sources = append(sources, domain.SourcePath{
			Dir:   dir,
			Files: dto.Files,
			Flags: dto.Flags,
		})
	}

	return &domain.Plan{
		Project:   file.Project,
		Artifact:  artifact,
		BuildType: buildType,
		Workers:   workers,
		Root:      root,
		LinkFlags: file.LinkFlags,
		Sources:   sources,
	}, nil
}
