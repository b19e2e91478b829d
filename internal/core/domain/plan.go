package domain

// Plan is the validated, resolved build configuration for one target.
// All paths are absolute and defaults are filled in.
type Plan struct {
	// Project names the final artifact.
	Project string
	// Artifact selects executable or shared library linking.
	Artifact ArtifactKind
	// BuildType selects the optimization profile.
	BuildType BuildType
	// Workers bounds concurrently in-flight compiler invocations.
	Workers int
	// Root is the build root the output layout hangs off.
	Root string
	// LinkFlags are extra flags passed to every link.
	LinkFlags []string
	// Sources are the registered source groups.
	Sources []SourcePath
}
