package toolchain

import (
	"os"
	"os/exec"
	"runtime"

	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/zerr"
)

// defaultWarnFlags are applied to detected gcc-compatible compilers.
var defaultWarnFlags = []string{"-Wall", "-Wextra", "-pedantic"}

// Toolset bundles the detected default drivers.
type Toolset struct {
	C      ports.Compiler
	CPP    ports.Compiler
	Linker ports.Linker
}

// Languages returns the preconfigured languages for the drivers that were
// actually found.
func (t Toolset) Languages() []*ports.Language {
	scanner := NewIncludeScanner()
	var langs []*ports.Language
	if t.C != nil {
		langs = append(langs, &ports.Language{Name: "c", Extensions: []string{".c"}, Scanner: scanner, Compiler: t.C})
	}
	if t.CPP != nil {
		langs = append(langs, &ports.Language{Name: "c++", Extensions: []string{".cpp", ".cc"}, Scanner: scanner, Compiler: t.CPP})
	}
	return langs
}

// detectProbes abstracts environment probing so tests can inject fixed
// answers instead of the host toolchain.
type detectProbes struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

func hostProbes() detectProbes {
	return detectProbes{
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
}

// Detect probes the host for installed compilers and returns the default
// toolset: clang is preferred, then gcc, then cl on Windows. The CC, CXX and
// BAKER_LINKER environment variables override the probed choices. Detection
// is explicit and lazy; nothing is probed until a caller asks.
func Detect(runner ports.Runner, kind domain.ArtifactKind) (Toolset, error) {
	return detect(runner, kind, hostProbes())
}

func detect(runner ports.Runner, kind domain.ArtifactKind, probes detectProbes) (Toolset, error) {
	var ts Toolset

	cTool := probes.getenv("CC")
	if cTool == "" {
		cTool = firstOnPath(probes, "clang", "gcc")
	}
	cxxTool := probes.getenv("CXX")
	if cxxTool == "" {
		cxxTool = firstOnPath(probes, "clang++", "g++")
	}

	switch {
	case cTool != "":
		ts.C = NewUnixCompiler(cTool, runner, defaultWarnFlags...)
	case probes.goos == "windows" && onPath(probes, "cl"):
		ts.C = NewMSVCCompiler(runner)
	}

	switch {
	case cxxTool != "":
		ts.CPP = NewUnixCompiler(cxxTool, runner, defaultWarnFlags...)
	case probes.goos == "windows" && onPath(probes, "cl"):
		ts.CPP = NewMSVCCompiler(runner)
	}

	ts.Linker = detectLinker(runner, kind, probes)

	if ts.C == nil && ts.CPP == nil {
		return Toolset{}, domain.ErrNoToolchain
	}
	if ts.Linker == nil {
		return Toolset{}, zerr.Wrap(domain.ErrNoToolchain, "no linker found")
	}
	return ts, nil
}

func detectLinker(runner ports.Runner, kind domain.ArtifactKind, probes detectProbes) ports.Linker {
	if override := probes.getenv("BAKER_LINKER"); override != "" {
		if probes.goos == "windows" && (override == "link" || override == "lld-link") {
			return NewMSVCLinker(override, kind, runner)
		}
		return NewUnixLinker(override, kind, runner)
	}

	// The compiler driver is the most portable link entry point.
	if tool := firstOnPath(probes, "clang", "gcc"); tool != "" {
		return NewUnixLinker(tool, kind, runner)
	}
	if probes.goos == "windows" && onPath(probes, "link") {
		return NewMSVCLinker("link", kind, runner)
	}
	if onPath(probes, "ld.lld") || onPath(probes, "lld-link") {
		if probes.goos == "windows" {
			return NewMSVCLinker("lld-link", kind, runner)
		}
		return NewUnixLinker("ld.lld", kind, runner)
	}
	return nil
}

func firstOnPath(probes detectProbes, tools ...string) string {
	for _, tool := range tools {
		if onPath(probes, tool) {
			return tool
		}
	}
	return ""
}

func onPath(probes detectProbes, tool string) bool {
	_, err := probes.lookPath(tool)
	return err == nil
}
