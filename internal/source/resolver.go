// SPDX-License-Identifier: MPL-2.0

package source

import (
	"log/slog"
	"maps"
	"path/filepath"

	"github.com/envcmd/envcmd/internal/envfile"
)

const (
	// DirectText is a plain-text env file path.
	DirectText Kind = iota + 1
	// StructuredModule is a JSON, CUE, TOML or YAML env file path.
	StructuredModule
	// Section is one or more section names of the runtime-config file.
	Section
)

const (
	// Resolved means the attempt produced an environment map.
	Resolved Outcome = iota + 1
	// Missing means the attempt found nothing and the next step may run.
	Missing
)

type (
	// Kind tags the variant of a Source.
	Kind int

	// Outcome tags the result of a single resolution attempt.
	Outcome int

	// Source is a classified envSource.
	Source struct {
		Kind Kind
		// Path is the absolute file path read by this source. For Section
		// sources it is the runtime-config file.
		Path string
		// Sections holds the requested section names of a Section source.
		Sections []string
	}

	// Attempt is the typed outcome of one resolution step.
	Attempt struct {
		Source  Source
		Outcome Outcome
		Env     map[string]string
		// MissingSections lists requested sections absent from an existing
		// runtime-config file.
		MissingSections []string
	}

	// Resolver turns an envSource into an environment map.
	Resolver struct {
		// FS is the filesystem collaborator. Nil means OSFileSystem.
		FS FileSystem
		// WorkDir anchors relative paths. Empty means the process working directory.
		WorkDir string
		// RCFile is the runtime-config file name. Empty means DefaultRCFile.
		RCFile string
	}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case DirectText:
		return "text"
	case StructuredModule:
		return "structured"
	case Section:
		return "section"
	default:
		return "unknown"
	}
}

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// NewResolver creates a Resolver reading from the host filesystem.
func NewResolver(workDir, rcFile string) *Resolver {
	return &Resolver{FS: OSFileSystem{}, WorkDir: workDir, RCFile: rcFile}
}

// Resolve loads the environment map named by envSource.
//
// Structured modules are loaded directly and their load errors are returned
// as-is. Other sources try the direct file first and the runtime-config
// section second.
func (r *Resolver) Resolve(envSource string) (map[string]string, error) {
	src := r.Classify(envSource)
	if src.Kind == StructuredModule {
		return r.LoadStructured(src.Path)
	}

	attempt := r.AttemptText(src)
	if attempt.Outcome == Resolved {
		return attempt.Env, nil
	}
	slog.Debug("env file not readable, trying runtime config", "path", src.Path)

	attempt, err := r.AttemptSection(envSource)
	if err != nil {
		return nil, err
	}
	if attempt.Outcome == Resolved {
		return attempt.Env, nil
	}

	return nil, &SourceNotFoundError{
		EnvSource:       envSource,
		FilePath:        src.Path,
		FallbackPath:    attempt.Source.Path,
		MissingSections: attempt.MissingSections,
	}
}

// Classify maps envSource to a DirectText or StructuredModule source.
// Section sources only arise as the fallback of a DirectText attempt.
func (r *Resolver) Classify(envSource string) Source {
	path := r.abs(envSource)
	if _, ok := FormatForPath(envSource); ok {
		return Source{Kind: StructuredModule, Path: path}
	}
	return Source{Kind: DirectText, Path: path}
}

// LoadStructured decodes the structured env file at path.
// Any failure is reported as a *StructuredLoadError.
func (r *Resolver) LoadStructured(path string) (map[string]string, error) {
	format, ok := FormatForPath(path)
	if !ok {
		format = FormatJSON
	}

	data, err := r.fs().ReadFile(path)
	if err != nil {
		return nil, &StructuredLoadError{Path: path, Err: err}
	}
	env, err := DecodeEnv(format, data, path)
	if err != nil {
		return nil, &StructuredLoadError{Path: path, Err: err}
	}
	return env, nil
}

// AttemptText reads src.Path as a plain-text env file. Any read failure
// yields Missing; the failure is never retried.
func (r *Resolver) AttemptText(src Source) Attempt {
	content, err := r.fs().ReadFile(src.Path)
	if err != nil {
		return Attempt{Source: src, Outcome: Missing}
	}
	return Attempt{Source: src, Outcome: Resolved, Env: envfile.Parse(content)}
}

// AttemptSection looks up the sections named by envSource in the
// runtime-config file. Several comma-separated sections are merged left to
// right. A missing runtime-config file or missing section yields Missing; a
// file that exists but cannot be decoded is a *StructuredLoadError.
func (r *Resolver) AttemptSection(envSource string) (Attempt, error) {
	src := Source{Kind: Section, Path: r.rcPath(), Sections: SplitSections(envSource)}

	if _, err := r.fs().Stat(src.Path); err != nil {
		return Attempt{Source: src, Outcome: Missing}, nil
	}

	data, err := r.fs().ReadFile(src.Path)
	if err != nil {
		return Attempt{}, &StructuredLoadError{Path: src.Path, Err: err}
	}
	sections, err := DecodeSections(rcFormat(src.Path), data, src.Path)
	if err != nil {
		return Attempt{}, &StructuredLoadError{Path: src.Path, Err: err}
	}

	env := make(map[string]string)
	var missing []string
	for _, name := range src.Sections {
		section, ok := sections[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		maps.Copy(env, section)
	}

	if len(src.Sections) == 0 {
		missing = []string{envSource}
	}
	if len(missing) > 0 {
		return Attempt{Source: src, Outcome: Missing, MissingSections: missing}, nil
	}
	return Attempt{Source: src, Outcome: Resolved, Env: env}, nil
}

func (r *Resolver) fs() FileSystem {
	if r.FS == nil {
		return OSFileSystem{}
	}
	return r.FS
}

func (r *Resolver) rcPath() string {
	name := r.RCFile
	if name == "" {
		name = DefaultRCFile
	}
	return r.abs(name)
}

// abs resolves path against WorkDir. Forward slashes are converted to the
// native separator.
func (r *Resolver) abs(path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if r.WorkDir == "" {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return filepath.Join(r.WorkDir, path)
}
