// Package scaffold implements the `axiomc init` project-creation flow:
// writing a manifest and a minimal directory layout for a new project.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectType is the kind of project being scaffolded.
type ProjectType string

const (
	Bin ProjectType = "bin"
	Lib ProjectType = "lib"
)

// Target is the only supported build target.
type Target string

const (
	Linux Target = "Linux"
)

// Manifest is the TOML shape of a project's axiom.toml:
// {package: {name, version, type}, build: {target}}.
type Manifest struct {
	Package Package `toml:"package"`
	Build   Build   `toml:"build"`
}

type Package struct {
	Name    string      `toml:"name"`
	Version string      `toml:"version"`
	Type    ProjectType `toml:"type"`
}

type Build struct {
	Target Target `toml:"target"`
}

const defaultVersion = "0.1.0"

var scaffoldDirs = []string{"src", "packages", "docs", "tests", "build"}

// Init scaffolds a new project named name of the given kind, rooted at
// dir/name (or dir itself, if name is "."). For any name other than ".", it
// refuses to run if dir/name already exists.
func Init(dir, name string, kind ProjectType) error {
	root := dir
	if name != "." {
		root = filepath.Join(dir, name)
		if _, err := os.Stat(root); err == nil {
			return fmt.Errorf("directory %q already exists", root)
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := os.Mkdir(root, 0o755); err != nil {
			return err
		}
	}

	for _, d := range scaffoldDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return err
		}
	}

	manifest := Manifest{
		Package: Package{Name: name, Version: defaultVersion, Type: kind},
		Build:   Build{Target: Linux},
	}
	manifestFile, err := os.Create(filepath.Join(root, "axiom.toml"))
	if err != nil {
		return err
	}
	defer manifestFile.Close()
	if err := toml.NewEncoder(manifestFile).Encode(manifest); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(root, "axiom.lock"), nil, 0o644); err != nil {
		return err
	}

	entryName := "bin.axiom"
	if kind == Lib {
		entryName = "lib.axiom"
	}
	return os.WriteFile(filepath.Join(root, "src", entryName), nil, 0o644)
}
