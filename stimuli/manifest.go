// SPDX-License-Identifier: MIT
// Package: crt/stimuli
//
// manifest.go - stimulus manifest in YAML and as the stimuli.js script.

package stimuli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
)

// ScriptName is the file WriteJSFile creates.
const ScriptName = "stimuli.js"

// ManifestName is the file WriteYAMLFile creates.
const ManifestName = "manifest.yml"

// Manifest lists the image file names available to the task.
// An empty Fillers list means fillers are drawn from Targets.
type Manifest struct {
	Targets []string `json:"targets" yaml:"targets"`
	Fillers []string `json:"fillers" yaml:"fillers"`
}

// NewManifest collects the item ids of pools. A shared pool produces an
// empty filler list.
func NewManifest(pools sequence.Pools) Manifest {
	m := Manifest{Targets: ids(pools.Targets), Fillers: []string{}}
	if !pools.Shared() {
		m.Fillers = ids(pools.Fillers)
	}

	return m
}

func ids(items []sequence.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}

	return out
}

// Pools turns the manifest back into sampling pools, resolving every file
// name against targetBase / fillerBase. An empty filler list gives a shared
// pool.
func (m Manifest) Pools(targetBase, fillerBase string) sequence.Pools {
	p := sequence.Pools{Targets: items(targetBase, m.Targets)}
	if len(m.Fillers) > 0 {
		p.Fillers = items(fillerBase, m.Fillers)
	}

	return p
}

func items(base string, names []string) []sequence.Item {
	out := make([]sequence.Item, len(names))
	for i, n := range names {
		out[i] = sequence.Item{ID: n, Path: path.Join(filepath.ToSlash(base), n)}
	}

	return out
}

// WriteYAML encodes m as YAML.
func (m Manifest) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("WriteYAML: %w", err)
	}

	return enc.Close()
}

// ReadManifest decodes a YAML manifest. Names are checked with CheckName.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("ReadManifest: %w", err)
	}
	for _, list := range [][]string{m.Targets, m.Fillers} {
		for _, n := range list {
			if err := CheckName(n); err != nil {
				return Manifest{}, fmt.Errorf("ReadManifest: %w", err)
			}
		}
	}

	return m, nil
}

// ReadManifestFile opens path and decodes it with ReadManifest.
func ReadManifestFile(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("ReadManifest: %w", err)
	}
	defer f.Close()

	return ReadManifest(f)
}

// WriteJS writes the two lists as global JavaScript arrays:
//
//	var TARGETIMGLST = [ ... ];
//	var FILLERIMGLST = [ ... ];
func (m Manifest) WriteJS(w io.Writer) error {
	for _, v := range []struct {
		name  string
		files []string
	}{
		{"TARGETIMGLST", m.Targets},
		{"FILLERIMGLST", m.Fillers},
	} {
		files := v.files
		if files == nil {
			files = []string{}
		}
		raw, err := json.MarshalIndent(files, "", "  ")
		if err != nil {
			return fmt.Errorf("WriteJS: %w", err)
		}
		if _, err = fmt.Fprintf(w, "var %s = %s;\n", v.name, raw); err != nil {
			return fmt.Errorf("WriteJS: %w", err)
		}
	}

	return nil
}

// WriteJSFile writes ScriptName into dir, creating dir when missing, and
// returns the file path.
func (m Manifest) WriteJSFile(dir string) (string, error) {
	return writeFile("WriteJSFile", dir, ScriptName, m.WriteJS)
}

// WriteYAMLFile writes ManifestName into dir, like WriteJSFile.
func (m Manifest) WriteYAMLFile(dir string) (string, error) {
	return writeFile("WriteYAMLFile", dir, ManifestName, m.WriteYAML)
}

func writeFile(method, dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", method, err)
	}
	out := filepath.Join(dir, name)
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("%s: %w", method, err)
	}
	if err = write(f); err != nil {
		_ = f.Close()
		return "", err
	}

	return out, f.Close()
}
