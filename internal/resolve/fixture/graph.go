package fixture

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// Graph is the root of a fixture description.
type Graph struct {
	// ModuleMissing makes ScriptApp fail as if the scripting module could not
	// be imported.
	ModuleMissing bool `toml:"module_missing"`
	// App is the application object. A nil App makes ScriptApp return nothing.
	App *App `toml:"app"`
	// Faults maps "Node.Method" to an error message returned by that call.
	Faults map[string]string `toml:"faults"`
	// NilResults lists "Node.Method" calls that return a nil node.
	NilResults []string `toml:"nil_results"`
}

// App describes the application object.
type App struct {
	Version string   `toml:"version"`
	Product string   `toml:"product"`
	Project *Project `toml:"project"`
}

// Project describes the currently open project. A nil Project means no
// project is open.
type Project struct {
	Name            string            `toml:"name"`
	Settings        map[string]string `toml:"settings"`
	CurrentTimeline string            `toml:"current_timeline"`
	Timelines       []Timeline        `toml:"timelines"`
	MediaPool       MediaPool         `toml:"media_pool"`
}

// Timeline describes one timeline. Tracks are listed per kind, each track as
// the names of its items.
type Timeline struct {
	Name       string     `toml:"name"`
	StartFrame int        `toml:"start_frame"`
	EndFrame   int        `toml:"end_frame"`
	Video      [][]string `toml:"video"`
	Audio      [][]string `toml:"audio"`
	Subtitle   [][]string `toml:"subtitle"`
}

// MediaPool describes the media pool and its root bin.
type MediaPool struct {
	Root Folder `toml:"root"`
}

// Folder describes a media pool bin.
type Folder struct {
	Name    string   `toml:"name"`
	Clips   []string `toml:"clips"`
	Folders []Folder `toml:"folders"`
}

// Load reads a fixture graph from a TOML file.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture graph from TOML.
func Parse(data []byte) (*Graph, error) {
	var g Graph
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &g, nil
}

func (g *Graph) fault(node, method string) (string, bool) {
	msg, ok := g.Faults[node+"."+method]
	return msg, ok
}

func (g *Graph) returnsNil(node, method string) bool {
	return slices.Contains(g.NilResults, node+"."+method)
}
