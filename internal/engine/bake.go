package engine

import (
	"github.com/ivlev/autocamera/internal/renderer"
	"github.com/ivlev/autocamera/internal/timing"
	"github.com/ivlev/autocamera/internal/yamlfile"
)

// BakeDocument is the dense per-frame camera output of one sequence
type BakeDocument struct {
	Version   string           `yaml:"version"`
	Sequence  string           `yaml:"sequence"`
	FrameRate timing.FrameRate `yaml:"frameRate"`
	Cameras   []BakedCamera    `yaml:"cameras"`
}

// BakedCamera holds one sample per display frame for one camera
type BakedCamera struct {
	Name    string                 `yaml:"name"`
	Binding string                 `yaml:"binding"`
	Samples []renderer.FrameSample `yaml:"samples"`
}

// WriteBake writes a bake document to a YAML file
func WriteBake(doc *BakeDocument, path string) error {
	return yamlfile.Write(path, doc)
}

// ReadBake reads a bake document from a YAML file
func ReadBake(path string) (*BakeDocument, error) {
	return yamlfile.Read[BakeDocument](path)
}
