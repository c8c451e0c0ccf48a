// Package loader turns questionnaire documents into immutable model.Questionnaire
// values. It accepts YAML or JSON documents and, separately, OpenAPI object
// schemas annotated for intake use.
package loader

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/model"
)

// document is the on-disk questionnaire shape. "slides" is accepted as an
// alias for "fields" to match the original slide-deck configuration naming.
type document struct {
	Title  string        `yaml:"title" json:"title"`
	Theme  model.Theme   `yaml:"theme" json:"theme"`
	Fields []model.Field `yaml:"fields" json:"fields"`
	Slides []model.Field `yaml:"slides" json:"slides"`
}

// FromBytes parses a YAML (or JSON) questionnaire document.
func FromBytes(data []byte) (*model.Questionnaire, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("loader: document is empty")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("loader: parse document: %w", err)
	}

	fields := doc.Fields
	if len(fields) == 0 {
		fields = doc.Slides
	}

	q, err := model.NewQuestionnaire(doc.Title, doc.Theme, fields)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return q, nil
}

// FromFile reads and parses a questionnaire document from disk.
func FromFile(path string) (*model.Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return FromBytes(data)
}

// FromFS reads and parses a questionnaire document from a filesystem.
func FromFS(fsys fs.FS, path string) (*model.Questionnaire, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return FromBytes(data)
}
