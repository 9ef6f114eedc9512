package model

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v2"
)

// ErrArtifactNotFound is returned when the model file does not exist.
var ErrArtifactNotFound = errors.New("model artifact not found")

// Artifact is the fitted classifier and its categorical encoder, loaded once and shared read-only.
type Artifact struct {
	Path       string
	Classifier *LogisticRegression
	Encoder    *OneHotEncoder
}

type artifactFile struct {
	Model struct {
		Kind         string      `yaml:"kind"`
		FeatureNames []string    `yaml:"feature_names"`
		Classes      []string    `yaml:"classes"`
		Coefficients [][]float64 `yaml:"coefficients"`
		Intercept    []float64   `yaml:"intercept"`
		MultiClass   string      `yaml:"multi_class"`
	} `yaml:"model"`
	Encoder struct {
		Feature       string   `yaml:"feature"`
		Categories    []string `yaml:"categories"`
		HandleUnknown string   `yaml:"handle_unknown"`
		Drop          string   `yaml:"drop"`
	} `yaml:"encoder"`
}

// Load reads a YAML model artifact from path.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}
	a, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifact %s: %w", path, err)
	}
	a.Path = path
	return a, nil
}

// Parse decodes an artifact from YAML bytes.
func Parse(data []byte) (*Artifact, error) {
	var f artifactFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("invalid artifact yaml: %w", err)
	}

	if f.Model.Kind != "" && f.Model.Kind != "logistic_regression" {
		return nil, fmt.Errorf("unsupported model kind %q", f.Model.Kind)
	}
	clf, err := NewLogisticRegression(f.Model.FeatureNames, f.Model.Classes, f.Model.Coefficients, f.Model.Intercept, f.Model.MultiClass)
	if err != nil {
		return nil, err
	}

	feature := f.Encoder.Feature
	if feature == "" {
		feature = "UF"
	}
	enc, err := NewOneHotEncoder(feature, f.Encoder.Categories, f.Encoder.HandleUnknown, f.Encoder.Drop)
	if err != nil {
		return nil, err
	}

	return &Artifact{Classifier: clf, Encoder: enc}, nil
}

// Cache memoizes artifacts by path for the lifetime of the process.
type Cache struct {
	mu     sync.Mutex
	loaded map[string]*Artifact
	load   func(string) (*Artifact, error)
}

func NewCache() *Cache {
	return &Cache{loaded: make(map[string]*Artifact), load: Load}
}

// Get returns the artifact at path, loading it on first use. Failed loads are not cached.
func (c *Cache) Get(path string) (*Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a, ok := c.loaded[path]; ok {
		return a, nil
	}
	a, err := c.load(path)
	if err != nil {
		return nil, err
	}
	c.loaded[path] = a
	return a, nil
}
