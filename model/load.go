package model

import (
	"errors"
	"io"
	"math"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

type fileBranch struct {
	Probability float64 `yaml:"probability"`
	Value       float64 `yaml:"value"`
	Next        int     `yaml:"next"`
}

type fileVariable struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind"`
	Branches []fileBranch `yaml:"branches"`
	Ignore   bool         `yaml:"ignore"`
	Maximize *bool        `yaml:"maximize"`
	Formula  string       `yaml:"formula"`
}

type file struct {
	Variables []fileVariable `yaml:"variables"`
}

// Load decodes a YAML model file into a table. Variables keep their file
// order, so `next` fields refer to positions in the variables list.
func Load(r io.Reader) (*Table, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, eris.New("model: empty file")
		}
		return nil, eris.Wrap(err, "model: decode")
	}
	if len(f.Variables) == 0 {
		return nil, eris.New("model: no variables declared")
	}

	t := NewTable()
	for _, fv := range f.Variables {
		v := Variable{
			Tag:      fv.Name,
			Kind:     ParseKind(fv.Kind),
			Ignore:   fv.Ignore,
			Maximize: true,
			Formula:  fv.Formula,
		}
		if fv.Maximize != nil {
			v.Maximize = *fv.Maximize
		}
		for i, b := range fv.Branches {
			if !finite(b.Probability) || !finite(b.Value) {
				return nil, eris.Errorf("model: variable %q branch %d: probability and value must be finite", fv.Name, i)
			}
			v.Branches = append(v.Branches, Branch(b))
		}
		t.Add(v)
	}
	return t, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "model: open %s", path)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, eris.Wrapf(err, "model: load %s", path)
	}
	return t, nil
}
