// Package persist defines the persistence boundary for component
// snapshots. Components expose reconstructible state structs; a Persister
// owns the wire format.
package persist

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// A Persister stores and retrieves one component's reconstructible state.
type Persister interface {
	Save(state interface{}) error
	Load(state interface{}) error
}

// JSONFile persists state as indented JSON at a fixed path.
type JSONFile struct {
	path string
}

// NewJSONFile returns a JSONFile persister writing to path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Save writes state to the file, replacing any previous contents.
func (p *JSONFile) Save(state interface{}) error {
	f, err := os.Create(p.path)
	if err != nil {
		return errors.Wrap(err, "creating snapshot file")
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	return nil
}

// Load reads state from the file.
func (p *JSONFile) Load(state interface{}) error {
	f, err := os.Open(p.path)
	if err != nil {
		return errors.Wrap(err, "opening snapshot file")
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	if err := json.NewDecoder(f).Decode(state); err != nil {
		return errors.Wrap(err, "decoding snapshot")
	}
	return nil
}
