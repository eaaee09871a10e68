package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/katalvlaran/tarjan/core"
)

// locationDoc is one value of the relatives document.
type locationDoc struct {
	StreetName string  `json:"street_name"`
	District   string  `json:"district"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// modeDoc is one value of the transport modes document.
type modeDoc struct {
	SpeedKmh        float64 `json:"speed_kmh"`
	CostPerKm       float64 `json:"cost_per_km"`
	TransferTimeMin float64 `json:"transfer_time_min"`
}

// FileStore keeps relatives and transport modes in two JSON objects keyed
// by name. The relatives object may carry the home under HomeKey. A missing
// file reads as an empty object.
type FileStore struct {
	RelativesPath string
	ModesPath     string
}

// NewFileStore returns a FileStore over the two paths.
func NewFileStore(relativesPath, modesPath string) *FileStore {
	return &FileStore{RelativesPath: relativesPath, ModesPath: modesPath}
}

var _ Store = (*FileStore)(nil)

// Load reads both documents, keeping the key order of each file.
func (s *FileStore) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}

	var d Dataset
	err := readObject(s.RelativesPath, func(name string, doc locationDoc) error {
		loc := core.Location{ID: name, Street: doc.StreetName, District: doc.District, Lat: doc.Lat, Lng: doc.Lng}
		return d.AddLocation(loc)
	})
	if err != nil {
		return Dataset{}, err
	}

	err = readObject(s.ModesPath, func(name string, doc modeDoc) error {
		return d.AddMode(core.TransportMode{
			Name:            name,
			SpeedKmh:        doc.SpeedKmh,
			CostPerKm:       doc.CostPerKm,
			TransferTimeMin: doc.TransferTimeMin,
		})
	})
	if err != nil {
		return Dataset{}, err
	}

	return d, nil
}

// SaveLocations rewrites the relatives document; home goes last.
func (s *FileStore) SaveLocations(ctx context.Context, home *core.Location, locations []core.Location) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		keys = make([]string, 0, len(locations)+1)
		docs = make([]locationDoc, 0, len(locations)+1)
	)
	for _, l := range locations {
		keys = append(keys, l.ID)
		docs = append(docs, locationDoc{StreetName: l.Street, District: l.District, Lat: l.Lat, Lng: l.Lng})
	}
	if home != nil {
		keys = append(keys, HomeKey)
		docs = append(docs, locationDoc{StreetName: home.Street, District: home.District, Lat: home.Lat, Lng: home.Lng})
	}

	return writeObject(s.RelativesPath, keys, docs)
}

// SaveModes rewrites the transport modes document.
func (s *FileStore) SaveModes(ctx context.Context, modes []core.TransportMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		keys = make([]string, 0, len(modes))
		docs = make([]modeDoc, 0, len(modes))
	)
	for _, m := range modes {
		keys = append(keys, m.Name)
		docs = append(docs, modeDoc{SpeedKmh: m.SpeedKmh, CostPerKm: m.CostPerKm, TransferTimeMin: m.TransferTimeMin})
	}

	return writeObject(s.ModesPath, keys, docs)
}

// readObject streams the top-level object of path, calling fn per member in
// file order.
func readObject[T any](path string, fn func(name string, v T) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%s: top level must be an object: %w", path, ErrMalformed)
	}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("%s: %w: %w", path, ErrMalformed, err)
		}
		name, _ := tok.(string)

		var v T
		if err = dec.Decode(&v); err != nil {
			return fmt.Errorf("%s: member %q: %w: %w", path, name, ErrMalformed, err)
		}
		if err = fn(name, v); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if _, err = dec.Token(); err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrMalformed, err)
	}

	return nil
}

// writeObject encodes keys/values as one indented object and replaces path
// atomically.
func writeObject[T any](path string, keys []string, values []T) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(",")
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		vb, err := json.MarshalIndent(values[i], "  ", "  ")
		if err != nil {
			return err
		}
		buf.WriteString("\n  ")
		buf.Write(kb)
		buf.WriteString(": ")
		buf.Write(vb)
	}
	if len(keys) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store: replace %s: %w", path, err)
	}

	return nil
}
