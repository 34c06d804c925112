package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedData is the initial content of the fake backend.
type SeedData struct {
	Users    []Record `json:"users" yaml:"users"`
	Posts    []Record `json:"posts" yaml:"posts"`
	Comments []Record `json:"comments" yaml:"comments"`
}

// For returns the seed records of resource.
func (d SeedData) For(resource string) []Record {
	switch resource {
	case ResourceUsers:
		return d.Users
	case ResourcePosts:
		return d.Posts
	case ResourceComments:
		return d.Comments
	default:
		return nil
	}
}

// LoadSeed reads seed data from a YAML or JSON file.
func LoadSeed(path string) (SeedData, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return SeedData{}, errors.New("seed file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedData{}, fmt.Errorf("read seed file: %w", err)
	}
	return parseSeed(raw, filepath.Ext(path))
}

type unmarshalFn func([]byte, any) error

// parseSeed decodes seed content; an unknown extension tries every format.
func parseSeed(data []byte, ext string) (SeedData, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	known := false
	for _, d := range decoders {
		if ext == d.ext {
			known = true
		}
	}

	var errs []error
	for _, d := range decoders {
		if known && ext != d.ext {
			continue
		}
		var seed SeedData
		if err := d.fn(data, &seed); err != nil {
			errs = append(errs, fmt.Errorf("decode %s seed: %w", d.name, err))
			continue
		}
		return seed, nil
	}
	return SeedData{}, errors.Join(append([]error{errors.New("seed file format not recognized (expected YAML or JSON)")}, errs...)...)
}
