// Package manifest loads declarative command definitions from a directory.
//
// Each file holds one command in YAML (.yaml, .yml) or JSON (.json, .jsonc,
// comments and trailing commas allowed). The "handler" field names a Go
// handler registered in code; it defaults to the command name. Commands
// marked "deleted: true" need no handler.
package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/keshon/commandsync/pkg/cmd"
)

// Handlers maps handler names to Go functions.
type Handlers map[string]cmd.RunFunc

type document struct {
	cmd.Definition `yaml:",inline"`
	Handler        string `json:"handler,omitempty" yaml:"handler,omitempty"`
}

// Extensions lists the file types Load reads.
var Extensions = []string{".yaml", ".yml", ".json", ".jsonc"}

// Load reads every definition file under dir in lexical path order. Files
// that fail to parse or bind, or that reuse a name an earlier file already
// defined, are reported as *cmd.LoadError and skipped.
func Load(dir string, handlers Handlers) ([]*cmd.Command, []error) {
	if dir == "" {
		return nil, nil
	}

	paths, err := findFiles(dir)
	if err != nil {
		return nil, []error{&cmd.LoadError{Source: dir, Err: err}}
	}

	var (
		commands []*cmd.Command
		errs     []error
		seen     = make(map[string]string)
	)
	for _, path := range paths {
		c, err := LoadFile(path, handlers)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if first, dup := seen[c.Name]; dup {
			errs = append(errs, &cmd.LoadError{
				Source: path,
				Name:   c.Name,
				Err:    fmt.Errorf("%w (first defined in %s)", cmd.ErrDuplicate, first),
			})
			continue
		}
		seen[c.Name] = path
		commands = append(commands, c)
	}
	return commands, errs
}

// LoadFile reads and binds a single definition file.
func LoadFile(path string, handlers Handlers) (*cmd.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &cmd.LoadError{Source: path, Err: err}
	}

	doc, err := parse(filepath.Ext(path), data)
	if err != nil {
		return nil, &cmd.LoadError{Source: path, Err: err}
	}

	c, err := bind(doc, handlers)
	if err != nil {
		return nil, &cmd.LoadError{Source: path, Name: doc.Name, Err: err}
	}
	return c, nil
}

// parse decodes a definition document; ext selects the format.
func parse(ext string, data []byte) (*document, error) {
	var doc document
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	return &doc, nil
}

func bind(doc *document, handlers Handlers) (*cmd.Command, error) {
	c := &cmd.Command{Definition: doc.Definition}

	ref := doc.Handler
	if ref == "" {
		ref = doc.Name
	}
	if run, ok := handlers[ref]; ok {
		c.Run = run
	} else if !doc.Deleted {
		return nil, fmt.Errorf("no handler %q registered", ref)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func findFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		for _, want := range Extensions {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	return files, err
}
