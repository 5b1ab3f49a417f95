package slidetools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
	"gopkg.in/yaml.v3"
)

// LoadActionFile reads an action tree from a .json, .toml, .yaml or .yml file.
// JSON and YAML files may hold a single action or a list, which becomes the children
// of an unnamed root. JSON keys match any case; TOML and YAML keys are lower camel
// case and unknown keys are an error.
func LoadActionFile(filename string) (*models.ActionItem, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filename)
		}
		return nil, err
	}

	root, err := ParseActions(data, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return root, nil
}

// ParseActions decodes an action tree. ext selects the format and includes the dot.
func ParseActions(data []byte, ext string) (*models.ActionItem, error) {
	root := &models.ActionItem{}

	switch strings.ToLower(ext) {
	case ".json":
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &root.Actions); err != nil {
				return nil, err
			}
		} else if err := json.Unmarshal(data, root); err != nil {
			return nil, err
		}
	case ".toml":
		md, err := toml.Decode(string(data), root)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: %v", ErrUnknownKey, undecoded)
		}
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		// Keys are lower camel case; unknown keys are an error.
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		var target any = root
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			target = &root.Actions
		}
		if err := decoder.Decode(target); err != nil && !errors.Is(err, io.EOF) {
			if strings.Contains(err.Error(), "not found in type") {
				return nil, fmt.Errorf("%w: %v", ErrUnknownKey, err)
			}
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	root.Link()
	return root, nil
}

// ParseProperties decodes a JSON array of {"Name", "Value"} pairs.
func ParseProperties(text string) (models.NameValueList, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var props models.NameValueList
	if err := json.Unmarshal([]byte(text), &props); err != nil {
		return nil, fmt.Errorf("invalid properties: %w", err)
	}
	return props, nil
}
