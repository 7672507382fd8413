package scene

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/freehand/pkg/errors"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidScene, "cannot infer scene format from %q", name)
}

// FormatFromContentType maps an HTTP Content-Type to a format. An empty
// content type is treated as JSON.
func FormatFromContentType(ct string) (Format, error) {
	if ct == "" {
		return FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnsupported, err, "parse content type")
	}
	switch mt {
	case "application/json":
		return FormatJSON, nil
	case "application/toml", "text/toml":
		return FormatTOML, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported scene content type %q", mt)
}

// Load reads, decodes and validates the scene file at path.
func Load(path string) (*Scene, error) {
	if err := errors.ValidateSceneFilename(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "scene file %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Parse(data, format)
}

// Read decodes and validates a scene from r.
func Read(r io.Reader, format Format) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "read scene: %v", err)
	}
	return Parse(data, format)
}

// Parse decodes and validates a scene. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Scene, error) {
	var sc Scene
	if err := decode(data, format, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func decode(data []byte, format Format, sc *Scene) error {
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), sc)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidScene, "decode toml: %v", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidScene, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(sc); err != nil && err != io.EOF {
			return errors.New(errors.ErrCodeInvalidScene, "decode yaml: %v", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(sc); err != nil {
			return errors.New(errors.ErrCodeInvalidScene, "decode json: %v", err)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported scene format %q", format)
	}
	return nil
}
