package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for file names whose extension doesn't name a
// supported format.
var ErrUnknownFormat = errors.New("unknown document format")

// Format is an encoding of documents.
type Format uint8

const (
	YAML Format = iota
	TOML
	CBOR
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	case CBOR:
		return "cbor"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// FormatOf returns the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".cbor":
		return CBOR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborDec, err = cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Decode decodes a document. Unknown fields are an error in every format.
func Decode(data []byte, f Format) (*Document, error) {
	var doc Document
	var err error
	switch f {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case CBOR:
		err = cborDec.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s document: %w", f, err)
	}
	return &doc, nil
}

// Encode encodes a document.
func Encode(doc *Document, f Format) ([]byte, error) {
	var data []byte
	var err error
	switch f {
	case YAML:
		data, err = yaml.Marshal(doc)
	case TOML:
		data, err = toml.Marshal(doc)
	case CBOR:
		data, err = cborEnc.Marshal(doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s document: %w", f, err)
	}
	return data, nil
}

// Read reads a document from a file, choosing the format by the file's
// extension.
func Read(path string) (*Document, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load reads a document and builds its scene.
func Load(path string) (*Scene, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}
	s, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Write writes a document to a file, choosing the format by the file's
// extension.
func Write(path string, doc *Document) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
