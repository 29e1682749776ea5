// Package catalog loads the reference catalog from the YAML definitions
// embedded in the binary, optionally overridden by files on disk.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/giygas/ceassist-api/catalog/entities"
	"github.com/giygas/ceassist-api/interfaces"
	"github.com/giygas/ceassist-api/logging"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var definitions embed.FS

// Definition files, in load order
const (
	ProductsFile      = "products.yaml"
	DevicesFile       = "devices.yaml"
	ReimbursementFile = "reimbursement.yaml"
	CartGuideFile     = "cart_guide.yaml"
)

var definitionFiles = []string{ProductsFile, DevicesFile, ReimbursementFile, CartGuideFile}

// Encoding of the override files
type Encoding string

const (
	UTF8     Encoding = "utf-8"
	ShiftJIS Encoding = "shift_jis"
)

// ErrUnknownEncoding is returned for an encoding name that is not supported
var ErrUnknownEncoding = errors.New("unknown catalog encoding")

// ParseEncoding normalizes an encoding name. An empty name means UTF-8.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "shift_jis", "shift-jis", "sjis", "cp932":
		return ShiftJIS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// Compile-time check to ensure Loader implements CatalogLoader
var _ interfaces.CatalogLoader = (*Loader)(nil)

// Loader reads the catalog definitions
type Loader struct {
	dir      string
	encoding Encoding
}

// NewLoader creates a loader. When dir is empty only the embedded
// definitions are used; otherwise any definition file present in dir
// replaces its embedded counterpart and is decoded with encoding.
func NewLoader(dir string, encoding Encoding) *Loader {
	if encoding == "" {
		encoding = UTF8
	}
	return &Loader{dir: dir, encoding: encoding}
}

// Load reads every definition file and assembles the catalog
func (l *Loader) Load() (*entities.Catalog, error) {
	catalog := &entities.Catalog{}

	for _, name := range definitionFiles {
		raw, source, err := l.read(name)
		if err != nil {
			return nil, err
		}

		var doc entities.Catalog
		if err := decodeStrict(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s (%s): %w", name, source, err)
		}

		switch name {
		case ProductsFile:
			catalog.Products = doc.Products
		case DevicesFile:
			catalog.Devices = doc.Devices
		case ReimbursementFile:
			catalog.Reimbursement = doc.Reimbursement
		case CartGuideFile:
			catalog.CartGuide = doc.CartGuide
		}

		logging.Debug("Catalog definition loaded", "file", name, "source", source)
	}

	logging.Info("Catalog loaded",
		"products", len(catalog.Products),
		"devices", len(catalog.Devices),
		"reimbursement", len(catalog.Reimbursement),
	)

	return catalog, nil
}

// read returns the UTF-8 contents of a definition file and where it came from
func (l *Loader) read(name string) ([]byte, string, error) {
	if l.dir != "" {
		path := filepath.Join(filepath.Clean(l.dir), name)
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			decoded, err := decode(raw, l.encoding)
			if err != nil {
				return nil, "", fmt.Errorf("failed to decode %s as %s: %w", path, l.encoding, err)
			}
			return decoded, path, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	raw, err := definitions.ReadFile("definitions/" + name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	return raw, "embedded", nil
}

func decode(raw []byte, encoding Encoding) ([]byte, error) {
	switch encoding {
	case UTF8:
		return raw, nil
	case ShiftJIS:
		return io.ReadAll(transform.NewReader(bytes.NewReader(raw), japanese.ShiftJIS.NewDecoder()))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}

// decodeStrict rejects unknown keys so a misspelled field fails loudly
func decodeStrict(raw []byte, out *entities.Catalog) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
