// Package source lee el archivo de categorías a importar (JSON o YAML).
package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/catalogo/internal/application/dto"
	"github.com/jhoicas/catalogo/internal/domain"
)

// Format formato del archivo de entrada.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath deduce el formato por extensión. Sin extensión conocida asume JSON.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFormat)
	}
}

// ReadFile abre el archivo y decodifica los registros.
func ReadFile(path, charset string) ([]dto.CategoryRecord, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	records, err := Decode(f, format, charset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Decode lee una lista de registros en el formato y charset indicados.
// charset vacío o utf-8 no transforma la entrada.
func Decode(r io.Reader, format Format, charset string) ([]dto.CategoryRecord, error) {
	enc, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	var records []dto.CategoryRecord
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decodificar JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decodificar YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, domain.ErrUnsupportedFormat)
	}
	return records, nil
}

func lookupCharset(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("charset %q: %w", charset, domain.ErrUnsupportedFormat)
	}
}
