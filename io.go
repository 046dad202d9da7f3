// FILE: io.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format tags a file source's syntax
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	// FormatAuto detects the syntax from the file content
	FormatAuto Format = "auto"
)

// yaml.v3 and toml both embed "line N" in their messages
var lineRe = regexp.MustCompile(`line (\d+)`)

// loadFile reads and decodes a file source into a Value tree whose root is a map.
// missing is set when an optional file does not exist; the tree is then empty.
func loadFile(s Source) (root Value, missing bool, err error) {
	format, err := resolveFormat(s)
	if err != nil {
		return Value{}, false, err
	}

	data, err := readFile(s.Path)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) && s.Optional {
			return Map(nil), true, nil
		}
		return Value{}, false, &ParseError{Kind: ParseUnreadable, Origin: s.Path, Format: format, Err: err}
	}

	if format == FormatAuto {
		format = detectFormatFromContent(data)
		if format == "" {
			return Value{}, false, &ParseError{Kind: ParseUnsupportedFormat, Origin: s.Path, Format: FormatAuto, Msg: "content is not valid JSON, YAML or TOML"}
		}
	}

	root, err = decodeDocument(s.Path, format, data)
	return root, false, err
}

// resolveFormat picks the explicit format tag or infers one from the extension
func resolveFormat(s Source) (Format, error) {
	switch s.Format {
	case FormatJSON, FormatYAML, FormatTOML, FormatAuto:
		return s.Format, nil
	case "":
		if f := detectFileFormat(s.Path); f != "" {
			return f, nil
		}
		return "", &ParseError{
			Kind:   ParseUnsupportedFormat,
			Origin: s.Path,
			Msg:    fmt.Sprintf("cannot infer format from extension %q", filepath.Ext(s.Path)),
		}
	default:
		return "", &ParseError{Kind: ParseUnsupportedFormat, Origin: s.Path, Format: s.Format, Msg: fmt.Sprintf("unknown format tag %q", s.Format)}
	}
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrConfigNotFound, err)
		}
		return nil, fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	return data, nil
}

// decodeDocument parses data in the given format and checks the root is a map.
// An empty or whitespace-only document is an empty map.
func decodeDocument(origin string, format Format, data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Map(nil), nil
	}

	var raw any
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // keep integers exact
		if err := decoder.Decode(&raw); err != nil {
			return Value{}, syntaxError(origin, format, data, err)
		}
		// Reject trailing content after the first document
		var extra any
		if err := decoder.Decode(&extra); err != io.EOF {
			if err == nil {
				err = errors.New("unexpected content after top-level value")
			}
			return Value{}, syntaxError(origin, format, data, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Value{}, syntaxError(origin, format, data, err)
		}
	case FormatTOML:
		// TOML documents are always tables
		table := make(map[string]any)
		if _, err := toml.Decode(string(data), &table); err != nil {
			return Value{}, syntaxError(origin, format, data, err)
		}
		raw = table
	default:
		return Value{}, &ParseError{Kind: ParseUnsupportedFormat, Origin: origin, Format: format, Msg: fmt.Sprintf("unknown format tag %q", format)}
	}

	root := ValueOf(raw)
	switch root.Kind() {
	case KindMap:
		return root, nil
	case KindNull:
		// A YAML document holding only comments or "~"
		return Map(nil), nil
	}
	return Value{}, &ParseError{Kind: ParseRootNotAMap, Origin: origin, Format: format, Msg: "document root is a " + root.Kind().String()}
}

// syntaxError converts a decoder error into a ParseError with a best-effort line number
func syntaxError(origin string, format Format, data []byte, err error) *ParseError {
	pe := &ParseError{Kind: ParseSyntax, Origin: origin, Format: format, Msg: err.Error(), Err: err}

	var jsonSyntax *json.SyntaxError
	var jsonType *json.UnmarshalTypeError
	var tomlErr toml.ParseError
	switch {
	case errors.As(err, &jsonSyntax):
		pe.Line = lineAtOffset(data, jsonSyntax.Offset)
	case errors.As(err, &jsonType):
		pe.Line = lineAtOffset(data, jsonType.Offset)
	case errors.As(err, &tomlErr):
		pe.Line = tomlErr.Position.Line
		pe.Msg = tomlErr.Message
	default:
		if m := lineRe.FindStringSubmatch(err.Error()); m != nil {
			pe.Line, _ = strconv.Atoi(m[1])
		}
	}
	pe.Msg = strings.TrimPrefix(pe.Msg, "yaml: ")
	return pe
}

// lineAtOffset returns the 1-based line containing byte offset off
func lineAtOffset(data []byte, off int64) int {
	if off > int64(len(data)) {
		off = int64(len(data))
	}
	if off < 0 {
		off = 0
	}
	return bytes.Count(data[:off], []byte{'\n'}) + 1
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) Format {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	// TOML before YAML: "key = value" lines are a valid YAML scalar document
	var tomlTest map[string]any
	if _, err := toml.Decode(string(data), &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return ""
}
