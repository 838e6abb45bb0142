package binding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/rdf"
)

// MaxTableSize bounds the size of a decoded table document.
const MaxTableSize = 64 << 20

// Format is the encoding of a table document.
type Format string

const (
	// FormatJSON is either the columns/rows layout or SPARQL 1.1 Query
	// Results JSON.
	FormatJSON Format = "json"
	// FormatYAML is the columns/rows layout written as YAML.
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".srj":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.WrapInvalid(
			fmt.Errorf("%w: unsupported table extension %q", errors.ErrUnsupported, filepath.Ext(path)),
			"binding", "FormatFromPath", "format detection")
	}
}

// Table is a decoded result table. Every row holds every column; cells
// without a value are null.
type Table struct {
	Columns []string
	Rows    []MapRow
}

// rawTable is the columns/rows layout:
//
//	columns: ["?A", "?B"]
//	rows:
//	  - {"?A": "5.1^^http://www.w3.org/2001/XMLSchema#double", "?B": null}
//
// When columns is omitted the union of the row keys is used.
type rawTable struct {
	Columns []string         `json:"columns" yaml:"columns"`
	Rows    []map[string]any `json:"rows" yaml:"rows"`
}

// sparqlResults is the SPARQL 1.1 Query Results JSON layout.
type sparqlResults struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]sparqlTerm `json:"bindings"`
	} `json:"results"`
}

type sparqlTerm struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Lang      string `json:"xml:lang"`
	Direction string `json:"its:dir"`
	Datatype  string `json:"datatype"`
}

// LoadTable reads a table file, picking the format from its extension.
func LoadTable(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "binding", "LoadTable", "open table file")
	}
	defer f.Close()
	return DecodeTable(f, format)
}

// DecodeTable reads a table document.
func DecodeTable(r io.Reader, format Format) (*Table, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxTableSize+1))
	if err != nil {
		return nil, errors.WrapInvalid(err, "binding", "DecodeTable", "read table")
	}
	if len(data) > MaxTableSize {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: table exceeds %d bytes", errors.ErrInvalidData, MaxTableSize),
			"binding", "DecodeTable", "size check")
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		var raw rawTable
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.WrapInvalid(err, "binding", "DecodeTable", "YAML decode")
		}
		return raw.build()
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: unknown table format %q", errors.ErrUnsupported, format),
			"binding", "DecodeTable", "format selection")
	}
}

func decodeJSON(data []byte) (*Table, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.WrapInvalid(err, "binding", "DecodeTable", "JSON decode")
	}

	if _, ok := probe["head"]; ok {
		var results sparqlResults
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, errors.WrapInvalid(err, "binding", "DecodeTable", "SPARQL results decode")
		}
		return results.build()
	}

	var raw rawTable
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.WrapInvalid(err, "binding", "DecodeTable", "JSON decode")
	}
	return raw.build()
}

func (raw rawTable) build() (*Table, error) {
	columns := raw.Columns
	if len(columns) == 0 {
		seen := make(map[string]bool)
		for _, row := range raw.Rows {
			for name := range row {
				if n := NormalizeVariable(name); !seen[n] {
					seen[n] = true
					columns = append(columns, n)
				}
			}
		}
		sort.Strings(columns)
	}

	declared := make(map[string]bool, len(columns))
	normalized := make([]string, len(columns))
	for i, c := range columns {
		normalized[i] = NormalizeVariable(c)
		declared[normalized[i]] = true
	}

	table := &Table{Columns: normalized, Rows: make([]MapRow, 0, len(raw.Rows))}
	for i, cells := range raw.Rows {
		row := make(MapRow, len(normalized))
		for _, c := range normalized {
			row.SetNull(c)
		}
		for name, cell := range cells {
			n := NormalizeVariable(name)
			if !declared[n] {
				return nil, errors.WrapInvalid(
					fmt.Errorf("%w: row %d binds undeclared variable %s", errors.ErrInvalidData, i, n),
					"binding", "DecodeTable", "column check")
			}
			value, isNull, err := cellText(cell)
			if err != nil {
				return nil, errors.WrapInvalid(
					fmt.Errorf("%w: row %d variable %s: %v", errors.ErrInvalidData, i, n, err),
					"binding", "DecodeTable", "cell decode")
			}
			if !isNull {
				row.Set(n, value)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// cellText converts a decoded scalar to the serialized term text. Numbers
// and booleans keep their source spelling as plain literal text.
func cellText(cell any) (string, bool, error) {
	switch v := cell.(type) {
	case nil:
		return "", true, nil
	case string:
		return v, false, nil
	case json.Number:
		return v.String(), false, nil
	case bool:
		return strconv.FormatBool(v), false, nil
	case int:
		return strconv.Itoa(v), false, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), false, nil
	default:
		return "", false, fmt.Errorf("unsupported cell type %T", cell)
	}
}

func (res sparqlResults) build() (*Table, error) {
	table := &Table{Rows: make([]MapRow, 0, len(res.Results.Bindings))}
	for _, v := range res.Head.Vars {
		table.Columns = append(table.Columns, NormalizeVariable(v))
	}

	for i, solution := range res.Results.Bindings {
		row := make(MapRow, len(table.Columns))
		for _, c := range table.Columns {
			row.SetNull(c)
		}
		for name, term := range solution {
			text, err := term.serialize()
			if err != nil {
				return nil, errors.WrapInvalid(
					fmt.Errorf("%w: solution %d variable %s: %v", errors.ErrInvalidData, i, name, err),
					"binding", "DecodeTable", "term decode")
			}
			row.Set(name, text)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func (t sparqlTerm) serialize() (string, error) {
	switch t.Type {
	case "uri":
		return rdf.NewResource(t.Value).String(), nil
	case "bnode":
		return rdf.NewBlankNode(t.Value).String(), nil
	case "literal", "typed-literal":
		switch {
		case t.Lang != "":
			dir, _ := rdf.ParseDirection(t.Direction)
			return rdf.NewDirLangLiteral(t.Value, t.Lang, dir).String(), nil
		case t.Datatype != "":
			return rdf.NewTypedLiteral(t.Value, t.Datatype).String(), nil
		default:
			return rdf.NewPlainLiteral(t.Value).String(), nil
		}
	default:
		return "", fmt.Errorf("unknown term type %q", t.Type)
	}
}
