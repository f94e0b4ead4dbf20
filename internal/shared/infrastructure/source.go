package infrastructure

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrSourceNotFound est retournée quand un fichier d'export est absent
	ErrSourceNotFound = fmt.Errorf("source file not found: %w", fs.ErrNotExist)
	// ErrMissingColumn est retournée quand une colonne obligatoire manque dans l'en-tête
	ErrMissingColumn = errors.New("missing required column")
)

const utf8BOM = "\ufeff"

// DelimitedTable est le contenu brut d'un export délimité: un en-tête et des lignes.
// Les lignes courtes sont conservées; les cellules absentes sont lues comme manquantes.
type DelimitedTable struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ReadDelimited lit un flux délimité (en-tête obligatoire).
// Les guillemets mal formés sont tolérés et le nombre de champs peut varier.
func ReadDelimited(r io.Reader, comma rune) (*DelimitedTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file, no header", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	table := &DelimitedTable{
		Header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		table.Header[i] = name
		if _, dup := table.index[name]; !dup {
			table.index[name] = i
		}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

// ReadDelimitedFile ouvre et lit un fichier délimité
func ReadDelimitedFile(path string, comma rune) (*DelimitedTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadDelimited(f, comma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Column retourne l'index d'une colonne par son nom
func (t *DelimitedTable) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Require vérifie la présence de toutes les colonnes demandées
func (t *DelimitedTable) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// Cell retourne la valeur (sans espaces) d'une colonne et si elle est présente.
// Une cellule vide ou hors de la ligne est considérée comme manquante.
func Cell(row []string, col int) (string, bool) {
	if col < 0 || col >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[col])
	return v, v != ""
}

// ParseDelimiter convertit la configuration (";" "," "\t" "tab") en rune
func ParseDelimiter(value string) (rune, error) {
	switch value {
	case "", ";":
		return ';', nil
	case ",":
		return ',', nil
	case "\t", "tab", "\\t":
		return '\t', nil
	case "|":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported delimiter %q", value)
}
