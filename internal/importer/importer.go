// Package importer turns bank statement exports into group expenses.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/id"
	"github.com/splitledger/splitledger/internal/model"
)

// ErrUnknownFormat is returned when no parser is registered for a format.
var ErrUnknownFormat = errors.New("unknown import format")

// StatementLine is one parsed row of a bank statement.
type StatementLine struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = money spent
	Currency    string          // empty = statement default
	Reference   string
	Type        string
}

// Parser converts a statement export into StatementLines.
type Parser interface {
	Parse(r io.Reader) ([]StatementLine, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Lookup returns the parser for format or ErrUnknownFormat.
func (r *Registry) Lookup(format string) (Parser, error) {
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownFormat, format, strings.Join(r.Formats(), ", "))
	}
	return p, nil
}

// Formats lists registered format names in sorted order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&GenericParser{})
	return r
}

// Options controls how statement lines become expenses.
type Options struct {
	Payer    string   // participant whose card or account the statement covers
	Involved []string // empty = split among everyone
	Currency string   // used when a line carries no currency
}

// ToExpenses converts money-out lines into expenses paid by opts.Payer.
// Incoming money is skipped. IDs derive from line references so importing
// the same statement twice yields the same IDs.
func ToExpenses(lines []StatementLine, opts Options) []model.Expense {
	seen := make(map[string]int)
	var out []model.Expense
	for _, l := range lines {
		if !l.Amount.IsNegative() {
			continue
		}

		ref := l.Reference
		seen[ref]++
		if n := seen[ref]; n > 1 {
			ref = fmt.Sprintf("%s#%d", ref, n)
		}

		code := l.Currency
		if code == "" {
			code = opts.Currency
		}

		out = append(out, model.Expense{
			ID:       id.FromReference(ref),
			Date:     l.Date,
			Title:    l.Description,
			Amount:   l.Amount.Abs(),
			Currency: strings.ToUpper(code),
			Payer:    opts.Payer,
			Involved: opts.Involved,
		})
	}
	return out
}

// importDir is the subdirectory for statement CSVs.
const importDir = "import"

// processedDir is the subdirectory for imported statements.
const processedDir = "import/processed"

// Scan returns CSV files in <groupDir>/import/.
func Scan(groupDir string) ([]FileInfo, error) {
	dir := filepath.Join(groupDir, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(groupDir, fileName string) error {
	src := filepath.Join(groupDir, importDir, fileName)
	dstDir := filepath.Join(groupDir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
