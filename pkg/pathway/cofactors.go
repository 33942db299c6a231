package pathway

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/pathdraw/pkg/errors"
)

//go:embed cofactors.json
var defaultCofactorsJSON []byte

// DefaultNamespace is the cross-reference namespace of the embedded table.
const DefaultNamespace = "metanetx"

// CofactorTable is a read-only set of cross-reference identifiers recognised
// as ubiquitous cofactors (water, ATP, NAD, ...), keyed by namespace.
//
// A nil *CofactorTable is valid and matches nothing.
type CofactorTable struct {
	ids map[string]map[string]struct{}
}

// NewCofactorTable builds a table from namespace -> identifiers.
// Namespaces must pass [perrors.ValidateNamespace].
func NewCofactorTable(entries map[string][]string) (*CofactorTable, error) {
	t := &CofactorTable{ids: make(map[string]map[string]struct{}, len(entries))}
	for ns, ids := range entries {
		if err := perrors.ValidateNamespace(ns); err != nil {
			return nil, err
		}
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id != "" {
				set[id] = struct{}{}
			}
		}
		t.ids[ns] = set
	}
	return t, nil
}

// Contains reports whether id is a cofactor in namespace ns.
func (t *CofactorTable) Contains(ns, id string) bool {
	if t == nil {
		return false
	}
	_, ok := t.ids[ns][id]
	return ok
}

// Matches reports whether any identifier in refs is a cofactor.
func (t *CofactorTable) Matches(refs CrossRefs) bool {
	if t == nil {
		return false
	}
	for _, ns := range refs.namespaces() {
		for _, id := range refs[ns] {
			if t.Contains(ns, id) {
				return true
			}
		}
	}
	return false
}

// IsCofactor reports whether the node's cross-references intersect the table.
func (t *CofactorTable) IsCofactor(n Node) bool { return t.Matches(n.CrossRefs) }

// Len returns the number of identifiers across all namespaces.
func (t *CofactorTable) Len() int {
	if t == nil {
		return 0
	}
	total := 0
	for _, set := range t.ids {
		total += len(set)
	}
	return total
}

// Namespaces returns the table's namespaces in sorted order.
func (t *CofactorTable) Namespaces() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.ids))
}

// =============================================================================
// Loading
// =============================================================================

// ReadCofactorsJSON decodes a table of the form
//
//	{"metanetx": ["MNXM2", "MNXM3"]}
func ReadCofactorsJSON(r io.Reader) (*CofactorTable, error) {
	var entries map[string][]string
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode cofactor table")
	}
	return NewCofactorTable(entries)
}

// ReadCofactorsTOML decodes a table of the form
//
//	metanetx = ["MNXM2", "MNXM3"]
func ReadCofactorsTOML(r io.Reader) (*CofactorTable, error) {
	var entries map[string][]string
	if _, err := toml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode cofactor table")
	}
	return NewCofactorTable(entries)
}

// LoadCofactorFile reads a cofactor table from path. Files ending in ".toml"
// are decoded as TOML, everything else as JSON.
func LoadCofactorFile(path string) (*CofactorTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ReadCofactorsTOML(f)
	}
	return ReadCofactorsJSON(f)
}

var defaultCofactors = sync.OnceValue(func() *CofactorTable {
	t, err := ReadCofactorsJSON(strings.NewReader(string(defaultCofactorsJSON)))
	if err != nil {
		panic(fmt.Sprintf("pathway: embedded cofactor table: %v", err))
	}
	return t
})

// DefaultCofactors returns the embedded MetaNetX cofactor table. It is parsed
// once on first use and shared read-only afterwards.
func DefaultCofactors() *CofactorTable { return defaultCofactors() }
