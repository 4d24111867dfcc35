package permissions

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Function describes one gated screen/endpoint family.
type Function struct {
	Code    string `yaml:"code"`
	Label   string `yaml:"label"`
	Actions string `yaml:"actions"`
}

// Catalog is the registry of known function codes, loaded from YAML so
// operations can add screens without a rebuild.
type Catalog struct {
	byCode map[string]Function
}

func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read function catalog: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var doc struct {
		Functions []Function `yaml:"functions"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse function catalog: %w", err)
	}
	byCode := make(map[string]Function, len(doc.Functions))
	for _, fn := range doc.Functions {
		code := strings.ToUpper(strings.TrimSpace(fn.Code))
		if code == "" {
			return nil, fmt.Errorf("function catalog entry with empty code")
		}
		if _, dup := byCode[code]; dup {
			return nil, fmt.Errorf("duplicate function code %q in catalog", code)
		}
		fn.Code = code
		byCode[code] = fn
	}
	return &Catalog{byCode: byCode}, nil
}

func (c *Catalog) Get(code string) (Function, bool) {
	fn, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return fn, ok
}

func (c *Catalog) Functions() []Function {
	out := make([]Function, 0, len(c.byCode))
	for _, fn := range c.byCode {
		out = append(out, fn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
