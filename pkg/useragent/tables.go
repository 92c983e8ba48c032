package useragent

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

type tablesFile struct {
	WindowsVersions map[string]string `yaml:"windows_versions"`
	Brands          []brandEntry      `yaml:"brands"`
}

type brandEntry struct {
	Name      string            `yaml:"name"`
	Pattern   string            `yaml:"pattern"`
	Exclude   string            `yaml:"exclude"`
	Models    []modelEntry      `yaml:"models"`
	Codenames map[string]string `yaml:"codenames"`
}

type modelEntry struct {
	Pattern string `yaml:"pattern"`
	Upper   bool   `yaml:"upper"`
}

// brand is the compiled form of a brandEntry.
type brand struct {
	name      string
	pattern   *regexp.Regexp
	exclude   *regexp.Regexp
	models    []modelPattern
	codenames map[string]string
}

type modelPattern struct {
	re    *regexp.Regexp
	upper bool
}

type lookupTables struct {
	windowsVersions map[string]string
	brands          []brand
}

// tables is populated once at package load. A malformed embedded file is a
// programming error and panics.
var tables = mustLoadTables(tablesYAML)

func mustLoadTables(data []byte) lookupTables {
	t, err := loadTables(data)
	if err != nil {
		panic(err)
	}
	return t
}

func loadTables(data []byte) (lookupTables, error) {
	var raw tablesFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return lookupTables{}, fmt.Errorf("useragent: decode tables: %w", err)
	}

	out := lookupTables{
		windowsVersions: raw.WindowsVersions,
		brands:          make([]brand, 0, len(raw.Brands)),
	}
	for _, b := range raw.Brands {
		re, err := regexp.Compile(b.Pattern)
		if err != nil {
			return lookupTables{}, fmt.Errorf("useragent: brand %q: %w", b.Name, err)
		}
		compiled := brand{name: b.Name, pattern: re, codenames: make(map[string]string, len(b.Codenames))}
		if b.Exclude != "" {
			if compiled.exclude, err = regexp.Compile(b.Exclude); err != nil {
				return lookupTables{}, fmt.Errorf("useragent: brand %q exclude: %w", b.Name, err)
			}
		}
		for _, m := range b.Models {
			mre, err := regexp.Compile(m.Pattern)
			if err != nil {
				return lookupTables{}, fmt.Errorf("useragent: brand %q model: %w", b.Name, err)
			}
			compiled.models = append(compiled.models, modelPattern{re: mre, upper: m.Upper})
		}
		for code, name := range b.Codenames {
			compiled.codenames[strings.ToLower(code)] = name
		}
		out.brands = append(out.brands, compiled)
	}
	return out, nil
}

// windowsVersion maps an NT token to its marketing name, passing unknown
// tokens through.
func (t lookupTables) windowsVersion(nt string) string {
	if name, ok := t.windowsVersions[nt]; ok {
		return name
	}
	return nt
}

// brandOf returns the first brand whose pattern matches the lower-cased
// user agent, or whose codename table knows token. token is the model token
// of the Android section and may be empty.
func (t lookupTables) brandOf(lower, token string) (brand, bool) {
	for _, b := range t.brands {
		if b.matches(lower) {
			return b, true
		}
		if _, ok := b.lookupCodename(token); ok {
			return b, true
		}
	}
	return brand{}, false
}

func (b brand) matches(lower string) bool {
	if !b.pattern.MatchString(lower) {
		return false
	}
	return b.exclude == nil || !b.exclude.MatchString(lower)
}

func (b brand) lookupCodename(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	name, ok := b.codenames[strings.ToLower(token)]
	return name, ok
}

// model runs the brand's capture patterns and then its codename table.
func (b brand) model(ua, token string) (string, bool) {
	for _, m := range b.models {
		match := m.re.FindStringSubmatch(ua)
		if len(match) < 2 {
			continue
		}
		model := strings.TrimSpace(match[1])
		if model == "" {
			continue
		}
		if m.upper {
			model = strings.ToUpper(model)
		}
		return model, true
	}
	return b.lookupCodename(token)
}
