package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Subject is one entry of the subject catalog.
type Subject struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Catalog is the read-only reference data shown alongside tasks.
type Catalog struct {
	Institution     string    `yaml:"institution"`
	Subjects        []Subject `yaml:"subjects"`
	WelcomeMessages []string  `yaml:"welcome_messages"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Institution: "INACAP",
		Subjects: []Subject{
			{Code: "integracion", Name: "Integración de Proyecto"},
			{Code: "bd", Name: "Base de Datos"},
			{Code: "movil", Name: "Desarrollo Móvil"},
			{Code: "seguridad", Name: "Seguridad de la Información"},
			{Code: "redes", Name: "Redes de Computadores"},
			{Code: "algoritmos", Name: "Algoritmos y Estructuras"},
		},
		WelcomeMessages: []string{
			"¡Bienvenido a TaskU INACAP!",
			"¡Hola estudiante INACAP!",
			"¡Organiza tu éxito académico!",
			"¡Tu productividad académica empieza aquí!",
		},
	}
}

// LoadCatalog reads a catalog from a YAML file. An empty path returns the
// default catalog; sections missing from the file keep their defaults.
func LoadCatalog(path string) (*Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var fromFile Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fromFile); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	if fromFile.Institution != "" {
		catalog.Institution = fromFile.Institution
	}
	if len(fromFile.Subjects) > 0 {
		catalog.Subjects = fromFile.Subjects
	}
	if len(fromFile.WelcomeMessages) > 0 {
		catalog.WelcomeMessages = fromFile.WelcomeMessages
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Validate checks that subject codes are present and unique.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Subjects))
	for i, s := range c.Subjects {
		code := strings.TrimSpace(s.Code)
		if code == "" {
			return &ConfigError{Field: fmt.Sprintf("subjects[%d].code", i), Message: "subject code cannot be empty"}
		}
		if seen[code] {
			return &ConfigError{Field: fmt.Sprintf("subjects[%d].code", i), Message: "duplicate subject code " + code}
		}
		seen[code] = true
	}
	return nil
}

// SubjectName returns the display name for code, or code itself when the
// catalog does not know it.
func (c *Catalog) SubjectName(code string) string {
	for _, s := range c.Subjects {
		if s.Code == code {
			return s.Name
		}
	}
	return code
}

// HasSubject reports whether code is a catalog subject.
func (c *Catalog) HasSubject(code string) bool {
	for _, s := range c.Subjects {
		if s.Code == code {
			return true
		}
	}
	return false
}

// SubjectCodes returns the catalog codes in alphabetical order.
func (c *Catalog) SubjectCodes() []string {
	codes := make([]string, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		codes = append(codes, s.Code)
	}
	sort.Strings(codes)
	return codes
}
