package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, "INACAP", catalog.Institution)
	assert.Len(t, catalog.Subjects, 6)
	assert.Len(t, catalog.WelcomeMessages, 4)
	assert.NoError(t, catalog.Validate())
}

func TestCatalog_SubjectName(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, "Base de Datos", catalog.SubjectName("bd"))
	assert.Equal(t, "Redes de Computadores", catalog.SubjectName("redes"))
	assert.Equal(t, "Taller libre", catalog.SubjectName("Taller libre"), "unknown codes fall back to themselves")
	assert.True(t, catalog.HasSubject("movil"))
	assert.False(t, catalog.HasSubject("Movil"))
}

func TestCatalog_SubjectCodes(t *testing.T) {
	assert.Equal(t,
		[]string{"algoritmos", "bd", "integracion", "movil", "redes", "seguridad"},
		DefaultCatalog().SubjectCodes())
}

func TestLoadCatalog_EmptyPath(t *testing.T) {
	catalog, err := LoadCatalog("")

	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), catalog)
}

func TestLoadCatalog_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.yaml", `
institution: Universidad Demo
subjects:
  - code: calc
    name: Cálculo I
  - code: fis
    name: Física General
`)

	catalog, err := LoadCatalog(path)

	require.NoError(t, err)
	assert.Equal(t, "Universidad Demo", catalog.Institution)
	assert.Equal(t, []string{"calc", "fis"}, catalog.SubjectCodes())
	assert.Equal(t, "Cálculo I", catalog.SubjectName("calc"))
	assert.Equal(t, DefaultCatalog().WelcomeMessages, catalog.WelcomeMessages, "missing sections keep defaults")
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"unknown field", writeFile(t, dir, "unknown.yaml", "colour: blue\n")},
		{"malformed yaml", writeFile(t, dir, "bad.yaml", "subjects: [\n")},
		{"duplicate code", writeFile(t, dir, "dup.yaml", "subjects:\n  - {code: a, name: A}\n  - {code: a, name: B}\n")},
		{"empty code", writeFile(t, dir, "empty.yaml", "subjects:\n  - {code: '', name: A}\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(tt.path)
			assert.Error(t, err)
		})
	}
}
