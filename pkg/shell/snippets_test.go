package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/envsync/pkg/shell"
	"github.com/arthur-debert/envsync/pkg/types"
)

func TestFormatExportsBash(t *testing.T) {
	exports := []types.EnvVar{
		{Name: "TZ", Value: "America/Sao_Paulo"},
		{Name: "GREETING", Value: "it's here"},
	}

	got := shell.FormatExports(exports, "bash")

	assert.Contains(t, got, "export TZ='America/Sao_Paulo'\n")
	assert.Contains(t, got, `export GREETING='it'\''s here'`)
}

func TestFormatExportsFish(t *testing.T) {
	exports := []types.EnvVar{{Name: "TZ", Value: "UTC"}}

	got := shell.FormatExports(exports, "fish")

	assert.Equal(t, "set -gx TZ 'UTC'\n", got)
}

func TestFormatExportsEmpty(t *testing.T) {
	assert.Empty(t, shell.FormatExports(nil, "bash"))
}

func TestInitSnippet(t *testing.T) {
	bash := shell.InitSnippet("bash")
	assert.Contains(t, bash, "envsync source-vars --shell bash")
	assert.Contains(t, bash, "return 0 2>/dev/null || true")

	zsh := shell.InitSnippet("zsh")
	assert.Equal(t, bash, zsh)

	fish := shell.InitSnippet("fish")
	assert.Contains(t, fish, "envsync source-vars --shell fish")
	assert.NotContains(t, fish, "export ")
}
