// This file reads YAML-fixture scenarios the same way sqldef's
// parser_test.go (now deleted) read its cmd/psqldef/tests*.yml files: a
// map of named cases decoded with goccy/go-yaml, each pinning one small,
// named parse outcome.
package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/hinmeru/jlang/ast"
	"github.com/hinmeru/jlang/sourcemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scenario struct {
	Source         string `yaml:"source"`
	WantAssignName string `yaml:"wantAssignName"`
}

func readScenarios(t *testing.T) map[string]scenario {
	t.Helper()
	buf, err := os.ReadFile(filepath.Join("testdata", "scenarios.yml"))
	require.NoError(t, err)

	var cases map[string]scenario
	require.NoError(t, yaml.Unmarshal(buf, &cases))
	return cases
}

func TestScenarioFixturesAssignToNamedTarget(t *testing.T) {
	for name, sc := range readScenarios(t) {
		sc := sc
		t.Run(name, func(t *testing.T) {
			m := sourcemap.NewMap()
			src := m.Register(sc.Source)
			nodes, err := Build(src)
			require.NoError(t, err)
			require.Len(t, nodes, 1)

			assign, ok := nodes[0].(ast.Assign)
			require.True(t, ok)
			assert.Equal(t, sc.WantAssignName, assign.Name)
		})
	}
}
