package arith_test

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/brimdata/arith/compiler"
	"github.com/brimdata/arith/compiler/sfmt"
	"github.com/brimdata/arith/eqtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquations(t *testing.T) {
	t.Parallel()

	dirs, err := findEqtests()
	require.NoError(t, err)

	t.Run("boomerang", func(t *testing.T) {
		t.Parallel()
		tests, err := loadPassingEqtests(dirs)
		require.NoError(t, err)
		for name, et := range tests {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				runOneBoomerang(t, et)
			})
		}
	})

	for d := range dirs {
		t.Run(filepath.ToSlash(d), func(t *testing.T) {
			t.Parallel()
			eqtest.Run(t, d)
		})
	}
}

func findEqtests() (map[string]struct{}, error) {
	dirs := map[string]struct{}{}
	pattern := fmt.Sprintf(`.*eqtests\%c.*\.yaml$`, filepath.Separator)
	re := regexp.MustCompile(pattern)
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), "_") {
			return filepath.SkipDir
		}
		if !info.IsDir() && strings.HasSuffix(path, ".yaml") && re.MatchString(path) {
			dirs[filepath.Dir(path)] = struct{}{}
		}
		return nil
	})
	return dirs, err
}

// loadPassingEqtests returns the equation-style tests that expect an output.
func loadPassingEqtests(dirs map[string]struct{}) (map[string]*eqtest.Test, error) {
	out := map[string]*eqtest.Test{}
	for dir := range dirs {
		bundles, err := eqtest.Load(dir)
		if err != nil {
			return nil, err
		}
		for _, b := range bundles {
			if b.Test == nil || b.Test.Equation == "" || b.Test.Error != "" || b.Test.Skip != "" {
				continue
			}
			out[b.FileName] = b.Test
		}
	}
	return out, nil
}

// runOneBoomerang checks that the canonical text of an equation's operator
// tree parses back to the same lowering.
func runOneBoomerang(t *testing.T, et *eqtest.Test) {
	opts := et.Options()
	baseline, err := compiler.Parse(et.Equation, opts)
	require.NoError(t, err)

	text := sfmt.Operation(baseline.Root)
	boomerang, err := compiler.Parse(text, opts)
	require.NoError(t, err, "canonical text %q", text)
	assert.Equal(t, baseline.JSON(et.Alias), boomerang.JSON(et.Alias), "canonical text %q", text)
	assert.Equal(t, baseline.Fields, boomerang.Fields)
	assert.Equal(t, baseline.Functions, boomerang.Functions)
	assert.Equal(t, baseline.Operators, boomerang.Operators)
}
