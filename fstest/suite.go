// Package fstest provides a conformance suite for core.FS providers.
//
// Providers call TestSuite (or TestSuiteWithConfig) from their own tests:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return myprovider.New()
//	    })
//	}
//
// The suite checks interface contracts only. FSTestConfig describes the
// documented behavioural differences of object-store providers so the same
// tests can run against them.
package fstest

import (
	"slices"
	"testing"

	"github.com/jmgilman/go/fsutil/core"
)

// FSTestConfig configures the suite to match a provider's behaviour.
type FSTestConfig struct {
	// VirtualDirectories indicates directories are implicit key prefixes
	// that cannot be stat'd on their own.
	VirtualDirectories bool

	// IdempotentDelete indicates Remove succeeds on missing entries.
	IdempotentDelete bool

	// SkipTests lists "Group/Subtest" names to skip.
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like filesystems (local, memory).
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// S3TestConfig returns configuration for S3-like filesystems (MinIO, S3).
func S3TestConfig() FSTestConfig {
	return FSTestConfig{
		VirtualDirectories: true,
		IdempotentDelete:   true,
	}
}

// TestSuite runs every conformance group with POSIXTestConfig.
// newFS must return a fresh, empty filesystem on each call.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs every conformance group with the given config.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FS, config FSTestConfig) {
	groups := []struct {
		name string
		run  func(*testing.T, core.FS, FSTestConfig)
	}{
		{"ReadFS", TestReadFSWithConfig},
		{"WriteFS", TestWriteFSWithConfig},
		{"ManageFS", TestManageFSWithConfig},
		{"Pather", TestPatherWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.skip(g.name) {
				t.Skip("Skipped by provider configuration")
			}
			g.run(t, newFS(), config)
		})
	}
}

// subtests runs each named case unless the config skips "group/name".
func (c FSTestConfig) subtests(t *testing.T, group string, cases []subtest) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if c.skip(group + "/" + tc.name) {
				t.Skip("Skipped by provider configuration")
			}
			tc.run(t)
		})
	}
}

func (c FSTestConfig) skip(name string) bool {
	return slices.Contains(c.SkipTests, name)
}

type subtest struct {
	name string
	run  func(t *testing.T)
}
