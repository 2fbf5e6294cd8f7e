// Package testutil provides shared test utilities for tapegt.
//
// # Fixtures
//
// The fixtures.go file provides sample inputs:
//
//   - Scenarios() - the canonical "X Y" inputs with their expected decisions
//   - Grid(n) - every pair in [0, n] x [0, n]
//   - UnaryTape(x, y) - the tape the input adapter builds for x and y
//
// # Environment Helpers
//
// The env.go file provides test environment setup:
//
//   - SetupTestDir(t, config) - creates a temp directory with .tapegt/config.yaml
//   - WriteTestFile(t, base, path, content) - writes a file in the test dir
//   - ReadLines(t, path) - reads a file as non-empty lines
//
// # Assertions
//
// The assertions.go file provides machine-specific assertions:
//
//   - RunToHalt(t, tape) - runs a fresh machine and requires it to halt
//   - AssertDecision(t, m, want) - checks the appended decision bit
//   - AssertInputRestored(t, input, m) - checks the tape is input + decision
//   - AssertHeadInRange(t, snap) - checks 0 <= head <= len
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    for _, sc := range testutil.Scenarios() {
//	        m := testutil.RunToHalt(t, testutil.UnaryTape(sc.X, sc.Y))
//	        testutil.AssertDecision(t, m, sc.Want)
//	    }
//	}
package testutil
