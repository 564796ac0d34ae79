// Package shared holds helpers used by more than one package.
//
// testutil carries the test-only pieces: a capturing slog handler for
// asserting on structured log output and builders for in-memory workbooks
// fed to the decoders and the HTTP upload path.
//
// Nothing here may import a domain package.
package shared
