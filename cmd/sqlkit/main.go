// Package main provides a CLI for building SQL from query documents.
//
// The CLI supports:
//   - render: Build a query from a YAML document and print its SQL
//   - inspect: Print the accumulated sources, joins and flags of a document
//   - check: Render with the MySQL dialect and parse the result
//   - config show: Print the effective configuration
//   - version: Print version information
//
// Usage:
//
//	sqlkit [flags] <command>
//
// Documents are read from a file path, or from stdin when the path is "-".
package main

func main() {
	Execute()
}
