// Package schemafile reads schema documents from YAML files.
//
// A schema file holds a YAML sequence of documents. Files are located either
// by a manifest, a plain text file listing one schema file per line relative
// to the manifest, or by scanning a directory for *.yml and *.yaml files.
// Blank manifest lines and lines starting with '#' are skipped.
//
// Every decoded document is checked against an embedded CUE schema before it
// is handed to the compiler, so malformed input is reported with the file
// and the offending path rather than surfacing as a compile error.
package schemafile
