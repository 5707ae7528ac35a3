// Package batch converts every texture in a directory by inverting its green channel.
//
// An Inverter scans one directory (non-recursively), decodes each file whose
// extension is a recognized texture format, inverts the green channel and writes
// the result under the same name into the converted_textures subdirectory.
//
// # Processing Model
//
// Files are handled strictly one after another. Each file is decoded, transformed
// and written before the next candidate is read from the directory listing, and no
// state carries over between files.
//
// # Error Handling
//
// Only a failure to create the output directory aborts a run (ErrOutputDir). A
// file that cannot be decoded, has no green channel, or cannot be written is
// logged with its name and skipped. A completion notice is always logged once the
// last candidate has been attempted.
package batch
