// Package filestore provides per-account file storage for the banking
// service's upload and download operations.
//
// The package focuses on:
//   - A small interface (IFileStore) so callers never depend on the
//     on-disk layout
//   - Strict file name validation to keep every account inside its own
//     directory
//   - Atomic replacement so a concurrent download never observes a
//     half-written upload
//
// Key Components:
//
//   - IFileStore Interface: Save and Load operations, namespaced by
//     account ID.
//
//   - Error System: A structured error reporting mechanism using typed
//     error codes (invalid name, not found, internal error) and
//     descriptive messages.
//
//   - Disk implementation: Files live under <root>/<accountID>/<name>.
//     Uploads are written to a temp file in the target directory and
//     renamed into place, which makes replacement atomic on POSIX
//     filesystems. File names must be plain names; anything containing a
//     path separator or dot segment is rejected before touching the disk.
package filestore
