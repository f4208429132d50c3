// SPDX-License-Identifier: MPL-2.0

package source

import (
	"io/fs"
	"os"
)

type (
	// FileSystem is the read-only filesystem collaborator of the Resolver.
	FileSystem interface {
		Stat(name string) (fs.FileInfo, error)
		ReadFile(name string) ([]byte, error)
	}

	// OSFileSystem reads from the host filesystem.
	OSFileSystem struct{}
)

// Stat implements FileSystem.
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// ReadFile implements FileSystem.
func (OSFileSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
