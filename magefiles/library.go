//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Library adds fellowship.txt to the local page library and lists its books.
func Library() error {
	mg.Deps(Build, Init)

	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "library", "add", "fellowship.txt"); err != nil {
		return err
	}
	return sh.RunV(bin, "library", "list")
}

// Geometry prints the display grid and whether the configured layout fits.
func Geometry() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "preview", "--geometry")
}
