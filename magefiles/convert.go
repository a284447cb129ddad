//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert transliterates every .txt file in greek/ into latin/.
func Convert() error {
	mg.Deps(Build, Init)
	fmt.Println("[convert] greek/*.txt -> latin/")
	return sh.RunV(binPath(), "convert", "--dir", "greek", "--out", "latin")
}
