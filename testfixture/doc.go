// Package testfixture loads small TOML-described scenes into ready-to-
// render scene values, and synthesizes checkerboard textures so a
// textured-material test doesn't need to ship a real image asset. None
// of this package is part of the render path. Only its own tests use it:
// the tests of the other packages in this module build their scenes
// from struct literals.
package testfixture
