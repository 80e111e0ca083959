// Package toolchain runs latexmk to typeset generated .tex files with
// xelatex. The runner is an interface so tests never spawn TeX.
package toolchain
