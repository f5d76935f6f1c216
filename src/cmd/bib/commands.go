package main

import (
	"github.com/spf13/cobra"

	"bibshelf/src/cmd/bib/citecmd"
	"bibshelf/src/cmd/bib/copycmd"
	"bibshelf/src/cmd/bib/exportcmd"
	"bibshelf/src/cmd/bib/formatcmd"
	"bibshelf/src/cmd/bib/pastecmd"
	"bibshelf/src/cmd/bib/searchcmd"
	"bibshelf/src/cmd/bib/stringscmd"
	"bibshelf/src/cmd/bib/verifycmd"
)

// newCiteCmd creates the "cite" command to print formatted APA7 and in‑text citations for a key.
func newCiteCmd() *cobra.Command { return citecmd.New() }

// newCopyCmd creates the "copy" command that puts entries on the clipboards.
func newCopyCmd() *cobra.Command { return copycmd.New() }

// newPasteCmd creates the "paste" command that imports clipboard BibTeX.
func newPasteCmd() *cobra.Command { return pastecmd.New() }

func newStringsCmd() *cobra.Command { return stringscmd.New() }

func newExportCmd() *cobra.Command { return exportcmd.New() }

// newSearchCmd creates the "search" command for querying the library.
func newSearchCmd() *cobra.Command { return searchcmd.New() }

func newFormatCmd() *cobra.Command { return formatcmd.New() }

// newVerifyCmd creates the "verify" command that reports library problems.
func newVerifyCmd() *cobra.Command { return verifycmd.New() }
