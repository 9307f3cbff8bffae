// Package node reads and writes prosemark node files: markdown documents
// with a YAML frontmatter block.
package node

// Frontmatter holds the YAML front matter of a node file.
type Frontmatter struct {
	// ID is the node's unique identifier (UUID v7).
	ID string `yaml:"id"`
	// Title is the chapter headline.
	Title string `yaml:"title,omitempty"`
	// Slug overrides the output file name stem of the chapter.
	Slug string `yaml:"slug,omitempty"`
	// Byline names the chapter's author, optionally prefixed with "by ".
	Byline string `yaml:"byline,omitempty"`
	// Synopsis is the optional brief summary of the node's content.
	Synopsis string `yaml:"synopsis,omitempty"`
	// Created is the RFC3339 timestamp when the node was first created.
	Created string `yaml:"created,omitempty"`
	// Updated is the RFC3339 timestamp when the node was last modified.
	Updated string `yaml:"updated,omitempty"`
}
