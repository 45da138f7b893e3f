package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fosrl/posture/cmd"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const fmTemplate = `---
date: %s
title: "%s"
slug: %s
url: %s
---

`

type docOptions struct {
	Dir         string
	FrontMatter bool
	BaseURL     string
}

func main() {
	var opts docOptions
	flag.StringVar(&opts.Dir, "dir", "./docs", "Output directory for generated documentation")
	flag.BoolVar(&opts.FrontMatter, "frontmatter", false, "Add Hugo front matter to generated files")
	flag.StringVar(&opts.BaseURL, "baseurl", "/commands", "Base URL for command links (used with front matter)")
	flag.Parse()

	// Config and logger are not needed to describe commands
	rootCmd, err := cmd.RootCommand(false)
	if err != nil {
		log.Fatalf("Failed to build command tree: %v", err)
	}

	files, err := generate(rootCmd, opts)
	if err != nil {
		log.Fatalf("Failed to generate markdown docs: %v", err)
	}

	log.Printf("Generated %d documentation files in %s:", len(files), opts.Dir)
	for _, file := range files {
		log.Printf("  - %s", filepath.Base(file))
	}
}

// generate writes one markdown file per command into opts.Dir and returns
// the files written.
func generate(root *cobra.Command, opts docOptions) ([]string, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	root.DisableAutoGenTag = true

	var err error
	if opts.FrontMatter {
		err = doc.GenMarkdownTreeCustom(root, opts.Dir, frontMatter(opts.BaseURL), linkHandler(opts.BaseURL))
	} else {
		err = doc.GenMarkdownTree(root, opts.Dir)
	}
	if err != nil {
		return nil, err
	}

	return filepath.Glob(filepath.Join(opts.Dir, "*.md"))
}

func frontMatter(baseURL string) func(string) string {
	return func(filename string) string {
		name := filepath.Base(filename)
		base := strings.TrimSuffix(name, path.Ext(name))
		url := baseURL + "/" + strings.ToLower(base) + "/"
		title := strings.ReplaceAll(base, "_", " ")
		return fmt.Sprintf(fmTemplate, time.Now().Format(time.RFC3339), title, base, url)
	}
}

func linkHandler(baseURL string) func(string) string {
	return func(name string) string {
		base := strings.TrimSuffix(name, path.Ext(name))
		return baseURL + "/" + strings.ToLower(base) + "/"
	}
}
