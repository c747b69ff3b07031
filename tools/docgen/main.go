// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

// docgen renders docs/h1bctl.md into
//   - docs/man/share/man1/h1bctl.1 via md2man
//   - docs/tldr/h1bctl.md from the Short description and Quick examples
//     sections

const command = "h1bctl"

var (
	h1Re      = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	sectionRe = regexp.MustCompile(`(?m)^##\s+(.+)$`)
)

func main() {
	root := flag.String("root", ".", "repo root")
	onlyIfChanged := flag.Bool("only-if-changed", true, "only write files if content changed")
	flag.Parse()

	if err := generate(*root, *onlyIfChanged); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// generate renders the man and tldr pages for the command doc under root.
func generate(root string, onlyIfChanged bool) error {
	inPath := filepath.Join(root, "docs", command+".md")
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}

	md := string(raw)
	title, short := extractTitleAndShortDesc(md)

	outputs := map[string][]byte{
		filepath.Join(root, "docs", "man", "share", "man1", command+".1"): md2man.Render(raw),
		filepath.Join(root, "docs", "tldr", command+".md"):                []byte(buildTLDR(title, short, extractQuickExamples(md))),
	}
	for path, data := range outputs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := writeFileIfChanged(path, data, onlyIfChanged); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return nil
}

// writeFileIfChanged leaves path alone when it already holds data, ignoring
// surrounding whitespace.
func writeFileIfChanged(path string, data []byte, onlyIfChanged bool) error {
	if onlyIfChanged {
		if old, err := os.ReadFile(path); err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(data)) {
			return nil
		}
	}
	return os.WriteFile(path, data, 0o644) //nolint:gosec
}

// section returns the body beneath the "## name" heading, up to the next
// second level heading.
func section(md, name string) string {
	locs := sectionRe.FindAllStringSubmatchIndex(md, -1)
	for i, loc := range locs {
		if !strings.EqualFold(strings.TrimSpace(md[loc[2]:loc[3]]), name) {
			continue
		}
		end := len(md)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		return md[loc[1]:end]
	}
	return ""
}

// extractTitleAndShortDesc returns the H1 and the first paragraph of the
// Short description section, falling back to the title.
func extractTitleAndShortDesc(md string) (title, short string) {
	if m := h1Re.FindStringSubmatch(md); m != nil {
		title = strings.TrimSpace(m[1])
	}

	para := strings.SplitN(strings.TrimSpace(section(md, "Short description")), "\n\n", 2)[0]
	short = strings.Join(strings.Fields(para), " ")
	if short == "" && title != "" {
		short = title + "."
	}
	return
}

type example struct {
	Desc string
	Cmd  string
}

// extractQuickExamples reads the first code block of the Quick examples
// section. A "# text" line describes the command that follows it.
func extractQuickExamples(md string) []example {
	parts := strings.SplitN(section(md, "Quick examples"), "```", 3)
	if len(parts) < 3 {
		return nil
	}

	var exs []example
	desc := ""
	for _, ln := range strings.Split(parts[1], "\n") {
		ln = strings.TrimSpace(ln)
		switch {
		case ln == "":
		case strings.HasPrefix(ln, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(ln, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: ln})
			desc = ""
		}
	}
	return exs
}

func buildTLDR(title, short string, exs []example) string {
	if short == "" {
		short = title
	}
	if short == "" {
		short = command
	}
	if len(exs) == 0 {
		exs = []example{{Desc: "Show help for the command", Cmd: command + " --help"}}
	}

	var b strings.Builder
	b.WriteString("# " + command + "\n\n")
	b.WriteString("> " + short + "\n")
	b.WriteString("> More information: https://github.com/staranto/h1bctl.\n")
	for _, ex := range exs {
		b.WriteString("\n- " + ex.Desc + ":\n\n")
		b.WriteString("`" + strings.Join(strings.Fields(ex.Cmd), " ") + "`\n")
	}
	return b.String()
}
