package render

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	domainerr "ssg/internal/domain/errors"
)

const (
	TokenPostList  = "{{POST_LIST}}"
	TokenHead      = "{{HEAD}}"
	TokenContent   = "{{CONTENT}}"
	TokenTitle     = "{{TITLE}}"
	TokenSiteTitle = "{{SITE_TITLE}}"
)

// Template is a template file held as lines.
type Template struct {
	Path  string
	Lines []string
}

type Replacement struct {
	Token    string
	Fragment string
}

func LoadTemplate(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domainerr.IO(path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, domainerr.IO(path, err)
	}
	return &Template{Path: path, Lines: lines}, nil
}

// Composite trims every line and substitutes each token occurrence with its
// fragment. Fragments are inserted verbatim and never rescanned for tokens.
func (t *Template) Composite(repl ...Replacement) string {
	return Composite(t.Lines, repl...)
}

func Composite(lines []string, repl ...Replacement) string {
	pairs := make([]string, 0, 2*len(repl))
	for _, r := range repl {
		pairs = append(pairs, r.Token, r.Fragment)
	}
	rep := strings.NewReplacer(pairs...)

	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if containsToken(line, repl) {
			line = rep.Replace(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func containsToken(line string, repl []Replacement) bool {
	for _, r := range repl {
		if strings.Contains(line, r.Token) {
			return true
		}
	}
	return false
}

// WriteOutput creates or truncates path and writes data to it. A failure
// part-way through can leave a truncated file behind.
func WriteOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domainerr.IO(path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return domainerr.IO(path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return domainerr.IO(path, err)
	}
	if err := f.Close(); err != nil {
		return domainerr.IO(path, err)
	}
	return nil
}

// CompositeFile loads the template at tplPath, composites it and writes the
// result to outPath.
func CompositeFile(tplPath, outPath string, repl ...Replacement) error {
	t, err := LoadTemplate(tplPath)
	if err != nil {
		return err
	}
	return WriteOutput(outPath, []byte(t.Composite(repl...)))
}
