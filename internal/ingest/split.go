package ingest

import (
	"bufio"
	"io"
	"strings"
)

// Delimiter is the line that opens and closes the front matter block.
const Delimiter = "+++"

const maxLineSize = 1 << 20

// Blocks is a content file partitioned at its first two delimiter lines.
type Blocks struct {
	Metadata string
	Body     string
	// Delimiters counts the boundary lines consumed, at most 2. Anything
	// lower means the file was malformed.
	Delimiters int
}

type splitter struct {
	count      int
	meta, body strings.Builder
	metaLines  int
	bodyLines  int
}

func (s *splitter) line(l string) {
	if l == Delimiter && s.count < 2 {
		s.count++
		return
	}
	// delimiters past the second are ordinary body text
	if s.count < 2 {
		appendLine(&s.meta, &s.metaLines, l)
	} else {
		appendLine(&s.body, &s.bodyLines, l)
	}
}

func appendLine(b *strings.Builder, n *int, l string) {
	if *n > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(l)
	*n++
}

func (s *splitter) blocks() Blocks {
	return Blocks{
		Metadata:   s.meta.String(),
		Body:       s.body.String(),
		Delimiters: s.count,
	}
}

// SplitLines partitions lines into a metadata block and a body block.
func SplitLines(lines []string) Blocks {
	var s splitter
	for _, l := range lines {
		s.line(l)
	}
	return s.blocks()
}

// Split reads r line by line and partitions it like SplitLines.
// Line endings are normalized to "\n".
func Split(r io.Reader) (Blocks, error) {
	var s splitter
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		s.line(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Blocks{}, err
	}
	return s.blocks(), nil
}

// Join reassembles a well-formed document from its two blocks.
func Join(metadata, body string) string {
	var b strings.Builder
	b.Grow(len(metadata) + len(body) + 2*len(Delimiter) + 3)
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	if metadata != "" {
		b.WriteString(metadata)
		b.WriteByte('\n')
	}
	b.WriteString(Delimiter)
	if body != "" {
		b.WriteByte('\n')
		b.WriteString(body)
	}
	return b.String()
}
