package ingest

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"ssg/internal/domain/content"
	domainerr "ssg/internal/domain/errors"
	"ssg/internal/logfields"
)

type Options struct {
	SourceDir string
	Discover  DiscoverOptions
	Schema    content.Schema
	Logger    *slog.Logger
}

// ReadPost opens path, splits it and decodes its metadata. The file handle
// is released before ReadPost returns.
func ReadPost(path string, schema content.Schema) (content.Post, Blocks, error) {
	f, err := os.Open(path)
	if err != nil {
		return content.Post{}, Blocks{}, domainerr.IO(path, err)
	}
	defer f.Close()

	blocks, err := Split(f)
	if err != nil {
		return content.Post{}, Blocks{}, domainerr.IO(path, err)
	}
	meta, err := DecodeMetadata(blocks.Metadata, schema)
	if err != nil {
		return content.Post{}, blocks, domainerr.WithPath(err, path)
	}
	return content.Post{
		Source: path,
		Meta:   meta,
		Body:   blocks.Body,
	}, blocks, nil
}

// Ingest reads every content file under opt.SourceDir one at a time, in
// directory order. The first failure aborts the whole ingest.
func Ingest(ctx context.Context, opt Options) ([]content.Post, error) {
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}

	files, err := DiscoverSource(opt.SourceDir, opt.Discover)
	if err != nil {
		return nil, err
	}
	log.Debug("discovered content files", logfields.Dir(opt.SourceDir), logfields.Count(len(files)))

	out := make([]content.Post, 0, len(files))
	for _, sf := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		post, blocks, err := ReadPost(sf.Path, opt.Schema)
		if blocks.Delimiters < 2 && errors.Is(err, domainerr.ErrMetadataInvalid) {
			log.Warn("front matter delimiters missing", logfields.Path(sf.Path), slog.Int("delimiters", blocks.Delimiters))
		}
		if err != nil {
			return nil, err
		}
		log.Debug("parsed post",
			logfields.Path(sf.Path),
			logfields.Slug(post.Meta.Slug),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
		out = append(out, post)
	}
	return out, nil
}
