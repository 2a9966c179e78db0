package wikicat

import (
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a dump file, decompressing it by extension (.gz or
// .bz2).
func Open(fn string) (io.ReadCloser, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", fn)
	}

	switch {
	case strings.HasSuffix(fn, ".gz"):
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "reading gzip header of %v", fn)
		}
		return readCloser{z, []io.Closer{z, f}}, nil
	case strings.HasSuffix(fn, ".bz2"):
		return readCloser{bzip2.NewReader(f), []io.Closer{f}}, nil
	}
	return f, nil
}

type writeCloser struct {
	io.Writer
	closers []io.Closer
}

func (w writeCloser) Close() error {
	var err error
	for _, c := range w.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Create creates an output file, gzipping it if the name ends in
// .gz.  Close must be called for the data to be complete.
func Create(fn string) (io.WriteCloser, error) {
	f, err := os.Create(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %v", fn)
	}
	if strings.HasSuffix(fn, ".gz") {
		z := gzip.NewWriter(f)
		return writeCloser{z, []io.Closer{z, f}}, nil
	}
	return f, nil
}
