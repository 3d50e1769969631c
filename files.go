/*
 * files.go, part of goxyz.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as published by
 * the Free Software Foundation, either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package xyz

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const flateLevel int = 9

//Files with these suffixes are transparently (de)compressed on read/write.
//Anything else is handled as plain text.

//This will cause additional indirections but I suppose it won't matter, as
//each call will take enough time to make those delays irrelevant.
//Also, why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type stdql struct {
	closeql func()
	*zstd.Decoder
}

//Close closes the object. It can not be used after this call.
func (s stdql) Close() error {
	s.closeql()
	return nil
}

//Zreader is a handle for reading a possibly-compressed text file.
type Zreader struct {
	f *os.File
	z io.ReadCloser //nil if the file is plain text
	*bufio.Reader
}

//Close closes the handle, including the decompressor, if any.
func (r *Zreader) Close() error {
	if r.z != nil {
		r.z.Close()
	}
	return r.f.Close()
}

//Zopen opens the named file for reading, transparently decompressing it
//depending on the filename suffix.
func Zopen(name string) (*Zreader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	r := &Zreader{f: f}
	zstdreader := func(a io.Reader) (io.ReadCloser, error) {
		d, err := zstd.NewReader(a)
		if err != nil {
			return nil, err
		}
		return &stdql{d.Close, d}, nil
	}
	gzipreader := func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	flatereader := func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		AnyNewReader = gzipreader
	case ".zst", ".zstd":
		AnyNewReader = zstdreader
	case ".flate":
		AnyNewReader = flatereader
	default:
		AnyNewReader = nil
	}
	if AnyNewReader == nil {
		r.Reader = bufio.NewReader(f)
		return r, nil
	}
	r.z, err = AnyNewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	r.Reader = bufio.NewReader(r.z)
	return r, nil
}

//Zwriter is a handle for writing a possibly-compressed text file.
type Zwriter struct {
	f *os.File
	z io.WriteCloser //nil if no compression is requested.
}

func (w *Zwriter) Write(p []byte) (int, error) {
	if w.z != nil {
		return w.z.Write(p)
	}
	return w.f.Write(p)
}

//Close closes the handle, flushing the compressor, if any.
func (w *Zwriter) Close() error {
	if w.z != nil {
		if err := w.z.Close(); err != nil {
			w.f.Close()
			return err
		}
	}
	return w.f.Close()
}

//Zcreate creates the named file for writing (truncating any previous
//content), transparently compressing depending on the filename suffix.
func Zcreate(name string) (*Zwriter, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	w := &Zwriter{f: f}
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, gzip.BestCompression) }
	flatewriter := func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, flateLevel) }
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		AnyNewWriter = gzipwriter
	case ".zst", ".zstd":
		AnyNewWriter = zstdwriter
	case ".flate":
		AnyNewWriter = flatewriter
	default:
		AnyNewWriter = nil
	}
	if AnyNewWriter == nil {
		return w, nil
	}
	w.z, err = AnyNewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

//readAllFile returns the full text content of the named, possibly
//compressed, file.
func readAllFile(name string) (string, error) {
	r, err := Zopen(name)
	if err != nil {
		return "", err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

//writeAllFile writes contents to the named file, overwriting any previous
//content, compressing as indicated by the filename suffix.
func writeAllFile(name, contents string) error {
	w, err := Zcreate(name)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(contents)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
