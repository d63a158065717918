/*
 * files.go, part of mdsim.
 *
 * Copyright 2021 The mdsim Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mdsim

import (
	"bufio"
	"compress/gzip"
	"compress/lzw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const (
	lzwLitwidth int = 8
	//STRIDE and contact records hold one token per residue, so lines can get long.
	maxLineLength = 16 * 1024 * 1024
)

//Sadly, *zstd.Decoder's Close doesn't return an error, so it is not an io.ReadCloser.
type zstdql struct {
	*zstd.Decoder
}

//Close closes the decoder. It can not be used after this call
func (z zstdql) Close() error {
	z.Decoder.Close()
	return nil
}

//compressed closes both the decompressor and the file under it.
type compressed struct {
	io.ReadCloser
	f *os.File
}

func (c compressed) Close() error {
	err := c.ReadCloser.Close()
	if err2 := c.f.Close(); err == nil {
		err = err2
	}
	return err
}

//Open opens the file name for reading. The content is decompressed on the fly
//depending on the extension: .zst (z-standard), .gz (gzip) and .lzw. Any other
//extension is read as plain text.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, NewParseError(name, 0, "can't open: %v", err)
	}
	var r io.ReadCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		d, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, NewParseError(name, 0, "can't start zstd decoder: %v", err)
		}
		r = zstdql{d}
	case ".gz":
		g, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, NewParseError(name, 0, "can't read gzip header: %v", err)
		}
		r = g
	case ".lzw":
		r = lzw.NewReader(bufio.NewReader(f), lzw.MSB, lzwLitwidth)
	default:
		return f, nil
	}
	return compressed{r, f}, nil
}

//ReadLines opens name with Open and calls f for each line of the file, with
//the 1-based line number and the line without its trailing newline.
//It stops at the first error returned by f, and returns it unchanged.
func ReadLines(name string, f func(lineno int, line string) error) error {
	r, err := Open(name)
	if err != nil {
		return Decorate(err, "ReadLines")
	}
	defer r.Close()
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineLength)
	lineno := 0
	for s.Scan() {
		lineno++
		if err := f(lineno, strings.TrimRight(s.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := s.Err(); err != nil {
		return NewParseError(name, lineno+1, "read error: %v", err)
	}
	return nil
}
