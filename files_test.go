package mdsim

import (
	"compress/gzip"
	"compress/lzw"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klauspost/compress/zstd"
)

const text = "H H C\r\nE E E\n\nG I T\n"

func compress(Te *testing.T, name string, w func(io.Writer) io.WriteCloser) string {
	Te.Helper()
	f, err := os.Create(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	c := w(f)
	if _, err := io.WriteString(c, text); err != nil {
		Te.Fatal(err)
	}
	if err := c.Close(); err != nil {
		Te.Fatal(err)
	}
	return name
}

func TestReadLinesCompressed(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "plain.dat")
	if err := os.WriteFile(plain, []byte(text), 0o644); err != nil {
		Te.Fatal(err)
	}
	files := []string{
		plain,
		compress(Te, filepath.Join(dir, "a.dat.gz"), func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }),
		compress(Te, filepath.Join(dir, "a.dat.lzw"), func(w io.Writer) io.WriteCloser { return lzw.NewWriter(w, lzw.MSB, 8) }),
		compress(Te, filepath.Join(dir, "a.dat.zst"), func(w io.Writer) io.WriteCloser {
			z, err := zstd.NewWriter(w)
			if err != nil {
				Te.Fatal(err)
			}
			return z
		}),
	}
	want := []string{"H H C", "E E E", "", "G I T"}
	for _, name := range files {
		var got []string
		var nums []int
		err := ReadLines(name, func(lineno int, line string) error {
			got = append(got, line)
			nums = append(nums, lineno)
			return nil
		})
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		if !reflect.DeepEqual(got, want) || !reflect.DeepEqual(nums, []int{1, 2, 3, 4}) {
			Te.Errorf("%s: lines %q (%v), want %q", filepath.Base(name), got, nums, want)
		}
	}
}

func TestReadLinesErrors(Te *testing.T) {
	err := ReadLines(filepath.Join(Te.TempDir(), "missing.dat"), func(int, string) error { return nil })
	var fe FileError
	if !errors.As(err, &fe) || fe.FileName() == "" {
		Te.Errorf("missing file: %v", err)
	}
	dir := Te.TempDir()
	bad := filepath.Join(dir, "bad.gz")
	if err := os.WriteFile(bad, []byte("not gzip"), 0o644); err != nil {
		Te.Fatal(err)
	}
	if err := ReadLines(bad, func(int, string) error { return nil }); err == nil {
		Te.Error("bad gzip header accepted")
	}
	plain := filepath.Join(dir, "p.dat")
	if err := os.WriteFile(plain, []byte(text), 0o644); err != nil {
		Te.Fatal(err)
	}
	stop := errors.New("stop")
	calls := 0
	err = ReadLines(plain, func(int, string) error {
		calls++
		return stop
	})
	if err != stop || calls != 1 {
		Te.Errorf("callback error %v after %d calls", err, calls)
	}
}
