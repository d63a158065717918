package mdsim

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseError(Te *testing.T) {
	err := NewParseError("contacts.dat", 7, "bad token %q", "x")
	if s := err.Error(); s != `mdsim: file contacts.dat, line 7: bad token "x"` {
		Te.Errorf("message %s", s)
	}
	if s := NewParseError("f", 0, "empty").Error(); s != "mdsim: file f: empty" {
		Te.Errorf("message %s", s)
	}
	wrapped := fmt.Errorf("reading: %w", Decorate(Decorate(err, "ReadContacts"), "Analyze"))
	var fe FileError
	if !errors.As(wrapped, &fe) || fe.Line() != 7 || fe.FileName() != "contacts.dat" {
		Te.Errorf("errors.As on %v", wrapped)
	}
	if tr := Trace(wrapped); tr != "ReadContacts < Analyze" {
		Te.Errorf("trace %q", tr)
	}
}

func TestOtherErrors(Te *testing.T) {
	ce := &ConfigError{Key: "groups[0].cols"}
	if !strings.Contains(ce.Error(), "groups[0].cols") {
		Te.Errorf("config error %s", ce)
	}
	se := &ShapeError{What: "timesteps", Want: 5, Got: 4, Filename: "b.dat"}
	if se.Error() != "mdsim: timesteps in b.dat: got length 4, want 5" {
		Te.Errorf("shape error %s", se)
	}
	plain := errors.New("plain")
	if Decorate(plain, "x") != plain || Trace(plain) != "" {
		Te.Error("plain errors must pass untouched")
	}
}
