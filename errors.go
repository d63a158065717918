/*
 * errors.go, part of mdsim.
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
	"errors"
	"fmt"
	"strings"
)

//ParseError is returned when an input file can't be read or a record in it is
//malformed. It fullfills Error and FileError.
type ParseError struct {
	message  string
	filename string
	line     int
	deco     []string
}

//NewParseError returns a ParseError for the given file and line. line should be 0 if the
//error is not related to a particular line of the file.
func NewParseError(filename string, line int, format string, args ...interface{}) *ParseError {
	return &ParseError{message: fmt.Sprintf(format, args...), filename: filename, line: line}
}

func (E *ParseError) Error() string {
	if E.line > 0 {
		return fmt.Sprintf("mdsim: file %s, line %d: %s", E.filename, E.line, E.message)
	}
	return fmt.Sprintf("mdsim: file %s: %s", E.filename, E.message)
}

//Decorate adds new information to the error
func (E *ParseError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file where the problem was found.
func (E *ParseError) FileName() string { return E.filename }

//Line returns the 1-based line number of the offending record, or 0.
func (E *ParseError) Line() int { return E.line }

//ConfigError is returned when a required configuration key is missing or has
//an invalid value. Key is the full, dotted, name of the key.
type ConfigError struct {
	Key     string
	Message string
	deco    []string
}

func (E *ConfigError) Error() string {
	if E.Message == "" {
		return fmt.Sprintf("mdsim: missing configuration key %q", E.Key)
	}
	return fmt.Sprintf("mdsim: configuration key %q: %s", E.Key, E.Message)
}

//Decorate adds new information to the error
func (E *ConfigError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//ShapeError is returned when series that must share a length don't.
type ShapeError struct {
	What     string
	Want     int
	Got      int
	Filename string
	deco     []string
}

func (E *ShapeError) Error() string {
	if E.Filename != "" {
		return fmt.Sprintf("mdsim: %s in %s: got length %d, want %d", E.What, E.Filename, E.Got, E.Want)
	}
	return fmt.Sprintf("mdsim: %s: got length %d, want %d", E.What, E.Got, E.Want)
}

//Decorate adds new information to the error
func (E *ShapeError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//ErrNoFiles is returned when a pipeline is given an empty file list.
var ErrNoFiles = errors.New("mdsim: no files given")

//Decorate decorates err with the caller's name if err implements Error,
//and returns it. Other errors are returned untouched.
func Decorate(err error, caller string) error {
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

//Trace returns the decoration of err (the functions it went through), joined
//by " < ", or the empty string.
func Trace(err error) string {
	var e Error
	if !errors.As(err, &e) {
		return ""
	}
	return strings.Join(e.Decorate(""), " < ")
}
