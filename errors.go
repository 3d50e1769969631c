/*
 * errors.go, part of goxyz.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
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

package xyz

import "fmt"

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Decorate adds information when passing the error up. Each call returns the current "decoration" slice of strings. If passed an empty string, it just returns the current value without adding to it. The slice should contain the names of the functions in the calling stack plus, for each, any relevant extra info in the format "FunctionName: Extra info".
}

// TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors
// (i.e. last frame) so they can be filtered in a typeswitch that looks for
// this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}

//Message constants for the errors produced by the codecs in this package.
const (
	InvalidHeader     = "Atom count line is not a parseable integer"
	InvalidCoordinate = "Coordinate token can not be converted to a float"
	NoFrames          = "No frames found"
)

//ParseError is the error type returned by the XYZ parsers. It fulfills
//the Error interface of this package.
type ParseError struct {
	message  string
	line     string //the offending line, or empty string if none.
	filename string //the input file with problems, or empty string if none.
	deco     []string
}

func (err *ParseError) Error() string {
	if err.line != "" {
		return fmt.Sprintf("goxyz: %s (line: %q)", err.message, err.line)
	}
	return fmt.Sprintf("goxyz: %s", err.message)
}

//Decorate adds new information to the error.
func (err *ParseError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Message returns the kind of failure, as one of the message constants
//of this package.
func (err *ParseError) Message() string { return err.message }

//Line returns the offending text line, if any.
func (err *ParseError) Line() string { return err.line }

//FileName returns the file to which the failing document was associated,
//or an empty string if it did not come from a file.
func (err *ParseError) FileName() string { return err.filename }

func parseError(message, line, caller string) *ParseError {
	return &ParseError{message: message, line: line, deco: []string{caller}}
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. It panics on a non-Error error.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
