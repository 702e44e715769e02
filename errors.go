/*
 * errors.go, part of pts.
 *
 * Copyright 2026 The pts developers
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

package pts

import "fmt"

//The concrete error kinds of the package. All of them satisfy the Error
//interface, so callers can decorate them on the way up and switch on
//the concrete type to react.

// ParseError reports a malformed line in z-matrix or Cartesian text.
type ParseError struct {
	Message string
	Line    string //the offending line, verbatim
	LineNo  int    //1-based line number within the parsed text, 0 if unknown
	deco    []string
}

func (err ParseError) Error() string {
	if err.Line == "" {
		return fmt.Sprintf("pts: parse: %s", err.Message)
	}
	return fmt.Sprintf("pts: parse: %s in line %d: %q", err.Message, err.LineNo, err.Line)
}

// Decorate adds the given string to the decoration and returns the
// resulting slice.
func (err ParseError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// CompletenessError reports a variable that is referenced by an atom
// line but never assigned a value.
type CompletenessError struct {
	Variable string
	deco     []string
}

func (err CompletenessError) Error() string {
	return fmt.Sprintf("pts: variable %q is used but never assigned", err.Variable)
}

// Decorate adds the given string to the decoration and returns the
// resulting slice.
func (err CompletenessError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// DimensionError reports a vector of the wrong length given to an
// operation with a fixed expected dimensionality.
type DimensionError struct {
	Context  string //the operation that got the vector
	Expected int
	Got      int
	deco     []string
}

func (err DimensionError) Error() string {
	return fmt.Sprintf("pts: %s: expected a vector of %d elements, got %d", err.Context, err.Expected, err.Got)
}

// Decorate adds the given string to the decoration and returns the
// resulting slice.
func (err DimensionError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that err implements Error, decorates it with the
//caller's name and returns it. Used with any other error it will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
