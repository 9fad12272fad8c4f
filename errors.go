/*
 * errors.go, part of goCSG.
 *
 * Copyright 2026 The goCSG Authors
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

package csg

import (
	"fmt"
	"strings"
)

// ErrorKind classifies the errors returned by the package. Use errors.Is
// to test a returned error against one of the kinds below.
type ErrorKind string

func (k ErrorKind) Error() string { return string(k) }

const (
	ErrOutOfRange         ErrorKind = "index out of range"
	ErrNamingInconsistent ErrorKind = "molecule naming inconsistency"
	ErrResidueNumbering   ErrorKind = "inconsistent residue numbering"
	ErrRangeSyntax        ErrorKind = "malformed range expression"
	ErrShape              ErrorKind = "dimension mismatch"
	ErrInteraction        ErrorKind = "malformed interaction"
)

// CError is the error type of the csg package. It implements Error
// and unwraps to its ErrorKind.
type CError struct {
	msg      string
	deco     []string
	critical bool
	kind     ErrorKind
}

func newError(kind ErrorKind, caller string, format string, a ...any) *CError {
	return &CError{msg: fmt.Sprintf(format, a...), deco: []string{caller}, critical: true, kind: kind}
}

// Error returns a string with an error message.
func (err *CError) Error() string {
	if len(err.deco) == 0 {
		return fmt.Sprintf("%s: %s", err.kind, err.msg)
	}
	return fmt.Sprintf("%s: %s: %s", strings.Join(err.deco, ": "), err.kind, err.msg)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical or it can be ignored
func (err *CError) Critical() bool { return err.critical }

// Unwrap returns the kind of the error
func (err *CError) Unwrap() error { return err.kind }

// errDecorate is a helper function that asserts that the error
// implements Error and decorates the error with the caller's name before returning it.
// if used with a non-Error error, it will just return the error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrBeadTypeRegistry = PanicMsg("goCSG: bead type registry is inconsistent")
	ErrNilTopology      = PanicMsg("goCSG: operation on a nil or detached topology")
	ErrBeadOutOfRange   = PanicMsg("goCSG: bead index out of range")
)
