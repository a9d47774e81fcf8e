// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the business rejections raised by builtin contracts.
package reverts

import "errors"

// Kinds of revert.
var (
	ErrAccessControl       = errors.New("access control")
	ErrInvalidPool         = errors.New("invalid pool")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrArithmetic          = errors.New("arithmetic overflow or underflow")
	ErrTransferFailure     = errors.New("transfer failure")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrReentrant           = errors.New("reentrant call")
)

// ErrRevert is a rejected call. It matches its kind and, if any, its cause with errors.Is.
type ErrRevert struct {
	kind    error
	message string
	cause   error
}

// New creates a revert of the given kind with a require-style message.
func New(kind error, message string) *ErrRevert {
	return &ErrRevert{kind: kind, message: message}
}

// Wrap creates a revert of the given kind caused by err.
func Wrap(kind error, err error) *ErrRevert {
	return &ErrRevert{kind: kind, message: err.Error(), cause: err}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Kind returns the kind of the revert.
func (e *ErrRevert) Kind() error {
	return e.kind
}

func (e *ErrRevert) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var re *ErrRevert
	if errors.As(e, &re) {
		return re != nil
	}
	return false
}
