// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package sms

import (
	"fmt"

	"github.com/pkg/errors"
)

// PduTooShort indicates a binary PDU did not contain sufficient octets to
// decode a field.
type PduTooShort struct {
	Need int
	Have int
	At   string
}

func (e PduTooShort) Error() string {
	return fmt.Sprintf("pdu too short: need %d octets at %s, have %d", e.Need, e.At, e.Have)
}

// PduUnknownType indicates the TP-MTI decoded from the first octet is not
// one this package can interpret.
type PduUnknownType byte

func (e PduUnknownType) Error() string {
	return fmt.Sprintf("unknown PDU type: 0x%x", byte(e))
}

// PduMalformedField indicates a field's content is structurally invalid,
// e.g. a length byte pointing past the buffer, or a concatenation IE with
// max == 0.
type PduMalformedField struct {
	Field  string
	Reason string
}

func (e PduMalformedField) Error() string {
	return fmt.Sprintf("malformed field %s: %s", e.Field, e.Reason)
}

// PduCharsetError indicates a GSM-7 septet has no Unicode mapping under the
// strict decode policy used for addresses.
var PduCharsetError = errors.New("no charset mapping for septet")

// EncodeUnsupported indicates the requested encoding cannot represent the
// supplied text or data.
type EncodeUnsupported struct {
	Reason string
}

func (e EncodeUnsupported) Error() string {
	return fmt.Sprintf("encode unsupported: %s", e.Reason)
}

// InvalidAddress indicates an address's type/plan combination is
// inconsistent with its payload, or its payload is not valid BCD/GSM-7.
var InvalidAddress = errors.New("invalid address")

// InvalidParameter indicates a field value is outside its valid range, e.g.
// a message class outside 0..3.
type InvalidParameter struct {
	What string
}

func (e InvalidParameter) Error() string {
	return fmt.Sprintf("invalid parameter: %s", e.What)
}

// AssemblyDuplicate indicates a part arrived claiming a (storage,index) pair
// already held by another Sms in the List, violating invariant 2.
type AssemblyDuplicate struct {
	Storage Storage
	Index   uint32
}

func (e AssemblyDuplicate) Error() string {
	return fmt.Sprintf("duplicate part at %s:%d", e.Storage, e.Index)
}

// AssemblySlotOccupied indicates two parts of the same multipart Sms claim
// the same concat sequence number.
var AssemblySlotOccupied = errors.New("multipart slot already occupied")

// ErrClosed indicates an operation was attempted on a List or Collector
// after it was closed.
var ErrClosed = errors.New("closed")

// ErrNotStored indicates an operation that requires a storage_index was
// attempted on a Part that has none.
var ErrNotStored = errors.New("part not stored")

// DeleteResult is the aggregate error returned by Sms.Delete when one or
// more parts failed to delete. Per spec, the storage_index is cleared for
// every part regardless of whether the transport call succeeded.
type DeleteResult struct {
	Failed int
	Cause  error
}

func (e *DeleteResult) Error() string {
	return fmt.Sprintf("failed to delete %d part(s): %v", e.Failed, e.Cause)
}

// Unwrap exposes the last underlying transport error via errors.Is/As.
func (e *DeleteResult) Unwrap() error {
	return e.Cause
}
