// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package sms

import (
	"context"
	"fmt"
)

// Storage identifies a modem memory bank that SMS parts may be stored in.
type Storage int

const (
	// StorageUnknown indicates the storage location is not known.
	StorageUnknown Storage = iota
	// StorageSM is the SIM's own SMS storage.
	StorageSM
	// StorageME is the mobile equipment's non-volatile storage.
	StorageME
	// StorageMT is the combined ME+SM storage as reported by some modems.
	StorageMT
	// StorageSR is status-report storage.
	StorageSR
	// StorageBM is broadcast message storage.
	StorageBM
	// StorageTA is terminal adapter storage.
	StorageTA
)

func (s Storage) String() string {
	switch s {
	case StorageSM:
		return "SM"
	case StorageME:
		return "ME"
	case StorageMT:
		return "MT"
	case StorageSR:
		return "SR"
	case StorageBM:
		return "BM"
	case StorageTA:
		return "TA"
	default:
		return "UNKNOWN"
	}
}

// TransportErrorKind distinguishes the broad classes of failure a Transport
// may report, so callers can decide whether to retry, fall back, or give up.
type TransportErrorKind int

const (
	// Malformed indicates the transport rejected the PDU itself.
	Malformed TransportErrorKind = iota
	// Timeout indicates the modem did not reply within the requested
	// timeout.
	Timeout
	// NotSupported indicates the modem or transport does not implement the
	// requested operation.
	NotSupported
	// Refused indicates the modem actively rejected the operation, carrying
	// a modem-specific numeric code.
	Refused
)

// TransportError is returned by every Transport method on failure.
type TransportError struct {
	Kind TransportErrorKind
	Code int
	Err  error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case Timeout:
		return "transport: timeout"
	case NotSupported:
		return "transport: not supported"
	case Refused:
		return fmt.Sprintf("transport: refused (code %d)", e.Code)
	default:
		return fmt.Sprintf("transport: malformed: %v", e.Err)
	}
}

// Unwrap exposes the underlying transport-level error, if any, for
// errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StorageGuard represents an advisory lock over one or two storage banks,
// acquired via Transport.LockStorage and released by calling Release.
type StorageGuard interface {
	Release()
}

// Transport is the contract a caller must provide to drive the store, send
// and delete state machines of §4.H. It corresponds to whatever AT/MBIM/QMI
// dialog the modem actually speaks; this package only depends on the
// contract, never on a concrete transport.
type Transport interface {
	// WritePart stores pdu (a complete SMSC+TPDU byte sequence) in the given
	// storage bank and returns the modem-assigned storage index.
	WritePart(ctx context.Context, storage Storage, pdu []byte) (uint32, error)
	// SendPartByIndex sends a previously-stored part by its storage index
	// and returns the TP-MR the modem assigned.
	SendPartByIndex(ctx context.Context, index uint32) (byte, error)
	// SendPartByPDU encodes and sends pdu directly, without first storing
	// it, and returns the TP-MR the modem assigned.
	SendPartByPDU(ctx context.Context, pdu []byte) (byte, error)
	// DeletePart removes a previously-stored part by its storage index.
	DeletePart(ctx context.Context, index uint32) error
	// LockStorage acquires an advisory lock over one or two storage banks,
	// serialising against concurrent storage-switching the modem may
	// perform. mem2 may be StorageUnknown when only one bank is relevant.
	LockStorage(ctx context.Context, mem1, mem2 Storage) (StorageGuard, error)
}
