// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package tpdu

import "strings"

// PI is the TP-Parameter-Indicator bitfield carried by DeliverReport,
// SubmitReport and StatusReport, per 3GPP TS 23.040 Section 9.2.3.27. Each
// bit gates whether the corresponding optional field (TP-PID, TP-DCS,
// TP-UDL/TP-UD) follows on the wire; DeliverReport.PI, SubmitReport.PI and
// StatusReport.PI are all of this type, and their SetDCS/SetPID/SetUD/SetUDH
// methods set the matching bit as they populate the field.
type PI byte

// PID returns true if a PID field is present in the TPDU.
func (p PI) PID() bool {
	return p&PiPID != 0
}

// DCS returns true if a DCS field is present in the TPDU.
func (p PI) DCS() bool {
	return p&PiDCS != 0
}

// UDL returns true if a UDL, and hence a UD, field is present in the TPDU.
func (p PI) UDL() bool {
	return p&PiUDL != 0
}

func (p PI) String() string {
	elems := []string{}
	if p.PID() {
		elems = append(elems, "PID")
	}
	if p.DCS() {
		elems = append(elems, "DCS")
	}
	if p.UDL() {
		elems = append(elems, "UDL")
	}
	return strings.Join(elems, "|")
}

const (
	// PI bit fields

	// PiPID indicates a TP-PID field is present in the TPDU
	PiPID = 1 << iota

	// PiDCS indicates a TP-DCS field is present in the TPDU
	PiDCS

	// PiUDL indicates a TP-UDL field is present in the TPDU
	PiUDL
)
