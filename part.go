// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package sms

import (
	"encoding/binary"
	"time"

	"github.com/modemkit/sms/encoding/gsm7"
	"github.com/modemkit/sms/encoding/tpdu"
	"github.com/modemkit/sms/encoding/ucs2"
	"github.com/modemkit/sms/ms/pdumode"
)

// PDUType identifies the 3GPP (or CDMA) TPDU family a Part was decoded from,
// or is to be encoded as.
type PDUType int

const (
	// Unknown indicates the PDU type has not been determined.
	Unknown PDUType = iota
	// Deliver is a mobile-terminated SMS-DELIVER TPDU.
	Deliver
	// Submit is a mobile-originated SMS-SUBMIT TPDU.
	Submit
	// StatusReport is a mobile-terminated SMS-STATUS-REPORT TPDU.
	StatusReport
	// CDMADeliver tags a CDMA-family deliver PDU. No decode/encode path is
	// implemented for the CDMA family; the tag exists only so a Part
	// plumbed through from a CDMA-capable transport can still be carried.
	CDMADeliver
	// CDMASubmit tags a CDMA-family submit PDU.
	CDMASubmit
	// CDMACancellation tags a CDMA-family broadcast cancellation PDU.
	CDMACancellation
	// CDMADeliveryAck tags a CDMA-family delivery acknowledgement PDU.
	CDMADeliveryAck
	// CDMAUserAck tags a CDMA-family user acknowledgement PDU.
	CDMAUserAck
	// CDMAReadAck tags a CDMA-family read acknowledgement PDU.
	CDMAReadAck
)

// Encoding identifies how a Part's user data is, or is to be, encoded on
// the wire.
type Encoding int

const (
	// EncodingUnknown indicates the encoding has not been determined.
	EncodingUnknown Encoding = iota
	// EncodingGSM7 is the 3GPP default 7-bit alphabet.
	EncodingGSM7
	// EncodingUCS2 is UTF-16BE, labelled UCS-2 by the 3GPP specs.
	EncodingUCS2
	// EncodingEightBit is uninterpreted binary data.
	EncodingEightBit
)

// Part is one on-the-wire SMS payload, decoded from or destined for a
// single TPDU. It corresponds to the spec's "SmsPart".
type Part struct {
	PDUType PDUType

	// StorageIndex is the modem-assigned slot this part occupies, or -1 if
	// the part is not (or no longer) stored on the modem.
	StorageIndex int

	// SMSC is the E.164 service-centre address, empty if absent.
	SMSC string
	// SMSCAddress carries the literal SMSC envelope address, when the part
	// was decoded from (or is to be wrapped in) a pdumode envelope.
	SMSCAddress pdumode.SMSCAddress

	// Number is the destination (Submit) or originator (Deliver/
	// StatusReport) address, in international "+..." form when known.
	Number string

	Timestamp             time.Time
	HasTimestamp          bool
	DischargeTimestamp    time.Time
	HasDischargeTimestamp bool

	Encoding Encoding
	Text     string
	Data     []byte

	// Class is the TP-DCS message class, or -1 if absent.
	Class int

	// Waiting and WaitingActive carry the TP-DCS Message Waiting
	// Indication, when the DCS belongs to that coding group. Waiting and
	// WaitingActive are meaningless unless HasWaiting is true.
	HasWaiting    bool
	Waiting       tpdu.WaitingKind
	WaitingActive bool

	// ValidityRelative is the requested validity period, in minutes, or 0
	// if absent.
	ValidityRelative int
	// Validity carries the full relative/enhanced/absolute validity period
	// as decoded or to be encoded, in addition to ValidityRelative.
	Validity tpdu.ValidityPeriod

	DeliveryReportRequest bool
	// DeliveryState is the TP-Status byte from a STATUS-REPORT TPDU.
	DeliveryState byte

	MessageReference byte

	// ConcatReference, ConcatMax and ConcatSequence are the multipart
	// coordinates decoded from (or to be encoded into) the UDH
	// concatenation IE. ConcatSequence is 1-based.
	ConcatReference int
	ConcatMax       int
	ConcatSequence  int
	ShouldConcat    bool
}

// NewPart creates a Part with StorageIndex and Class set to their "absent"
// sentinel values.
func NewPart() *Part {
	return &Part{StorageIndex: -1, Class: -1}
}

// maxGSM7Septets returns the number of GSM-7 septets that fit in a single
// part (singleton) or a segment of a multipart message. The 6-octet
// concatenation UDH, plus one padding septet to realign the body on a
// septet boundary, cost 7 septets relative to the singleton budget of
// gsm7.MaxSeptets.
func maxGSM7Septets(multipart bool) int {
	if multipart {
		return gsm7.MaxSeptets - 7
	}
	return gsm7.MaxSeptets
}

// maxDataOctets returns the number of octets (UCS-2 or binary) that fit in
// a single part (singleton) or a segment of a multipart message. The UDH
// costs 6 octets relative to the singleton budget of 140.
func maxDataOctets(multipart bool) int {
	if multipart {
		return 134
	}
	return 140
}

const udhEsc = 0x1b

// SplitText splits a UTF-8 message into the sequence of Parts required to
// carry it, selecting GSM-7 when every code point is representable in the
// default alphabet (including its extension table) and UCS-2 otherwise.
//
// It never panics on empty input - an empty message produces a single empty
// Part - and guarantees that concatenating the Text of the returned Parts,
// in order, reproduces msg exactly.
func SplitText(msg string) ([]*Part, error) {
	if len(msg) == 0 {
		p := NewPart()
		p.Encoding = EncodingGSM7
		return []*Part{p}, nil
	}
	e := gsm7.NewEncoder()
	if septets, err := e.Encode([]byte(msg)); err == nil {
		return splitGSM7(septets), nil
	}
	runes := []rune(msg)
	return splitUCS2(runes), nil
}

// splitGSM7 splits already-encoded GSM-7 septets (one septet per byte, as
// produced by gsm7.Encoder.Encode) into Parts, never splitting an escape
// sequence across a boundary, and decodes each chunk back into UTF-8 so the
// invariant Σ(len(chunk)) == len(msg), measured in UTF-8, holds.
func splitGSM7(septets []byte) []*Part {
	bs := maxGSM7Septets(false)
	if len(septets) <= bs {
		return []*Part{gsm7Part(septets, 1, 1)}
	}
	bs = maxGSM7Septets(true)
	chunks := chunk7Bit(septets, bs)
	parts := make([]*Part, len(chunks))
	for i, c := range chunks {
		parts[i] = gsm7Part(c, i+1, len(chunks))
	}
	return parts
}

func gsm7Part(septets []byte, seq, max int) *Part {
	p := NewPart()
	p.Encoding = EncodingGSM7
	d := gsm7.NewDecoder()
	text, _ := d.Decode(septets)
	p.Text = string(text)
	if max > 1 {
		p.ShouldConcat = true
		p.ConcatSequence = seq
		p.ConcatMax = max
	}
	return p
}

// chunk7Bit splits msg (one septet per byte) into chunks no larger than bs
// septets, never splitting an escape-sequence pair.
// Grounded on ms/sar.Segmenter's chunk7Bit.
func chunk7Bit(msg []byte, bs int) [][]byte {
	if len(msg) == 0 {
		return nil
	}
	count := 1 + len(msg)/bs
	chunks := make([][]byte, 0, count)
	bstart, bend := 0, bs
	for bend < len(msg) {
		if msg[bend-1] == udhEsc && (bend < 2 || msg[bend-2] != udhEsc) {
			bend--
		}
		chunks = append(chunks, msg[bstart:bend])
		bstart = bend
		bend = bstart + bs
	}
	chunks = append(chunks, msg[bstart:])
	return chunks
}

// splitUCS2 splits runes into UCS-2 (UTF-16BE) Parts, never splitting a
// surrogate pair across a boundary.
func splitUCS2(runes []rune) []*Part {
	encoded := ucs2.Encode(runes)
	bs := maxDataOctets(false)
	if len(encoded) <= bs {
		return []*Part{ucs2Part(encoded, 1, 1)}
	}
	bs = maxDataOctets(true)
	chunks := chunkUCS2(encoded, bs)
	parts := make([]*Part, len(chunks))
	for i, c := range chunks {
		parts[i] = ucs2Part(c, i+1, len(chunks))
	}
	return parts
}

func ucs2Part(encoded []byte, seq, max int) *Part {
	p := NewPart()
	p.Encoding = EncodingUCS2
	r, _ := ucs2.Decode(encoded)
	p.Text = string(r)
	if max > 1 {
		p.ShouldConcat = true
		p.ConcatSequence = seq
		p.ConcatMax = max
	}
	return p
}

const (
	surrHighStart = 0xd800
	surrLowStart  = 0xdc00
)

// chunkUCS2 splits UTF-16BE encoded bytes into chunks no larger than bs
// octets, never splitting a surrogate pair. Grounded on
// ms/sar.Segmenter's chunkUCS2.
func chunkUCS2(msg []byte, bs int) [][]byte {
	if len(msg) == 0 {
		return nil
	}
	bs = bs &^ 0x1
	count := 1 + len(msg)/bs
	chunks := make([][]byte, 0, count)
	bstart, bend := 0, bs
	for bend < len(msg) {
		r := binary.BigEndian.Uint16(msg[bend-2 : bend])
		if surrHighStart <= r && r < surrLowStart {
			bend -= 2
		}
		chunks = append(chunks, msg[bstart:bend])
		bstart = bend
		bend = bstart + bs
	}
	chunks = append(chunks, msg[bstart:])
	return chunks
}

// SplitData splits raw binary data into the sequence of Parts required to
// carry it as 8-bit data, on plain octet boundaries.
func SplitData(data []byte) []*Part {
	if len(data) == 0 {
		p := NewPart()
		p.Encoding = EncodingEightBit
		return []*Part{p}
	}
	bs := maxDataOctets(false)
	if len(data) <= bs {
		return []*Part{dataPart(data, 1, 1)}
	}
	bs = maxDataOctets(true)
	chunks := chunk8Bit(data, bs)
	parts := make([]*Part, len(chunks))
	for i, c := range chunks {
		parts[i] = dataPart(c, i+1, len(chunks))
	}
	return parts
}

func dataPart(data []byte, seq, max int) *Part {
	p := NewPart()
	p.Encoding = EncodingEightBit
	p.Data = append([]byte(nil), data...)
	if max > 1 {
		p.ShouldConcat = true
		p.ConcatSequence = seq
		p.ConcatMax = max
	}
	return p
}

// chunk8Bit splits data into chunks no larger than bs octets. Grounded on
// ms/sar.Segmenter's chunk8Bit.
func chunk8Bit(data []byte, bs int) [][]byte {
	if len(data) == 0 {
		return nil
	}
	count := 1 + len(data)/bs
	chunks := make([][]byte, 0, count)
	bstart, bend := 0, bs
	for bend < len(data) {
		chunks = append(chunks, data[bstart:bend])
		bstart = bend
		bend = bstart + bs
	}
	chunks = append(chunks, data[bstart:])
	return chunks
}
