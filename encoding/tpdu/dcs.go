// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tpdu

// DCS represents the SMS Data Coding Scheme field as defined in 3GPP TS 23.040 Section 4.
type DCS byte

// Alphabet defines the encoding of the SMS User Data, as defined in 3GPP TS 23.038 Section 4.
type Alphabet int

const (
	// Alpha7Bit indicates that the UD is encoded using GSM 7 bit encoding.
	// The character set used for the decoding is determined from the UDH.
	Alpha7Bit Alphabet = iota
	// Alpha8Bit indicates that the UD is encoded as raw 8bit data.
	Alpha8Bit
	// AlphaUCS2 indicates that the UD is encoded as UCS-2 (16bit) characters.
	AlphaUCS2
	// AlphaReserved indicates the alphabet is not defined.
	AlphaReserved
)

// DCS coding group masks, as defined in 3GPP TS 23.038 Section 4. Each group
// fixes the alphabet differently, which is why Alphabet and WithAlphabet
// switch on them instead of treating the DCS as a flat bitfield.
const (
	dcsGeneralGroupMask  = 0x80 // 0xxxxxxx: general data coding group
	dcsMWIDiscardGroup   = 0xc0 // 1100xxxx: message waiting, discard message
	dcsMWIStoreGSM7Group = 0xd0 // 1101xxxx: message waiting, store, GSM7
	dcsMWIStoreUCS2Group = 0xe0 // 1110xxxx: message waiting, store, UCS2
	dcsMWIGroupMask      = 0xf0
	dcsDataGroup         = 0xf0 // 1111xxxx: data coding / message class group
)

// WaitingKind identifies the indication type carried by a Message Waiting
// Indication group DCS, as defined in 3GPP TS 23.038 Section 4. ModemManager's
// sms_encoding_type treats 0xc/0xd as GSM7 and 0xe as UCS2 without decoding
// the indication itself; WaitingKind exposes what those nibbles represent.
type WaitingKind int

const (
	// WaitingVoicemail indicates a voicemail message is waiting.
	WaitingVoicemail WaitingKind = iota
	// WaitingFax indicates a fax message is waiting.
	WaitingFax
	// WaitingEmail indicates an email message is waiting.
	WaitingEmail
	// WaitingOther indicates some other kind of message is waiting.
	WaitingOther
)

// MessageWaitingGroup returns true if the DCS belongs to one of the Message
// Waiting Indication coding groups (1100xxxx-1110xxxx).
func (d DCS) MessageWaitingGroup() bool {
	g := d & dcsMWIGroupMask
	return g == dcsMWIDiscardGroup || g == dcsMWIStoreGSM7Group || g == dcsMWIStoreUCS2Group
}

// Waiting returns the message waiting kind and active state encoded in a
// Message Waiting Indication group DCS. ok is false if the DCS does not
// belong to that coding group.
func (d DCS) Waiting() (kind WaitingKind, active bool, ok bool) {
	if !d.MessageWaitingGroup() {
		return 0, false, false
	}
	return WaitingKind(d & 0x3), d&0x04 != 0, true
}

// Alphabet returns the alphabet used to encode the User Data according to the DCS.
// The DCS is assumed to be defined as per 3GPP TS 23.038 Section 4.
func (d DCS) Alphabet() (Alphabet, error) {
	alpha := Alpha7Bit
	switch {
	case d&dcsGeneralGroupMask == 0x00: // general data coding group
		alpha = Alphabet((d >> 2) & 0x3)
		if alpha == AlphaReserved {
			alpha = Alpha7Bit
		}
	case d&dcsMWIGroupMask == dcsMWIDiscardGroup, d&dcsMWIGroupMask == dcsMWIStoreGSM7Group:
		// message waiting group (default alphabet), as per
		// sms_encoding_type's 0xc/0xd cases
	case d&dcsMWIGroupMask == dcsMWIStoreUCS2Group:
		// message waiting group (UCS2 alphabet), sms_encoding_type's 0xe case
		alpha = AlphaUCS2
	case d&dcsDataGroup == dcsDataGroup:
		if d&0x04 == 0x04 {
			alpha = Alpha8Bit
		} // else default alphabet
	default: // includes 10xx reserved coding groups
		return Alpha7Bit, ErrInvalid
	}
	return alpha, nil
}

// WithAlphabet sets the Alphabet bits of the DCS, given the state of the other
// bits.  An error is returned if the state is incompatible with setting the
// alphabet.
func (d DCS) WithAlphabet(a Alphabet) (DCS, error) {
	switch {
	case d&dcsGeneralGroupMask == 0x00: // general data coding group
		return d&^0x0c | (DCS(a) << 2), nil
	case d.MessageWaitingGroup() && d&dcsMWIGroupMask != dcsMWIStoreUCS2Group && a == Alpha7Bit:
		return d, nil
	case d&dcsMWIGroupMask == dcsMWIStoreUCS2Group && a == AlphaUCS2:
		return d, nil
	case d&dcsDataGroup == dcsDataGroup && a <= Alpha8Bit:
		return d&^0x0c | (DCS(a) << 2), nil
	default: // includes the message waiting and 10xx reserved coding groups
		return d, ErrInvalid
	}
}

// MessageClass indicates the
type MessageClass int

const (
	// MClass0 is a flash message which is not to be stored in memory.
	MClass0 MessageClass = iota
	// MClass1 is an ME specific message.
	MClass1
	// MClass2 is a SIM/USIM specific message.
	MClass2
	// MClass3 is a TE specific message.
	MClass3
	// MClassUnknown indicates no message class is set.
	MClassUnknown
)

// Class returns the MessageClass indicated by the DCS.
// The DCS is assumed to be defined as per 3GPP TS 23.038 Section 4.
func (d DCS) Class() (MessageClass, error) {
	switch {
	case d&0x90 == 0x10, d&0xf0 == 0xf0: // 0xx1 and 1111
		return MessageClass(d & 0x3), nil
	case d&0xe0 == 0xc0, d&0xf0 == 0xe0: // 110x and 1110
		return MClassUnknown, nil
	default: // includes 10xx reserved coding groups
		return MClassUnknown, ErrInvalid
	}
}

// WithClass sets the MessageClass bits of the DCS, given the state of the other
// bits.  An error is returned if the state is incompatible with setting the
// message class.
func (d DCS) WithClass(c MessageClass) (DCS, error) {
	switch {
	case d&0x80 == 0x00: // 0xxx
		return (d&^0x03 | 0x10 | DCS(c)), nil
	case d&0xf0 == 0xf0: // 1111
		return (d&^0x03 | DCS(c)), nil
	default: // includes 10xx reserved coding groups
		return d, ErrInvalid
	}
}

// Compressed indicates whether the text is compressed using the algorithm defined
// in 3GPP TS 23.024, as determined from the DCS.
// The DCS is assumed to be defined as per 3GPP TS 23.038 Section 4.
func (d DCS) Compressed() bool {
	// only true for 0x1xxxxx (binary)
	return (d&0xa0 == 0x20)
}
