// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tpdu

import (
	"unicode/utf8"

	"github.com/modemkit/sms/encoding/gsm7"
	"github.com/modemkit/sms/encoding/ucs2"
)

// UDDecoder converts the User Data of a TPDU, in whichever Alphabet it was
// encoded, into UTF-8.
type UDDecoder struct {
	d gsm7.Decoder
}

// NewUDDecoder creates a UDDecoder using the default GSM7 character set.
func NewUDDecoder() (*UDDecoder, error) {
	return &UDDecoder{d: gsm7.NewDecoder()}, nil
}

// Decode converts ud into UTF-8, using alpha to determine how the UD is
// encoded. The udh is not itself decoded - it identifies information
// elements that may, in other contexts, select an alternate character set,
// but is otherwise unused here.
func (d *UDDecoder) Decode(ud UserData, udh UserDataHeader, alpha Alphabet) ([]byte, error) {
	if len(ud) == 0 {
		return nil, nil
	}
	switch alpha {
	case Alpha8Bit:
		return []byte(ud), nil
	case AlphaUCS2:
		r, err := ucs2.Decode(ud)
		return []byte(string(r)), err
	default: // Alpha7Bit, AlphaReserved
		return d.d.Decode(ud)
	}
}

// UDEncoder converts a UTF-8 message into TPDU User Data, selecting the
// narrowest Alphabet that can represent the message without loss.
type UDEncoder struct {
	e gsm7.Encoder
}

// NewUDEncoder creates a UDEncoder using the default GSM7 character set.
func NewUDEncoder() (*UDEncoder, error) {
	return &UDEncoder{e: gsm7.NewEncoder()}, nil
}

// Encode converts msg into the User Data, UDH and Alphabet to encode it in a
// TPDU. Messages encodable in GSM7 are encoded in Alpha7Bit; otherwise they
// are encoded in AlphaUCS2. The returned UDH is always nil - concatenation
// and other header information elements are added by the caller.
func (e *UDEncoder) Encode(msg string) (UserData, UserDataHeader, Alphabet, error) {
	if len(msg) == 0 {
		return nil, nil, Alpha7Bit, nil
	}
	if ud, err := e.e.Encode([]byte(msg)); err == nil {
		return ud, nil, Alpha7Bit, nil
	}
	if !utf8.ValidString(msg) {
		return nil, nil, Alpha7Bit, ErrInvalid
	}
	return ucs2.Encode([]rune(msg)), nil, AlphaUCS2, nil
}
