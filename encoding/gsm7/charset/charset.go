// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package charset provides the GSM-7 default alphabet and its single-shift
// extension table, as defined in 3GPP TS 23.038 Section 6.2.1.
package charset

// DefaultDecoder returns the default mapping table from GSM7 to UTF8.
func DefaultDecoder() Decoder {
	if defaultDecoder == nil {
		defaultDecoder = generateDefaultDecoder()
	}
	return defaultDecoder
}

// DefaultExtDecoder returns the default extension mapping table from GSM7 to UTF8.
func DefaultExtDecoder() Decoder {
	return defaultExtDecoder
}

// DefaultEncoder returns the default mapping table from UTF8 to GSM7.
func DefaultEncoder() Encoder {
	if defaultEncoder == nil {
		defaultEncoder = generateDefaultEncoder()
	}
	return defaultEncoder
}

// DefaultExtEncoder returns the default extension mapping table from UTF8 to GSM7.
func DefaultExtEncoder() Encoder {
	if defaultExtEncoder == nil {
		defaultExtEncoder = generateDefaultExtEncoder()
	}
	return defaultExtEncoder
}

// Decoder provides a mapping from GSM7 byte to UTF8 rune.
type Decoder map[byte]rune

// Encoder provides a mapping from UTF8 rune to GSM7 byte.
type Encoder map[rune]byte

func generateEncoder(d Decoder) Encoder {
	e := make(Encoder, len(d))
	for k, v := range d {
		if ko, ok := e[v]; !ok || ko > k {
			e[v] = k
		}
	}
	return e
}

func generateEncoderFromRunes(runes []rune) Encoder {
	e := make(Encoder, len(runes))
	for i, r := range runes {
		e[r] = byte(i)
	}
	return e
}

func generateDecoderFromRunes(runes []rune) Decoder {
	dset := make(Decoder, len(runes))
	for i, r := range runes {
		dset[byte(i)] = r
	}
	return dset
}
