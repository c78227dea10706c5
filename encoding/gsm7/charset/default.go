// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package charset

// defaultRunes is the GSM-7 default alphabet table of 3GPP TS 23.038
// Section 6.2.1, indexed by septet value (0x00-0x7f).
var defaultRunes = []rune(
	"@£$¥èéùìòÇ\nØø\rÅåΔ_ΦΓΛΩΠΨΣΘΞ\x1bÆæßÉ !\"#¤%&'()*+,-./0123456789:;<=>?" +
		"¡ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÑÜ§¿abcdefghijklmnopqrstuvwxyzäöñüà")

// defaultExtDecoder is the single-shift extension table of 3GPP TS 23.038
// Section 6.2.1, reached from the default alphabet via the 0x1b escape
// septet. A non-strict gsm7 Decoder decodes an escaped septet not listed
// here as the basic alphabet's character for that same septet value.
var defaultExtDecoder = Decoder{
	0x0a: '\f',
	0x0d: '\n',
	0x14: '^',
	0x28: '{',
	0x29: '}',
	0x2f: '\\',
	0x3c: '[',
	0x3d: '~',
	0x3e: ']',
	0x40: '|',
	0x65: '€',
}

var (
	defaultDecoder Decoder
	defaultEncoder Encoder
)

var defaultExtEncoder Encoder

func generateDefaultEncoder() Encoder {
	return generateEncoderFromRunes(defaultRunes)
}

func generateDefaultDecoder() Decoder {
	return generateDecoderFromRunes(defaultRunes)
}

func generateDefaultExtEncoder() Encoder {
	return generateEncoder(defaultExtDecoder)
}
