// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package message

import (
	"github.com/modemkit/sms/encoding/tpdu"
	"github.com/modemkit/sms/ms/sar"
)

// Encoder builds Submit TPDUs from simple inputs such as the destination
// number and the message in a UTF8 form.
type Encoder struct {
	ude      UDEncoder
	s        Segmenter
	template tpdu.Submit
}

// UDEncoder converts a UTF-8 message into the corresponding TPDU user data.
type UDEncoder interface {
	Encode(msg string) (tpdu.UserData, tpdu.UserDataHeader, tpdu.Alphabet, error)
}

// Segmenter segments a large outgoing message into the set of Submit TPDUs
// required to contain it.
type Segmenter interface {
	Segment(msg []byte, t *tpdu.Submit) []tpdu.Submit
}

// EncoderOption is a construction option for the Encoder.
type EncoderOption interface {
	applyEncoderOption(*Encoder)
}

// NewEncoder creates an Encoder.
func NewEncoder(options ...EncoderOption) *Encoder {
	e := Encoder{template: *tpdu.NewSubmit()}
	for _, option := range options {
		option.applyEncoderOption(&e)
	}
	if e.ude == nil {
		e.ude, _ = tpdu.NewUDEncoder()
	}
	if e.s == nil {
		e.s = sar.NewSegmenter()
	}
	return &e
}

type UDEncoderOption struct {
	ude UDEncoder
}

func (o UDEncoderOption) applyEncoderOption(e *Encoder) {
	e.ude = o.ude
}

// WithUDEncoder specifies the user data encoder to be used when encoding messages.
func WithUDEncoder(ude UDEncoder) UDEncoderOption {
	return UDEncoderOption{ude}
}

type SegmenterOption struct {
	s Segmenter
}

func (o SegmenterOption) applyEncoderOption(e *Encoder) {
	e.s = o.s
}

// WithSegmenter specifies the segmenter to be used when encoding messages.
func WithSegmenter(s Segmenter) SegmenterOption {
	return SegmenterOption{s}
}

type TemplateOption struct {
	t tpdu.Submit
}

func (o TemplateOption) applyEncoderOption(e *Encoder) {
	e.template = o.t
}

// WithTemplate specifies a template Submit TPDU that provides the fields of
// the Submit TPDUs other than the destination address, UDH and UD, which are
// set by Encode.
func WithTemplate(t tpdu.Submit) TemplateOption {
	return TemplateOption{t}
}

// Encode builds a set of Submit TPDUs from the destination number and UTF8 message.
// Long messages are split into multiple concatenated TPDUs, while short
// messages may fit in one.
func (e *Encoder) Encode(number, msg string) ([]tpdu.Submit, error) {
	d, udh, alpha, err := e.ude.Encode(msg)
	if err != nil {
		return nil, err
	}
	s := e.template
	s.DA = tpdu.AddressFromNumber(number)
	s.DCS, _ = tpdu.DCS(0).WithAlphabet(alpha)
	if len(udh) > 0 {
		s.SetUDH(append(append(tpdu.UserDataHeader{}, s.UDH...), udh...))
	}
	return e.segment(d, &s), nil
}

// Encode8Bit builds a set of Submit TPDUs from the destination number and raw
// binary message.
// Long messages are split into multiple concatenated TPDUs, while short
// messages may fit in one.
func (e *Encoder) Encode8Bit(number string, d []byte) ([]tpdu.Submit, error) {
	s := e.template
	s.DA = tpdu.AddressFromNumber(number)
	s.DCS, _ = tpdu.DCS(0).WithAlphabet(tpdu.Alpha8Bit)
	return e.segment(d, &s), nil
}

func (e *Encoder) segment(d []byte, s *tpdu.Submit) []tpdu.Submit {
	return e.s.Segment(d, s)
}
