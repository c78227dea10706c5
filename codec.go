// SPDX-License-Identifier: MIT

package sms

import (
	"time"

	"github.com/modemkit/sms/encoding/gsm7"
	"github.com/modemkit/sms/encoding/tpdu"
	"github.com/modemkit/sms/encoding/ucs2"
	"github.com/modemkit/sms/ms/pdumode"
)

func gsm7Septets(text string) ([]byte, error) {
	e := gsm7.NewEncoder()
	return e.Encode([]byte(text))
}

func gsm7Decode(septets []byte) ([]byte, error) {
	d := gsm7.NewDecoder()
	return d.Decode(septets)
}

func ucs2Bytes(text string) []byte {
	return ucs2.Encode([]rune(text))
}

func ucs2Decode(b []byte) ([]rune, error) {
	return ucs2.Decode(b)
}

// EncodePart marshals a Part whose PDUType is Submit into a complete PDU
// (SMSC address followed by the TPDU), as the wire format a modem's
// AT+CMGW/AT+CMGS dialog expects. It returns the offset within pdu at which
// the TPDU itself begins, so a transport that reports the SMSC length
// separately can submit only the TPDU portion.
func EncodePart(p *Part) (pdu []byte, tpduStart int, err error) {
	if p.PDUType != Submit {
		return nil, 0, EncodeUnsupported{Reason: "only Submit parts can be encoded"}
	}
	s, err := partToSubmit(p)
	if err != nil {
		return nil, 0, err
	}
	tb, err := s.MarshalBinary()
	if err != nil {
		return nil, 0, err
	}
	pdu, err = pdumode.Encode(p.SMSCAddress, tb)
	if err != nil {
		return nil, 0, err
	}
	return pdu, len(pdu) - len(tb), nil
}

func partToSubmit(p *Part) (*tpdu.Submit, error) {
	s := tpdu.NewSubmit()
	s.DA = tpdu.AddressFromNumber(p.Number)
	s.MR = p.MessageReference
	if p.DeliveryReportRequest {
		s.FirstOctet |= tpdu.FoSRR
	}
	alpha := encodingToAlphabet(p.Encoding)
	dcs, err := tpdu.DCS(0).WithAlphabet(alpha)
	if err != nil {
		return nil, err
	}
	if p.Class >= 0 && p.Class <= 3 {
		dcs, err = dcs.WithClass(tpdu.MessageClass(p.Class))
		if err != nil {
			return nil, InvalidParameter{What: "class"}
		}
	}
	s.DCS = dcs
	if p.ValidityRelative > 0 {
		vp := tpdu.ValidityPeriod{}
		vp.SetRelative(time.Duration(p.ValidityRelative) * time.Minute)
		s.SetVP(vp)
	}
	if p.ShouldConcat {
		ie := tpdu.InformationElement{
			ID:   0,
			Data: []byte{byte(p.ConcatReference), byte(p.ConcatMax), byte(p.ConcatSequence)},
		}
		s.SetUDH(append(tpdu.UserDataHeader{}, ie))
	}
	switch p.Encoding {
	case EncodingEightBit:
		s.UD = p.Data
	case EncodingUCS2:
		s.UD = tpdu.UserData(ucs2Bytes(p.Text))
	default:
		ud, err := gsm7Septets(p.Text)
		if err != nil {
			return nil, EncodeUnsupported{Reason: err.Error()}
		}
		s.UD = ud
	}
	return s, nil
}

func encodingToAlphabet(e Encoding) tpdu.Alphabet {
	switch e {
	case EncodingEightBit:
		return tpdu.Alpha8Bit
	case EncodingUCS2:
		return tpdu.AlphaUCS2
	default:
		return tpdu.Alpha7Bit
	}
}

// DecodePart unmarshals a complete PDU (SMSC address + TPDU) received from a
// transport into a Part. drn indicates whether the PDU is mobile-originated
// (as echoed back by AT+CMGR for a stored outgoing part) or
// mobile-terminated.
func DecodePart(pdu []byte, drn tpdu.Direction) (*Part, error) {
	smsc, tb, err := pdumode.Decode(pdu)
	if err != nil {
		return nil, err
	}
	v, err := Decode(tb, drn)
	if err != nil {
		return nil, err
	}
	p := NewPart()
	p.SMSCAddress = *smsc
	p.SMSC = tpdu.Address(*smsc).Number()
	switch t := v.(type) {
	case *tpdu.Deliver:
		fillFromDeliver(p, t)
	case *tpdu.Submit:
		fillFromSubmit(p, t)
	case *tpdu.StatusReport:
		fillFromStatusReport(p, t)
	default:
		return nil, PduUnknownType(tb[0])
	}
	return p, nil
}

func fillFromDeliver(p *Part, d *tpdu.Deliver) {
	p.PDUType = Deliver
	p.Number = d.OA.Number()
	p.Timestamp = d.SCTS.Time
	p.HasTimestamp = true
	p.DeliveryReportRequest = d.FirstOctet.SRI()
	fillUserData(p, &d.TPDU)
}

func fillFromSubmit(p *Part, s *tpdu.Submit) {
	p.PDUType = Submit
	p.Number = s.DA.Number()
	p.MessageReference = s.MR
	p.DeliveryReportRequest = s.FirstOctet.SRR()
	p.Validity = s.VP
	if s.VP.Format == tpdu.VpfRelative {
		p.ValidityRelative = int(s.VP.Duration / time.Minute)
	}
	fillUserData(p, &s.TPDU)
}

func fillFromStatusReport(p *Part, sr *tpdu.StatusReport) {
	p.PDUType = StatusReport
	p.Number = sr.RA.Number()
	p.MessageReference = sr.MR
	p.Timestamp = sr.SCTS.Time
	p.HasTimestamp = true
	p.DischargeTimestamp = sr.DT.Time
	p.HasDischargeTimestamp = true
	p.DeliveryState = sr.ST
}

func fillUserData(p *Part, t *tpdu.TPDU) {
	alpha, _ := t.Alphabet()
	class, err := t.DCS.Class()
	if err == nil && class <= tpdu.MClass3 {
		p.Class = int(class)
	} else {
		p.Class = -1
	}
	if kind, active, ok := t.DCS.Waiting(); ok {
		p.HasWaiting = true
		p.Waiting = kind
		p.WaitingActive = active
	}
	segments, seqno, mref, ok := t.UDH.ConcatInfo()
	if ok {
		p.ShouldConcat = true
		p.ConcatReference = mref
		p.ConcatMax = segments
		p.ConcatSequence = seqno
	}
	switch alpha {
	case tpdu.Alpha8Bit:
		p.Encoding = EncodingEightBit
		p.Data = append([]byte(nil), t.UD...)
	case tpdu.AlphaUCS2:
		p.Encoding = EncodingUCS2
		if r, err := ucs2Decode(t.UD); err == nil {
			p.Text = string(r)
		}
	default:
		p.Encoding = EncodingGSM7
		if txt, err := gsm7Decode(t.UD); err == nil {
			p.Text = string(txt)
		}
	}
}
