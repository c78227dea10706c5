// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tpdu

// DeliverReport represents a SMS-Deliver-Report PDU as defined in 3GPP TS 23.038 Section 9.2.2.1a.
type DeliverReport struct {
	TPDU
	FCS byte
	PI  PI
}

// NewDeliverReport creates a DeliverReport TPDU and initialises non-zero fields.
func NewDeliverReport() *DeliverReport {
	return &DeliverReport{TPDU: TPDU{FirstOctet: FirstOctet(MtDeliver)}}
}

// SetDCS sets the DeliverReport dcs field and the corresponding bit of the PI.
func (d *DeliverReport) SetDCS(dcs byte) {
	d.PI |= PiDCS
	d.TPDU.DCS = DCS(dcs)
}

// SetPID sets the DeliverReport pid field and the corresponding bit of the PI.
func (d *DeliverReport) SetPID(pid byte) {
	d.PI |= PiPID
	d.TPDU.PID = pid
}

// SetUD sets the DeliverReport ud field and the corresponding bit of the PI.
func (d *DeliverReport) SetUD(ud UserData) {
	d.PI |= PiUDL
	d.TPDU.UD = ud
}

// SetUDH sets the User Data Header of the DeliverReport and the corresponding bit of the PI.
func (d *DeliverReport) SetUDH(udh UserDataHeader) {
	d.PI |= PiUDL
	d.TPDU.SetUDH(udh)
}

// MarshalBinary marshals an SMS-Deliver-Report TPDU.
func (d *DeliverReport) MarshalBinary() ([]byte, error) {
	b := []byte{byte(d.FirstOctet), d.FCS, byte(d.PI)}
	if d.PI.PID() {
		b = append(b, d.PID)
	}
	if d.PI.DCS() {
		b = append(b, byte(d.DCS))
	}
	if d.PI.UDL() {
		ud, err := d.encodeUserData()
		if err != nil {
			return nil, EncodeError("ud", err)
		}
		b = append(b, ud...)
	}
	return b, nil
}

// UnmarshalBinary unmarshals an SMS-Deliver-Report TPDU.
func (d *DeliverReport) UnmarshalBinary(src []byte) error {
	if len(src) < 1 {
		return DecodeError("firstOctet", 0, ErrUnderflow)
	}
	d.FirstOctet = FirstOctet(src[0])
	ri := 1
	if len(src) <= ri {
		return DecodeError("fcs", ri, ErrUnderflow)
	}
	d.FCS = src[ri]
	ri++
	if len(src) <= ri {
		return DecodeError("pi", ri, ErrUnderflow)
	}
	d.PI = PI(src[ri])
	ri++
	if d.PI.PID() {
		if len(src) <= ri {
			return DecodeError("pid", ri, ErrUnderflow)
		}
		d.PID = src[ri]
		ri++
	}
	if d.PI.DCS() {
		if len(src) <= ri {
			return DecodeError("dcs", ri, ErrUnderflow)
		}
		d.DCS = DCS(src[ri])
		ri++
	}
	if d.PI.UDL() {
		err := d.decodeUserData(src[ri:])
		if err != nil {
			return DecodeError("ud", ri, err)
		}
	}
	return nil
}

func decodeDeliverReport(src []byte) (interface{}, error) {
	d := NewDeliverReport()
	if err := d.UnmarshalBinary(src); err != nil {
		return nil, err
	}
	return d, nil
}

// RegisterDeliverReportDecoder registers a decoder for the DeliverReport TPDU.
func RegisterDeliverReportDecoder(d *Decoder) error {
	return d.RegisterDecoder(MtDeliver, MO, decodeDeliverReport)
}
