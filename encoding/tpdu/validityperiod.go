// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tpdu

import (
	"time"

	"github.com/modemkit/sms/encoding/bcd"
)

// ValidityPeriod represents the validity period as defined in 3GPP TS 34.040 Section 9.2.3.12.
type ValidityPeriod struct {
	Format   ValidityPeriodFormat
	Time     Timestamp     // for VpfAbsolute
	Duration time.Duration // for VpfRelative and VpfEnhanced
	Efi      byte          // enhanced functionality indicator - first octet of enhanced format
}

// SetAbsolute seth the validity period to an absolute time.
func (v *ValidityPeriod) SetAbsolute(t Timestamp) {
	v.Format = VpfAbsolute
	v.Duration = 0
	v.Time = t
	v.Efi = 0
}

// SetRelative sets the validity period to a relative time.
func (v *ValidityPeriod) SetRelative(d time.Duration) {
	v.Format = VpfRelative
	v.Duration = d
	v.Time = Timestamp{}
	v.Efi = 0
}

// SetEnhanced sets the validity period to an enhnaced format as determined
// from the functionality identifier (efi).
func (v *ValidityPeriod) SetEnhanced(d time.Duration, efi byte) {
	v.Format = VpfEnhanced
	v.Duration = d
	v.Time = Timestamp{}
	v.Efi = efi
}

// MarshalBinary marshals a ValidityPeriod.
func (v *ValidityPeriod) MarshalBinary() ([]byte, error) {
	switch v.Format {
	case VpfAbsolute:
		return v.Time.MarshalBinary()
	case VpfEnhanced:
		evpf := EnhancedValidityPeriodFormat(v.Efi & 0x7)
		if evpf > EvpfRelativeHHMMSS {
			return nil, EncodeError("fi", ErrInvalid)
		}
		dst := make([]byte, 7)
		dst[0] = v.Efi
		switch evpf {
		case EvpfRelative:
			dst[1] = enhancedRelativeByte(v.Duration)
		case EvpfRelativeSeconds:
			secs := v.Duration / time.Second
			if secs > 255 {
				secs = 255
			}
			dst[1] = byte(secs)
		case EvpfRelativeHHMMSS:
			f := []int{int(v.Duration.Hours()) % 100, int(v.Duration.Minutes()) % 60, int(v.Duration.Seconds()) % 60}
			for i, tf := range f {
				t, err := bcd.Encode(tf)
				// this should never trip, as the encoded values should always be valid, but just in case...
				if err != nil {
					return nil, EncodeError("enhanced", err)
				}
				dst[i+1] = t
			}
		}
		return dst, nil
	case VpfRelative:
		t := durationToRelative(v.Duration)
		return []byte{t}, nil
	case VpfNotPresent:
		return nil, nil
	}
	return nil, EncodeError("vpf", ErrInvalid)
}

// UnmarshalBinary unmarshals a ValidityPeriod stored in the given format.
// Returns the number of bytes read from the src, and any error detected
// during the unmarshalling.
func (v *ValidityPeriod) UnmarshalBinary(src []byte, vpf ValidityPeriodFormat) (int, error) {
	v.Format = VpfNotPresent
	switch vpf {
	case VpfAbsolute:
		t := Timestamp{}
		err := t.UnmarshalBinary(src)
		if err == nil {
			v.Time = t
			v.Format = vpf
		}
		return 7, err
	case VpfEnhanced:
		if len(src) < 7 {
			return 0, ErrUnderflow
		}
		efi := src[0]
		evpf := EnhancedValidityPeriodFormat(efi & 0x7)
		used := 0
		d := time.Duration(0)
		switch evpf {
		case EvpfNotPresent:
		case EvpfRelative:
			d = relativeToDuration(src[1])
			used = 1
		case EvpfRelativeSeconds:
			d = time.Second * time.Duration(src[1])
			used = 1
		case EvpfRelativeHHMMSS:
			i := make([]int, 3)
			var err error
			for idx := 0; idx < 3; idx++ {
				i[idx], err = bcd.Decode(src[idx+1])
				if err != nil {
					return 4, DecodeError("enhanced", 1, err)
				}
			}
			d = time.Duration(i[0])*time.Hour + time.Duration(i[1])*time.Minute + time.Duration(i[2])*time.Second
			used = 3
		default:
			return 7, DecodeError("enhanced", 0, ErrInvalid)
		}
		for i := used + 1; i < 7; i++ {
			if src[i] != 0 {
				return used + 1, DecodeError("enhanced", i, ErrNonZero)
			}
		}
		v.Efi = efi
		v.Duration = d
		v.Format = vpf
		return 7, nil
	case VpfRelative:
		if len(src) < 1 {
			return 0, ErrUnderflow
		}
		v.Duration = relativeToDuration(src[0])
		v.Format = vpf
		return 1, nil
	case VpfNotPresent:
		return 0, nil
	}
	return 0, DecodeError("vpf", 0, ErrInvalid)
}

// ValidityPeriodFormat identifies the format of the ValidityPeriod when encoded to binary.
type ValidityPeriodFormat byte

const (
	// VpfNotPresent indicates no VP is present.
	VpfNotPresent ValidityPeriodFormat = iota
	// VpfEnhanced indicates the VP is stored in enhanced format as per 3GPP TS 23.038 Section 9.2.3.12.3.
	VpfEnhanced
	// VpfRelative indicates the VP is stored in relative format as per 3GPP TS 23.038 Section 9.2.3.12.1.
	VpfRelative
	// VpfAbsolute indicates the VP is stored in absolute format as per 3GPP TS 23.038 Section 9.2.3.12.2.
	// The absolute format is the same format as the SCTS.
	VpfAbsolute
)

// EnhancedValidityPeriodFormat identifies the subformat of the ValidityPeriod
// when encoded to binary in enhanced format, as per 3GPP TS 23.038 Section 9.2.3.12.3
type EnhancedValidityPeriodFormat byte

const (
	// EvpfNotPresent indicates no VP is present.
	EvpfNotPresent EnhancedValidityPeriodFormat = iota
	// EvpfRelative indicates the VP is stored in relative format as per 3GPP TS 23.038 Section 9.2.3.12.1.
	EvpfRelative
	// EvpfRelativeSeconds indicates the VP is stored in relative format as an
	// integer number of seconds, from 0 to 255.
	EvpfRelativeSeconds
	// EvpfRelativeHHMMSS indicates the VP is stored in relative format as a period of
	// hours, minutes and seconds in semioctet format as per SCTS time.
	EvpfRelativeHHMMSS
	// All other values currently reserved.
)

// durationToRelative encodes the top-level TP-VP-Relative duration into its
// byte value, following ModemManager's validity_to_relative: a zero or
// negative duration defaults to 167 (24 hours) rather than being encoded
// literally as an immediate expiry.
func durationToRelative(d time.Duration) byte {
	m := int(d / time.Minute)
	if m <= 0 {
		return 167
	}
	return validityMinutesToRelative(m)
}

// enhancedRelativeByte encodes the relative sub-field of the Enhanced
// validity period format (3GPP TS 23.038 Section 9.2.3.12.3). ModemManager
// leaves the Enhanced format unimplemented, so there is no "zero means 24
// hours" quirk to inherit here: a zero duration is encoded literally as
// 0x00, unlike the top-level field handled by durationToRelative.
func enhancedRelativeByte(d time.Duration) byte {
	m := int(d / time.Minute)
	if m <= 0 {
		return 0
	}
	return validityMinutesToRelative(m)
}

// validityMinutesToRelative packs a validity period, in minutes, into the
// four TP-VP-Relative buckets defined by 3GPP TS 23.038 Section 9.2.3.12.1
// (5 minute steps up to 12 hours, 30 minute steps up to a day, 1 day steps
// up to a month, 1 week steps up to 63 weeks), rounding up to the next unit
// within a bucket exactly as ModemManager's validity_to_relative does.
func validityMinutesToRelative(m int) byte {
	switch {
	case m <= 720:
		if r := m % 5; r != 0 {
			m += 5 - r
		}
		return byte(m/5 - 1)
	case m <= 1440:
		if r := m % 30; r != 0 {
			m += 30 - r
		}
		if m > 1440 {
			m = 1440
		}
		return byte(143 + (m-720)/30)
	case m <= 43200:
		if r := m % 1440; r != 0 {
			m += 1440 - r
		}
		if m > 43200 {
			m = 43200
		}
		return byte(167 + (m-1440)/1440)
	case m <= 635040:
		if r := m % 10080; r != 0 {
			m += 10080 - r
		}
		if m > 635040 {
			m = 635040
		}
		return byte(196 + (m-40320)/10080)
	default:
		return 255
	}
}

// relativeToDuration decodes a TP-VP-Relative byte into a duration,
// following ModemManager's relative_to_validity. This is deliberately not
// the exact inverse of validityMinutesToRelative for codes above 167:
// relative_to_validity has no week-granularity bucket, so any code above
// 167 decodes to a whole number of days, even though encoding a duration of
// more than 30 days produces a week-bucketed code. A modem reporting back a
// week-range code is read as the (shorter) day-based duration that
// ModemManager itself would report, rather than "corrected" back to weeks.
func relativeToDuration(t byte) time.Duration {
	switch {
	case t <= 143:
		return time.Minute * 5 * time.Duration(t+1)
	case t <= 167:
		return time.Hour*12 + time.Minute*30*time.Duration(t-143)
	default:
		return time.Hour * 24 * time.Duration(t-166)
	}
}
