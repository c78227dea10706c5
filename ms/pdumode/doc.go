// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package pdumode provides functions to encode messages to transmit SMSs, and
// decode messages received SMSs, via a GSM modem in PDU mode.
package pdumode
