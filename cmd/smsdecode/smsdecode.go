// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/modemkit/sms"
	"github.com/modemkit/sms/encoding/tpdu"
	"github.com/modemkit/sms/ms/pdumode"
)

func main() {
	pm := flag.Bool("p", false, "PDU is prefixed with SCA (PDU mode)")
	orig := flag.Bool("o", false, "PDU is mobile originated")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	tp, smsc, err := decode(flag.Arg(0), *pm, *orig)
	if err != nil {
		log.Fatal(err)
	}
	if smsc != nil {
		spew.Dump(smsc)
	}
	spew.Dump(tp)
}

// decode parses a hex-encoded PDU, optionally stripping a leading SMSC
// envelope, and decodes the remaining TPDU in the given direction.
func decode(pdu string, pm, mo bool) (interface{}, *pdumode.SMSCAddress, error) {
	drn := tpdu.MT
	if mo {
		drn = tpdu.MO
	}
	b, err := hex.DecodeString(pdu)
	if err != nil {
		return nil, nil, err
	}
	tb := b
	var smsc *pdumode.SMSCAddress
	if pm {
		s, ntb, err := pdumode.Decode(b)
		if err != nil {
			return nil, nil, err
		}
		smsc = s
		tb = ntb
	}
	tp, err := sms.Decode(tb, drn)
	if err != nil {
		return nil, smsc, err
	}
	return tp, smsc, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: smsdecode [-p] [-o] <sms>\n")
	flag.PrintDefaults()
}
