// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package readme holds the snippets referenced from the module's README.
// It is never imported; it exists so the snippets are compiled and kept in
// sync with the real API instead of rotting in a markdown code fence.
package readme

import (
	"context"

	"github.com/modemkit/sms"
	"github.com/modemkit/sms/encoding/tpdu"
)

func submit() ([]byte, error) {
	parts, err := sms.SplitText("hello world")
	if err != nil {
		return nil, err
	}
	parts[0].Number = "+12345"
	pdu, _, err := sms.EncodePart(parts[0])
	return pdu, err
}

func submitMultipart() ([][]byte, error) {
	parts, err := sms.SplitText("a message long enough to need more than one SMS part, repeated until it overflows a single 160 septet segment")
	if err != nil {
		return nil, err
	}
	var pdus [][]byte
	for _, p := range parts {
		p.Number = "+12345"
		pdu, _, err := sms.EncodePart(p)
		if err != nil {
			return nil, err
		}
		pdus = append(pdus, pdu)
	}
	return pdus, nil
}

func decodeOne(pdu []byte) (*sms.Part, error) {
	return sms.DecodePart(pdu, tpdu.MT)
}

func receive(l *sms.List, storage sms.Storage, index uint32, pdu []byte) (*sms.Sms, error) {
	p, err := sms.DecodePart(pdu, tpdu.MT)
	if err != nil {
		return nil, err
	}
	return l.Receive(storage, index, p)
}

func store(ctx context.Context, l *sms.List, t sms.Transport, s *sms.Sms) error {
	return l.Store(ctx, t, s)
}

func send(ctx context.Context, l *sms.List, t sms.Transport, s *sms.Sms) error {
	return l.Send(ctx, t, s)
}

func deleteSms(ctx context.Context, l *sms.List, t sms.Transport, s *sms.Sms) error {
	return l.Delete(ctx, t, s)
}
