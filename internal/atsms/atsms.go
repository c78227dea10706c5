// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package atsms is a reference sms.Transport backed by a serial AT command
// dialog, for modems that speak the 3GPP TS 27.005 PDU-mode AT command set
// (+CMGW, +CMGS, +CMSS, +CMGD, +CPMS).
package atsms

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tarm/serial"

	"github.com/modemkit/sms"
)

// ctrlZ terminates a PDU-mode AT+CMGW/AT+CMGS body.
const ctrlZ = 0x1a

// Transport drives a serial AT dialog implementing sms.Transport. One
// Transport serialises all commands on its port; callers wanting concurrent
// access to independent storage banks must open separate ports.
type Transport struct {
	mu      sync.Mutex
	port    *serial.Port
	reader  *bufio.Reader
	timeout time.Duration
}

// Open opens dev at baud and puts the modem into PDU mode (AT+CMGF=0).
func Open(dev string, baud int, timeout time.Duration) (*Transport, error) {
	p, err := serial.OpenPort(&serial.Config{Name: dev, Baud: baud, ReadTimeout: timeout})
	if err != nil {
		return nil, &sms.TransportError{Kind: sms.Malformed, Err: err}
	}
	t := &Transport{port: p, reader: bufio.NewReader(p), timeout: timeout}
	if _, err := t.command(context.Background(), "AT+CMGF=0"); err != nil {
		p.Close()
		return nil, err
	}
	return t, nil
}

// Close releases the underlying serial port.
func (t *Transport) Close() error {
	return t.port.Close()
}

// command sends cmd, terminated by CRLF, and reads lines until OK, ERROR, or
// a +CME/+CMS ERROR, returning the intervening response lines. Grounded on
// kogeler-tooling/sms-to-telegram's SimpleAT.CommandWithTimeout, reworked to
// honour ctx cancellation instead of a free-running poll loop.
func (t *Transport) command(ctx context.Context, cmd string) ([]string, error) {
	return t.commandBody(ctx, cmd, nil)
}

func (t *Transport) commandBody(ctx context.Context, cmd string, body []byte) ([]string, error) {
	if _, err := t.port.Write([]byte(cmd + "\r")); err != nil {
		return nil, &sms.TransportError{Kind: sms.Malformed, Err: err}
	}
	if body != nil {
		if _, err := t.port.Write(body); err != nil {
			return nil, &sms.TransportError{Kind: sms.Malformed, Err: err}
		}
		if _, err := t.port.Write([]byte{ctrlZ}); err != nil {
			return nil, &sms.TransportError{Kind: sms.Malformed, Err: err}
		}
	}

	type result struct {
		lines []string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		lines, err := t.readReply(cmd)
		done <- result{lines, err}
	}()

	select {
	case <-ctx.Done():
		return nil, &sms.TransportError{Kind: sms.Timeout, Err: ctx.Err()}
	case r := <-done:
		return r.lines, r.err
	}
}

func (t *Transport) readReply(echo string) ([]string, error) {
	var lines []string
	for {
		line, err := t.reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			return nil, &sms.TransportError{Kind: sms.Timeout, Err: err}
		}
		if line == "" || line == echo || line == ">" {
			continue
		}
		if line == "OK" {
			return lines, nil
		}
		if line == "ERROR" {
			return nil, &sms.TransportError{Kind: sms.Refused, Err: fmt.Errorf("ERROR")}
		}
		if strings.HasPrefix(line, "+CME ERROR:") || strings.HasPrefix(line, "+CMS ERROR:") {
			code, _ := strconv.Atoi(strings.TrimSpace(line[strings.LastIndex(line, ":")+1:]))
			return nil, &sms.TransportError{Kind: sms.Refused, Code: code, Err: fmt.Errorf("%s", line)}
		}
		lines = append(lines, line)
	}
}

func storageName(s sms.Storage) string {
	switch s {
	case sms.StorageSM:
		return "SM"
	case sms.StorageME:
		return "ME"
	case sms.StorageMT:
		return "MT"
	case sms.StorageSR:
		return "SR"
	case sms.StorageBM:
		return "BM"
	case sms.StorageTA:
		return "TA"
	default:
		return "SM"
	}
}

func parseIntReply(lines []string, prefix string) (int, error) {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			v := strings.TrimSpace(strings.TrimPrefix(l, prefix))
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = v[:i]
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return 0, &sms.TransportError{Kind: sms.Malformed, Err: err}
			}
			return n, nil
		}
	}
	return 0, &sms.TransportError{Kind: sms.Malformed, Err: fmt.Errorf("no %s reply", prefix)}
}

// WritePart implements sms.Transport.
func (t *Transport) WritePart(ctx context.Context, storage sms.Storage, pdu []byte) (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := storageName(storage)
	if _, err := t.command(ctx, fmt.Sprintf(`AT+CPMS="%s","%s","%s"`, n, n, n)); err != nil {
		return 0, err
	}
	length := len(pdu) // TODO: subtract SMSC octets once EncodePart's tpduStart is threaded through
	lines, err := t.commandBody(ctx, fmt.Sprintf("AT+CMGW=%d", length), []byte(strings.ToUpper(hex.EncodeToString(pdu))))
	if err != nil {
		return 0, err
	}
	idx, err := parseIntReply(lines, "+CMGW:")
	if err != nil {
		return 0, err
	}
	return uint32(idx), nil
}

// SendPartByIndex implements sms.Transport.
func (t *Transport) SendPartByIndex(ctx context.Context, index uint32) (byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines, err := t.command(ctx, fmt.Sprintf("AT+CMSS=%d", index))
	if err != nil {
		return 0, err
	}
	mr, err := parseIntReply(lines, "+CMSS:")
	if err != nil {
		return 0, err
	}
	return byte(mr), nil
}

// SendPartByPDU implements sms.Transport.
func (t *Transport) SendPartByPDU(ctx context.Context, pdu []byte) (byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	length := len(pdu)
	lines, err := t.commandBody(ctx, fmt.Sprintf("AT+CMGS=%d", length), []byte(strings.ToUpper(hex.EncodeToString(pdu))))
	if err != nil {
		return 0, err
	}
	mr, err := parseIntReply(lines, "+CMGS:")
	if err != nil {
		return 0, err
	}
	return byte(mr), nil
}

// DeletePart implements sms.Transport.
func (t *Transport) DeletePart(ctx context.Context, index uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.command(ctx, fmt.Sprintf("AT+CMGD=%d", index))
	return err
}

// storageGuard is a no-op sms.StorageGuard: this Transport already
// serialises every command on t.mu, so LockStorage only needs to switch the
// active storage bank, which WritePart/DeletePart already do per call.
type storageGuard struct{}

func (storageGuard) Release() {}

// LockStorage implements sms.Transport. The modem's storage bank is
// selected per-command via AT+CPMS, so no separate locking is required
// beyond the Transport's own command mutex.
func (t *Transport) LockStorage(ctx context.Context, mem1, mem2 sms.Storage) (sms.StorageGuard, error) {
	return storageGuard{}, nil
}
