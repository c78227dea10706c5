// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Command smsctl stores, sends, and deletes SMS messages against a modem
// reachable over a serial AT command dialog.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/modemkit/sms"
	"github.com/modemkit/sms/internal/atsms"
)

func main() {
	flag.Usage = usage
	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "store":
		err = runStore(args)
	case "send":
		err = runSend(args)
	case "delete":
		err = runDelete(args)
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func openTransport(fs *flag.FlagSet, dev *string, baud *int, timeout *time.Duration) (*atsms.Transport, error) {
	if *dev == "" {
		fs.Usage()
		os.Exit(1)
	}
	return atsms.Open(*dev, *baud, *timeout)
}

func runStore(args []string) error {
	fs := flag.NewFlagSet("store", flag.ExitOnError)
	dev := fs.String("dev", "", "serial device the modem is attached to")
	baud := fs.Int("baud", 115200, "serial baud rate")
	timeout := fs.Duration("timeout", 5*time.Second, "per-command timeout")
	number := fs.String("number", "", "destination number in international format")
	msg := fs.String("message", "", "message text to store")
	storage := fs.String("storage", "SM", "storage bank (SM, ME, MT, SR, BM, TA)")
	fs.Parse(args)
	if *number == "" || *msg == "" {
		fs.Usage()
		os.Exit(1)
	}

	t, err := openTransport(fs, dev, baud, timeout)
	if err != nil {
		return err
	}
	defer t.Close()

	l := sms.NewList()
	s, err := buildSubmit(l, *number, *msg, *storage)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := l.Store(ctx, t, s); err != nil {
		return err
	}
	for i, p := range s.Parts {
		fmt.Printf("part %d stored at index %d\n", i+1, p.StorageIndex)
	}
	return nil
}

func runSend(args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	dev := fs.String("dev", "", "serial device the modem is attached to")
	baud := fs.Int("baud", 115200, "serial baud rate")
	timeout := fs.Duration("timeout", 5*time.Second, "per-command timeout")
	number := fs.String("number", "", "destination number in international format")
	msg := fs.String("message", "", "message text to send")
	index := fs.Int("index", -1, "storage index of an already-stored part; -1 sends fresh")
	storage := fs.String("storage", "SM", "storage bank (SM, ME, MT, SR, BM, TA)")
	fs.Parse(args)
	if *number == "" || *msg == "" {
		fs.Usage()
		os.Exit(1)
	}

	t, err := openTransport(fs, dev, baud, timeout)
	if err != nil {
		return err
	}
	defer t.Close()

	l := sms.NewList()
	s, err := buildSubmit(l, *number, *msg, *storage)
	if err != nil {
		return err
	}
	if *index >= 0 {
		s.Parts[0].StorageIndex = *index
		s.State = sms.StateStored
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := l.Send(ctx, t, s); err != nil {
		return err
	}
	for i, p := range s.Parts {
		fmt.Printf("part %d sent, message reference %d\n", i+1, p.MessageReference)
	}
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	dev := fs.String("dev", "", "serial device the modem is attached to")
	baud := fs.Int("baud", 115200, "serial baud rate")
	timeout := fs.Duration("timeout", 5*time.Second, "per-command timeout")
	index := fs.Int("index", -1, "storage index to delete")
	storage := fs.String("storage", "SM", "storage bank (SM, ME, MT, SR, BM, TA)")
	fs.Parse(args)
	if *index < 0 {
		fs.Usage()
		os.Exit(1)
	}

	t, err := openTransport(fs, dev, baud, timeout)
	if err != nil {
		return err
	}
	defer t.Close()

	l := sms.NewList()
	p := sms.NewPart()
	p.StorageIndex = *index
	s := &sms.Sms{Storage: parseStorage(*storage), Parts: []*sms.Part{p}}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := l.Delete(ctx, t, s); err != nil {
		return err
	}
	fmt.Printf("deleted index %d\n", *index)
	return nil
}

// buildSubmit splits msg into its Parts and wraps them in a fresh Sms,
// allocating a shared concatenation reference via l when the message
// requires more than one part.
func buildSubmit(l *sms.List, number, msg, storage string) (*sms.Sms, error) {
	parts, err := sms.SplitText(msg)
	if err != nil {
		return nil, err
	}
	ref := 0
	if len(parts) > 1 {
		ref = l.NextMultipartReference(number)
	}
	for _, p := range parts {
		p.PDUType = sms.Submit
		p.Number = number
		if p.ShouldConcat {
			p.ConcatReference = ref
		}
	}
	return &sms.Sms{Storage: parseStorage(storage), Parts: parts}, nil
}

func parseStorage(s string) sms.Storage {
	switch s {
	case "SM":
		return sms.StorageSM
	case "ME":
		return sms.StorageME
	case "MT":
		return sms.StorageMT
	case "SR":
		return sms.StorageSR
	case "BM":
		return sms.StorageBM
	case "TA":
		return sms.StorageTA
	default:
		return sms.StorageUnknown
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "smsctl stores, sends, and deletes SMS messages via a serial AT modem.\n\n"+
		"Usage:\n"+
		"  smsctl store  -dev <device> -number <number> -message <text> [-storage SM] [-baud 115200] [-timeout 5s]\n"+
		"  smsctl send   -dev <device> -number <number> -message <text> [-index N] [-storage SM] [-baud 115200] [-timeout 5s]\n"+
		"  smsctl delete -dev <device> -index <N> [-storage SM] [-baud 115200] [-timeout 5s]\n")
}
