// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Command smscounter reports how a message will be segmented into SMS
// parts: the alphabet it will be encoded with, how many parts it takes and
// how much room is left in the last one.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/modemkit/sms/encoding/gsm7"
	"github.com/modemkit/sms/encoding/ucs2"
)

const (
	gsm7SingleMax    = gsm7.MaxSeptets
	gsm7MultipartMax = gsm7.MaxSeptets - 7
	ucs2SingleMax    = ucs2.MaxOctets / 2
	ucs2MultipartMax = (ucs2.MaxOctets - 6) / 2
)

// Count describes the segmentation of a message into SMS parts.
type Count struct {
	// Encoding is the alphabet the message will be carried in - "7BIT" or
	// "UCS-2".
	Encoding string
	// Messages is the number of parts the message will be split into.
	Messages int
	// Length is the size of the encoded message, in septets for 7BIT or
	// in UTF-16 code units for UCS-2.
	Length int
	// Total is Length again, kept distinct from Length as the field that
	// would instead carry the UDH-inclusive size once multipart concat
	// headers are accounted for.
	Total int
	// Max is the capacity of a single part, given Messages.
	Max int
	// Remaining is the unused capacity in the last part.
	Remaining int
}

// NewCount reports how msg will be segmented into SMS parts. nli selects a
// national language locking/extension table; only the default alphabet
// (nli == 0) is supported.
func NewCount(msg string, nli int) (Count, error) {
	if nli != 0 {
		return Count{}, fmt.Errorf("smscounter: national language table %d is not supported", nli)
	}
	e := gsm7.NewEncoder()
	if septets, err := e.Encode([]byte(msg)); err == nil {
		return count(len(septets), "7BIT", gsm7SingleMax, gsm7MultipartMax), nil
	}
	encoded := ucs2.Encode([]rune(msg))
	return count(len(encoded)/2, "UCS-2", ucs2SingleMax, ucs2MultipartMax), nil
}

// count measures n encoded units - septets for 7BIT, UTF-16 code units for
// UCS-2 - against the given single and multipart part capacities.
func count(n int, alphabet string, singleMax, multipartMax int) Count {
	if n <= singleMax {
		return Count{alphabet, 1, n, n, singleMax, singleMax - n}
	}
	messages := (n + multipartMax - 1) / multipartMax
	return Count{alphabet, messages, n, n, multipartMax, messages*multipartMax - n}
}

func main() {
	nli := flag.Int("nli", 0, "national language identifier locking table")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: smscounter [-nli N] <message>")
		os.Exit(1)
	}
	c, err := NewCount(flag.Arg(0), *nli)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("encoding: %s\n", c.Encoding)
	fmt.Printf("messages: %d\n", c.Messages)
	fmt.Printf("length: %d\n", c.Length)
	fmt.Printf("max per message: %d\n", c.Max)
	fmt.Printf("remaining: %d\n", c.Remaining)
}
