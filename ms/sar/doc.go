// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package sar provides capabilties to segment large messages into a set of
// concatenated Submit TPDUs for transmit, and to collect the set of
// Deliver TPDUs corresponding to a received message.
package sar
