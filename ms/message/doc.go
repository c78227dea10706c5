// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package message provides a higher level abstraction of message which is
// passed via SMS TPDUs, either singly or as a set of concatenated TPDUs.
package message
