// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package sms

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// State is the lifecycle state of an Sms.
type State int

const (
	// StateUnknown is the zero state of an Sms not yet assigned one of the
	// other states.
	StateUnknown State = iota
	// StateReceiving indicates an inbound multipart Sms is still missing
	// one or more parts.
	StateReceiving
	// StateReceived indicates every part of an inbound Sms has arrived.
	StateReceived
	// StateSending indicates an outbound Sms is in the process of being
	// stored and/or sent.
	StateSending
	// StateSent indicates every part of an outbound Sms has been sent.
	StateSent
	// StateStored indicates every part of an Sms is written to modem
	// storage but has not (yet, or ever) been sent.
	StateStored
)

// Sms is one logical message composed of one or more Parts.
type Sms struct {
	Parts   []*Part
	State   State
	Storage Storage
	// Path is an opaque identifier generated on first export, for use by
	// outer layers (e.g. a D-Bus object path). It is never interpreted by
	// this package.
	Path string

	MultipartReference int
	MaxParts           int

	CreatedAt  time.Time
	ModifiedAt time.Time
}

// Number returns the destination/originator number common to every part of
// the Sms, or "" if it has no parts.
func (s *Sms) Number() string {
	if len(s.Parts) == 0 {
		return ""
	}
	return s.Parts[0].Number
}

// MultipartIsComplete reports whether every slot of a multipart Sms has been
// filled. A singlepart Sms is always complete.
func (s *Sms) MultipartIsComplete() bool {
	if s.MaxParts <= 1 {
		return len(s.Parts) == 1 && s.Parts[0] != nil
	}
	if len(s.Parts) != s.MaxParts {
		return false
	}
	for _, p := range s.Parts {
		if p == nil {
			return false
		}
	}
	return true
}

// Event describes a change in the set of Sms held by a List.
type Event struct {
	Path     string
	Received bool
}

type storageKey struct {
	storage Storage
	index   uint32
}

type multipartKey struct {
	number  string
	ref     int
	maxPart int
}

// List owns the set of Sms for one modem. It is not safe for concurrent use
// - per spec.md §5 the core is single-threaded cooperative - except that
// Added/Deleted may be drained from another goroutine.
type List struct {
	mutex sync.Mutex

	all       map[string]*Sms // by Path
	byStorage map[storageKey]*Sms
	multipart map[multipartKey]*Sms

	refCounters map[string]*uint32 // per destination number

	pathSeq int64

	added   chan Event
	deleted chan Event
	closed  bool
}

// NewList creates an empty List.
func NewList() *List {
	return &List{
		all:         make(map[string]*Sms),
		byStorage:   make(map[storageKey]*Sms),
		multipart:   make(map[multipartKey]*Sms),
		refCounters: make(map[string]*uint32),
		added:       make(chan Event, 16),
		deleted:     make(chan Event, 16),
	}
}

// Added returns the channel on which a new-or-completed Sms is reported.
func (l *List) Added() <-chan Event {
	return l.added
}

// Deleted returns the channel on which a successfully deleted Sms is
// reported.
func (l *List) Deleted() <-chan Event {
	return l.deleted
}

// Close shuts down the List's event channels. Subsequent Receive calls
// return ErrClosed.
func (l *List) Close() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.added)
	close(l.deleted)
}

func (l *List) nextPath() string {
	l.pathSeq++
	return fmt.Sprintf("/sms/%d", l.pathSeq)
}

// Receive places an incoming Part, read from the given storage slot, into
// the List, per spec.md §4.G:
//
//  1. A duplicate (storage, index) pair is rejected with AssemblyDuplicate.
//  2. A part that does not declare concatenation becomes a new singlepart
//     Sms in state StateReceived, and is reported on Added.
//  3. A concatenated part is matched to an existing multipart Sms by
//     (number, concat reference, concat max), or starts a new one in state
//     StateReceiving; once every slot is filled the Sms transitions to
//     StateReceived and is reported on Added exactly once.
func (l *List) Receive(storage Storage, index uint32, part *Part) (*Sms, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.closed {
		return nil, ErrClosed
	}
	sk := storageKey{storage, index}
	if _, ok := l.byStorage[sk]; ok {
		return nil, AssemblyDuplicate{Storage: storage, Index: index}
	}
	part.StorageIndex = int(index)
	now := time.Now()

	if !part.ShouldConcat {
		s := &Sms{
			Parts:      []*Part{part},
			State:      StateReceived,
			Storage:    storage,
			MaxParts:   1,
			CreatedAt:  now,
			ModifiedAt: now,
		}
		s.Path = l.nextPath()
		l.all[s.Path] = s
		l.byStorage[sk] = s
		l.added <- Event{Path: s.Path, Received: true}
		return s, nil
	}

	mk := multipartKey{part.Number, part.ConcatReference, part.ConcatMax}
	s, ok := l.multipart[mk]
	if !ok {
		s = &Sms{
			Parts:              make([]*Part, part.ConcatMax),
			State:               StateReceiving,
			Storage:             storage,
			MultipartReference:  part.ConcatReference,
			MaxParts:            part.ConcatMax,
			CreatedAt:           now,
			ModifiedAt:          now,
		}
		s.Path = l.nextPath()
		l.all[s.Path] = s
		l.multipart[mk] = s
	}
	seq := part.ConcatSequence - 1
	if seq < 0 || seq >= len(s.Parts) {
		return nil, AssemblySlotOccupied
	}
	if s.Parts[seq] != nil {
		return nil, AssemblySlotOccupied
	}
	s.Parts[seq] = part
	s.ModifiedAt = now
	l.byStorage[sk] = s
	if s.MultipartIsComplete() && s.State != StateReceived {
		s.State = StateReceived
		delete(l.multipart, mk)
		l.added <- Event{Path: s.Path, Received: true}
	}
	return s, nil
}

// Add registers an outbound Sms (constructed from high-level properties,
// not yet stored or sent) and reports it on Added.
func (l *List) Add(s *Sms) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	now := time.Now()
	s.CreatedAt = now
	s.ModifiedAt = now
	s.MaxParts = len(s.Parts)
	if s.Path == "" {
		s.Path = l.nextPath()
	}
	l.all[s.Path] = s
	if !l.closed {
		l.added <- Event{Path: s.Path, Received: false}
	}
}

// NextMultipartReference returns a locally-allocated multipart reference for
// an outbound Sms to the given destination number. Per the Open Question in
// spec.md §9/§4.G, this package uses a deterministic per-number atomic
// counter rather than the random-probe scheme, and probes past any
// reference already held by a stored Submit Sms to the same number
// (invariant 3). Reference 0 is never returned.
func (l *List) NextMultipartReference(number string) int {
	l.mutex.Lock()
	c, ok := l.refCounters[number]
	if !ok {
		var seed uint32
		c = &seed
		l.refCounters[number] = c
	}
	held := map[int]bool{}
	for _, s := range l.all {
		if len(s.Parts) > 0 && s.Parts[0] != nil && s.Parts[0].PDUType == Submit && s.Number() == number {
			held[s.MultipartReference] = true
		}
	}
	l.mutex.Unlock()
	for {
		v := atomic.AddUint32(c, 1)
		ref := int(v%65535) + 1
		if !held[ref] {
			return ref
		}
	}
}

// Store runs the store state machine of spec.md §4.H: each part is written
// to the transport in order, recording the storage index it returns. On
// any failure the sequence aborts and the error propagates without rolling
// back parts already written (see DESIGN.md Open Question resolution 3,
// matching the deliberately preserved upstream behaviour).
func (l *List) Store(ctx context.Context, t Transport, s *Sms) error {
	g, err := t.LockStorage(ctx, s.Storage, StorageUnknown)
	if err != nil {
		return err
	}
	defer g.Release()
	s.State = StateSending
	for _, p := range s.Parts {
		pdu, _, err := EncodePart(p)
		if err != nil {
			return err
		}
		idx, err := t.WritePart(ctx, s.Storage, pdu)
		if err != nil {
			return err
		}
		p.StorageIndex = int(idx)
	}
	s.State = StateStored
	s.ModifiedAt = time.Now()
	return nil
}

// Send runs the send state machine of spec.md §4.H: if the Sms is already
// stored, each part is first sent by its storage index; on any error other
// than a transport timeout, that part falls back to being encoded and sent
// fresh. Either way each part's MessageReference is populated from the
// transport's reply.
func (l *List) Send(ctx context.Context, t Transport, s *Sms) error {
	g, err := t.LockStorage(ctx, s.Storage, StorageUnknown)
	if err != nil {
		return err
	}
	defer g.Release()
	s.State = StateSending
	for _, p := range s.Parts {
		mr, err := l.sendPart(ctx, t, p)
		if err != nil {
			return err
		}
		p.MessageReference = mr
	}
	s.State = StateSent
	s.ModifiedAt = time.Now()
	return nil
}

func (l *List) sendPart(ctx context.Context, t Transport, p *Part) (byte, error) {
	if p.StorageIndex >= 0 {
		mr, err := t.SendPartByIndex(ctx, uint32(p.StorageIndex))
		if err == nil {
			return mr, nil
		}
		if te, ok := err.(*TransportError); ok && te.Kind == Timeout {
			return 0, err
		}
	}
	pdu, _, err := EncodePart(p)
	if err != nil {
		return 0, err
	}
	return t.SendPartByPDU(ctx, pdu)
}

// Delete runs the delete state machine of spec.md §4.H: every part with a
// storage index is deleted; the index is cleared unconditionally regardless
// of the outcome (the in-memory state must not claim a slot the caller is
// done with), and a DeleteResult aggregate error is returned counting any
// per-part failures.
func (l *List) Delete(ctx context.Context, t Transport, s *Sms) error {
	g, err := t.LockStorage(ctx, s.Storage, StorageUnknown)
	if err != nil {
		return err
	}
	defer g.Release()
	failed := 0
	var cause error
	for _, p := range s.Parts {
		if p == nil || p.StorageIndex < 0 {
			continue
		}
		if err := t.DeletePart(ctx, uint32(p.StorageIndex)); err != nil {
			failed++
			cause = err
		}
		l.mutex.Lock()
		delete(l.byStorage, storageKey{s.Storage, uint32(p.StorageIndex)})
		l.mutex.Unlock()
		p.StorageIndex = -1
	}
	if failed > 0 {
		return &DeleteResult{Failed: failed, Cause: cause}
	}
	l.mutex.Lock()
	delete(l.all, s.Path)
	closed := l.closed
	l.mutex.Unlock()
	if !closed {
		l.deleted <- Event{Path: s.Path}
	}
	return nil
}
