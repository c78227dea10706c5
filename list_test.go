// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package sms

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGuard struct{}

func (fakeGuard) Release() {}

type fakeTransport struct {
	mu sync.Mutex

	nextIndex uint32
	nextMR    byte

	writeErr      error
	sendByIdxErr  error
	sendByPDUErr  error
	deleteErr     error
	lockErr       error
	deletedIdx    []uint32
	wroteStorage  []Storage
	sentByIdx     []uint32
	sentByPDU     int
}

func (f *fakeTransport) WritePart(ctx context.Context, storage Storage, pdu []byte) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.wroteStorage = append(f.wroteStorage, storage)
	idx := f.nextIndex
	f.nextIndex++
	return idx, nil
}

func (f *fakeTransport) SendPartByIndex(ctx context.Context, index uint32) (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendByIdxErr != nil {
		return 0, f.sendByIdxErr
	}
	f.sentByIdx = append(f.sentByIdx, index)
	f.nextMR++
	return f.nextMR, nil
}

func (f *fakeTransport) SendPartByPDU(ctx context.Context, pdu []byte) (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendByPDUErr != nil {
		return 0, f.sendByPDUErr
	}
	f.sentByPDU++
	f.nextMR++
	return f.nextMR, nil
}

func (f *fakeTransport) DeletePart(ctx context.Context, index uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIdx = append(f.deletedIdx, index)
	return nil
}

func (f *fakeTransport) LockStorage(ctx context.Context, mem1, mem2 Storage) (StorageGuard, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	return fakeGuard{}, nil
}

func newSinglePart(number string) *Part {
	p := NewPart()
	p.PDUType = Submit
	p.Number = number
	p.Encoding = EncodingGSM7
	p.Text = "hi"
	return p
}

func TestListReceiveSinglepart(t *testing.T) {
	l := NewList()
	p := newSinglePart("+12345")
	p.ShouldConcat = false
	s, err := l.Receive(StorageSM, 0, p)
	require.Nil(t, err)
	assert.Equal(t, StateReceived, s.State)
	assert.Equal(t, 1, len(s.Parts))
	ev := <-l.Added()
	assert.Equal(t, s.Path, ev.Path)
	assert.True(t, ev.Received)
}

func TestListReceiveDuplicateStorage(t *testing.T) {
	l := NewList()
	p1 := newSinglePart("+12345")
	_, err := l.Receive(StorageSM, 3, p1)
	require.Nil(t, err)
	p2 := newSinglePart("+12345")
	_, err = l.Receive(StorageSM, 3, p2)
	assert.Equal(t, AssemblyDuplicate{Storage: StorageSM, Index: 3}, err)
}

func TestListReceiveMultipartAssembly(t *testing.T) {
	l := NewList()
	p1 := newSinglePart("+12345")
	p1.ShouldConcat = true
	p1.ConcatReference = 9
	p1.ConcatMax = 2
	p1.ConcatSequence = 1

	p2 := newSinglePart("+12345")
	p2.ShouldConcat = true
	p2.ConcatReference = 9
	p2.ConcatMax = 2
	p2.ConcatSequence = 2

	s1, err := l.Receive(StorageSM, 0, p1)
	require.Nil(t, err)
	assert.Equal(t, StateReceiving, s1.State)

	s2, err := l.Receive(StorageSM, 1, p2)
	require.Nil(t, err)
	assert.Same(t, s1, s2)
	assert.Equal(t, StateReceived, s2.State)
	assert.True(t, s2.MultipartIsComplete())

	ev := <-l.Added()
	assert.Equal(t, s1.Path, ev.Path)

	select {
	case ev := <-l.Added():
		t.Errorf("unexpected second Added event: %v", ev)
	default:
	}
}

func TestListReceiveMultipartSlotOccupied(t *testing.T) {
	l := NewList()
	p1 := newSinglePart("+12345")
	p1.ShouldConcat = true
	p1.ConcatReference = 9
	p1.ConcatMax = 2
	p1.ConcatSequence = 1
	_, err := l.Receive(StorageSM, 0, p1)
	require.Nil(t, err)

	p2 := newSinglePart("+12345")
	p2.ShouldConcat = true
	p2.ConcatReference = 9
	p2.ConcatMax = 2
	p2.ConcatSequence = 1
	_, err = l.Receive(StorageSM, 1, p2)
	assert.Equal(t, AssemblySlotOccupied, err)
}

func TestListReceiveAfterClose(t *testing.T) {
	l := NewList()
	l.Close()
	_, err := l.Receive(StorageSM, 0, newSinglePart("+12345"))
	assert.Equal(t, ErrClosed, err)
}

func TestListAdd(t *testing.T) {
	l := NewList()
	s := &Sms{Parts: []*Part{newSinglePart("+12345")}}
	l.Add(s)
	assert.NotEmpty(t, s.Path)
	ev := <-l.Added()
	assert.Equal(t, s.Path, ev.Path)
	assert.False(t, ev.Received)
}

func TestListNextMultipartReferenceUnique(t *testing.T) {
	l := NewList()
	seen := map[int]bool{}
	for i := 0; i < 10; i++ {
		ref := l.NextMultipartReference("+12345")
		require.False(t, seen[ref], "duplicate reference %d", ref)
		seen[ref] = true
		require.NotEqual(t, 0, ref)
	}
}

func TestListStore(t *testing.T) {
	l := NewList()
	ft := &fakeTransport{}
	s := &Sms{Storage: StorageSM, Parts: []*Part{newSinglePart("+12345"), newSinglePart("+12345")}}
	err := l.Store(context.Background(), ft, s)
	require.Nil(t, err)
	assert.Equal(t, StateStored, s.State)
	assert.Equal(t, 0, s.Parts[0].StorageIndex)
	assert.Equal(t, 1, s.Parts[1].StorageIndex)
}

func TestListStoreFailureNoRollback(t *testing.T) {
	l := NewList()
	ft := &fakeTransport{writeErr: &TransportError{Kind: Timeout}}
	s := &Sms{Storage: StorageSM, Parts: []*Part{newSinglePart("+12345")}}
	err := l.Store(context.Background(), ft, s)
	assert.NotNil(t, err)
	assert.Equal(t, StateSending, s.State)
}

func TestListSendStoredPart(t *testing.T) {
	l := NewList()
	ft := &fakeTransport{}
	p := newSinglePart("+12345")
	p.StorageIndex = 4
	s := &Sms{Storage: StorageSM, Parts: []*Part{p}}
	err := l.Send(context.Background(), ft, s)
	require.Nil(t, err)
	assert.Equal(t, StateSent, s.State)
	assert.Equal(t, []uint32{4}, ft.sentByIdx)
	assert.Equal(t, 0, ft.sentByPDU)
}

func TestListSendFallsBackOnNonTimeoutError(t *testing.T) {
	l := NewList()
	ft := &fakeTransport{sendByIdxErr: &TransportError{Kind: Refused}}
	p := newSinglePart("+12345")
	p.StorageIndex = 4
	s := &Sms{Storage: StorageSM, Parts: []*Part{p}}
	err := l.Send(context.Background(), ft, s)
	require.Nil(t, err)
	assert.Equal(t, 1, ft.sentByPDU)
}

func TestListSendDoesNotFallBackOnTimeout(t *testing.T) {
	l := NewList()
	ft := &fakeTransport{sendByIdxErr: &TransportError{Kind: Timeout}}
	p := newSinglePart("+12345")
	p.StorageIndex = 4
	s := &Sms{Storage: StorageSM, Parts: []*Part{p}}
	err := l.Send(context.Background(), ft, s)
	assert.NotNil(t, err)
	assert.Equal(t, 0, ft.sentByPDU)
}

func TestListSendUnstoredPart(t *testing.T) {
	l := NewList()
	ft := &fakeTransport{}
	p := newSinglePart("+12345")
	s := &Sms{Storage: StorageSM, Parts: []*Part{p}}
	err := l.Send(context.Background(), ft, s)
	require.Nil(t, err)
	assert.Equal(t, 1, ft.sentByPDU)
}

func TestListDelete(t *testing.T) {
	l := NewList()
	p := newSinglePart("+12345")
	s, err := l.Receive(StorageSM, 5, p)
	require.Nil(t, err)
	<-l.Added()
	s.Parts[0].StorageIndex = 5

	ft := &fakeTransport{}
	err = l.Delete(context.Background(), ft, s)
	require.Nil(t, err)
	assert.Equal(t, []uint32{5}, ft.deletedIdx)
	assert.Equal(t, -1, s.Parts[0].StorageIndex)

	ev := <-l.Deleted()
	assert.Equal(t, s.Path, ev.Path)
}

func TestListDeletePartialFailure(t *testing.T) {
	l := NewList()
	p1 := newSinglePart("+12345")
	p1.StorageIndex = 1
	p2 := newSinglePart("+12345")
	p2.StorageIndex = 2
	s := &Sms{Storage: StorageSM, Parts: []*Part{p1, p2}}

	ft := &fakeTransport{deleteErr: &TransportError{Kind: Refused}}
	err := l.Delete(context.Background(), ft, s)
	require.NotNil(t, err)
	dr, ok := err.(*DeleteResult)
	require.True(t, ok)
	assert.Equal(t, 2, dr.Failed)
	assert.Equal(t, -1, p1.StorageIndex)
	assert.Equal(t, -1, p2.StorageIndex)
}
