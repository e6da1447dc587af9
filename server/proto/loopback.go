package proto

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Loopback operations after Close.
var ErrClosed = errors.New("proto: connection closed")

// Loopback is an in-memory Conn pair for tests: packets written on one end
// are read on the other.
type Loopback struct {
	in, out chan Packet

	closeOnce *sync.Once
	closed    chan struct{}
}

// NewLoopback returns the two ends of an in-memory connection. The buffer
// bounds how many packets may be in flight per direction before writes
// block.
func NewLoopback(buffer int) (client, server *Loopback) {
	a := make(chan Packet, buffer)
	b := make(chan Packet, buffer)
	closed := make(chan struct{})
	once := &sync.Once{}
	client = &Loopback{in: a, out: b, closed: closed, closeOnce: once}
	server = &Loopback{in: b, out: a, closed: closed, closeOnce: once}
	return client, server
}

// ReadPacket ...
func (l *Loopback) ReadPacket() (Packet, error) {
	select {
	case pkt := <-l.in:
		return pkt, nil
	case <-l.closed:
		// Drain what was written before the close.
		select {
		case pkt := <-l.in:
			return pkt, nil
		default:
			return nil, ErrClosed
		}
	}
}

// TryReadPacket reads a pending packet without blocking.
func (l *Loopback) TryReadPacket() (Packet, bool) {
	select {
	case pkt := <-l.in:
		return pkt, true
	default:
		return nil, false
	}
}

// WritePacket ...
func (l *Loopback) WritePacket(pkt Packet) error {
	select {
	case <-l.closed:
		return ErrClosed
	default:
	}
	select {
	case l.out <- pkt:
		return nil
	case <-l.closed:
		return ErrClosed
	}
}

// Close ...
func (l *Loopback) Close() error {
	l.closeOnce.Do(func() { close(l.closed) })
	return nil
}

// RemoteAddr ...
func (l *Loopback) RemoteAddr() string { return "loopback" }
