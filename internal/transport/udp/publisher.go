// SPDX-License-Identifier: MIT
package udp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	applog "dwflag/internal/log"
	"dwflag/internal/transport"
)

// Publisher packs flag-run summaries into a binary format and sends
// them over UDP through a Sender. Summaries are queued by Send and
// drained by a goroutine managed with Start and Stop.
type Publisher struct {
	sender *Sender

	queue    chan transport.Summary
	doneChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	mu       sync.Mutex // protects doneChan during Start/Stop

	started bool

	sequenceNum  uint32
	packetBuffer *bytes.Buffer // reusable buffer for packet construction
}

// NewPublisher creates a Publisher around an established Sender.
func NewPublisher(sender *Sender) (*Publisher, error) {
	if sender == nil {
		return nil, fmt.Errorf("udp: publisher needs a sender")
	}
	return &Publisher{
		sender:       sender,
		queue:        make(chan transport.Summary, 16),
		packetBuffer: new(bytes.Buffer),
	}, nil
}

// Start launches the goroutine draining queued summaries. Safe to call
// multiple times; subsequent calls are no-ops while running.
func (p *Publisher) Start() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		applog.Warnf("udp: publisher Start called but already running")
		return
	}
	p.started = true
	p.doneChan = make(chan struct{})
	p.stopOnce = sync.Once{}
	doneChan := p.doneChan
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		applog.Debugf("udp: publisher goroutine started")
		for {
			select {
			case sum := <-p.queue:
				p.buildAndSendPacket(sum)
			case <-doneChan:
				// Drain anything queued before the stop signal.
				for {
					select {
					case sum := <-p.queue:
						p.buildAndSendPacket(sum)
					default:
						return
					}
				}
			}
		}
	}()
}

// Stop signals the publisher goroutine to terminate and waits for it.
// Safe to call multiple times.
func (p *Publisher) Stop() error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil
	}
	p.stopOnce.Do(func() {
		close(p.doneChan)
		p.started = false
	})
	p.mu.Unlock()

	p.wg.Wait()
	applog.Debugf("udp: publisher goroutine finished")
	return nil
}

// Send queues a summary for publishing. Never blocks; when the queue is
// full the summary is dropped and logged. Implements transport.Transport.
func (p *Publisher) Send(data any) error {
	sum, ok := data.(transport.Summary)
	if !ok {
		return fmt.Errorf("udp: publisher can only send transport.Summary, got %T", data)
	}
	select {
	case p.queue <- sum:
	default:
		applog.Warnf("udp: publisher queue full, dropping summary")
	}
	return nil
}

/*
UDP Packet Structure (BigEndian)

| Field           | Data Type | Size (Bytes) | Description                 |
|-----------------|-----------|--------------|-----------------------------|
| Sequence Number | uint32    | 4            | Monotonically increasing    |
| Timestamp       | int64     | 8            | Nanoseconds since epoch     |
| Rows            | uint32    | 4            | Spectrogram time rows       |
| Cols            | uint32    | 4            | Spectrogram channels        |
| Product Count   | uint16    | 2            | Number of products (N)      |
| Products        | N x 6     | N * 6        | Per product:                |
|                 |           |              |   Label   uint16            |
|                 |           |              |   Flagged uint32            |
*/

// buildAndSendPacket packs one summary and sends it through the Sender.
func (p *Publisher) buildAndSendPacket(sum transport.Summary) {
	p.sequenceNum++
	timestamp := time.Now().UnixNano()

	p.packetBuffer.Reset()

	err := binary.Write(p.packetBuffer, binary.BigEndian, p.sequenceNum)
	if err == nil {
		err = binary.Write(p.packetBuffer, binary.BigEndian, timestamp)
	}
	if err == nil {
		err = binary.Write(p.packetBuffer, binary.BigEndian, uint32(sum.Rows))
	}
	if err == nil {
		err = binary.Write(p.packetBuffer, binary.BigEndian, uint32(sum.Cols))
	}
	if err == nil {
		err = binary.Write(p.packetBuffer, binary.BigEndian, uint16(len(sum.Products)))
	}
	for _, prod := range sum.Products {
		if err == nil {
			err = binary.Write(p.packetBuffer, binary.BigEndian, uint16(prod.Label))
		}
		if err == nil {
			err = binary.Write(p.packetBuffer, binary.BigEndian, prod.Flagged)
		}
	}
	if err != nil {
		applog.Errorf("udp: error packing summary: %v", err)
		return
	}

	packetBytes := p.packetBuffer.Bytes()
	if err := p.sender.Send(packetBytes); err != nil {
		return // logged by the sender
	}
	applog.Debugf("udp: sent packet %d (%d bytes)", p.sequenceNum, len(packetBytes))
}

// Close stops the publisher goroutine. Implements transport.Transport.
func (p *Publisher) Close() error {
	return p.Stop()
}

var _ transport.Transport = (*Publisher)(nil)
