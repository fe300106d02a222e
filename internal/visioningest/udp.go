// Package visioningest decodes already-processed vision frames off the
// wire and offers them into per-camera ring buffers. The SSL-vision
// multicast protocol decoder itself is an external collaborator (spec.md
// §1 "out of scope"); this package only implements the side of the
// §6 RawVisionData contract the strategy runner actually consumes,
// using JSON framing since no protobuf definition for the vision
// protocol is available to this module.
package visioningest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/ringbuffer"
)

// UDPSource reads JSON RawVisionData packets (one document per datagram)
// from a UDP socket and offers each into the ring buffer matching its
// camera_id, modulo the number of configured buffers.
type UDPSource struct {
	conn    *net.UDPConn
	buffers []*ringbuffer.Ring[model.RawVisionData]
	logger  *zap.SugaredLogger
}

// NewUDPSource binds a UDP listener on addr (e.g. ":10006", the
// conventional ssl-vision relay port) and constructs a source that
// routes decoded frames into buffers.
func NewUDPSource(addr string, buffers []*ringbuffer.Ring[model.RawVisionData], logger *zap.SugaredLogger) (*UDPSource, error) {
	if len(buffers) == 0 {
		return nil, fmt.Errorf("visioningest: at least one ring buffer required")
	}
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("visioningest: resolving %q: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("visioningest: listening on %q: %w", addr, err)
	}
	return &UDPSource{conn: conn, buffers: buffers, logger: logger}, nil
}

// Close releases the underlying socket.
func (s *UDPSource) Close() error {
	return s.conn.Close()
}

// Run reads packets until ctx is cancelled, decoding each as a single
// JSON RawVisionData document. Malformed packets are logged and
// skipped (spec.md §7 error kind 3: transient sensor errors warn and
// continue).
func (s *UDPSource) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.conn.Close()
	}()

	buf := make([]byte, 64*1024)
	for {
		n, _, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("visioningest: read failed: %w", err)
		}

		var frame model.RawVisionData
		if err := json.Unmarshal(buf[:n], &frame); err != nil {
			s.logger.Warnw("dropping malformed vision packet", "error", err)
			continue
		}
		s.buffers[int(frame.CameraID)%len(s.buffers)].Offer(frame)
	}
}

// ReadAllLines is a test/offline helper: it decodes one JSON
// RawVisionData document per line from scanner and offers each into the
// buffer matching its camera_id, modulo the number of buffers, replaying
// a captured vision log without a socket.
func ReadAllLines(scanner *bufio.Scanner, buffers []*ringbuffer.Ring[model.RawVisionData]) error {
	for scanner.Scan() {
		var frame model.RawVisionData
		if err := json.Unmarshal(scanner.Bytes(), &frame); err != nil {
			return fmt.Errorf("visioningest: decoding replay line: %w", err)
		}
		buffers[int(frame.CameraID)%len(buffers)].Offer(frame)
	}
	return scanner.Err()
}
