package transport

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/utama-ssl/decision-core/internal/model"
)

// emptySlotRobotID is the sentinel transmitted for a slot with no
// assigned command (spec.md §6). It occupies flags' low 4 bits
// truncated, same as any other id ≥ 16 — see packFlags.
const emptySlotRobotID = 30

// frameSize is the wire size of one robot's serial frame: v_fwd, v_left,
// v_rot (f16 each) + flags + crc8.
const frameSize = 8

// RealAdapter drives the real-robot radio link: one 8-byte serial frame
// per configured slot, batched into a single write per tick.
type RealAdapter struct {
	writer     io.Writer
	slotCount  int
	maxRetries int
	logger     *zap.SugaredLogger
}

// NewRealAdapter constructs a RealAdapter writing frames for slotCount
// robots (0..slotCount-1) to writer.
func NewRealAdapter(writer io.Writer, slotCount int, logger *zap.SugaredLogger) *RealAdapter {
	return &RealAdapter{writer: writer, slotCount: slotCount, maxRetries: 1, logger: logger}
}

// Send encodes one frame per slot and writes them all in a single call.
// On write failure it retries once (spec.md §7 error kind 5); on a
// second failure it logs and returns the error without panicking, so
// the strategy runner can fall back to zero commands for this tick.
func (a *RealAdapter) Send(ctx context.Context, commands map[uint8]model.RobotCommand) ([]model.RobotResponse, error) {
	buf := make([]byte, 0, a.slotCount*frameSize)
	for slot := 0; slot < a.slotCount; slot++ {
		id := uint8(slot)
		last := slot == a.slotCount-1
		cmd, ok := commands[id]
		if !ok {
			buf = append(buf, encodeFrame(model.RobotCommand{}, emptySlotRobotID, last)...)
			continue
		}
		buf = append(buf, encodeFrame(cmd, id, last)...)
	}

	var err error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		_, err = a.writer.Write(buf)
		if err == nil {
			return nil, nil
		}
		a.logger.Warnw("serial write failed, retrying", "attempt", attempt, "error", err)
	}
	return nil, fmt.Errorf("transport: serial write failed after retry: %w", err)
}

// Close is a no-op unless writer implements io.Closer.
func (a *RealAdapter) Close() error {
	if closer, ok := a.writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func encodeFrame(cmd model.RobotCommand, id uint8, last bool) []byte {
	frame := make([]byte, frameSize)

	fwd := float32ToFloat16(cmd.LocalForwardVel)
	left := float32ToFloat16(cmd.LocalLeftVel)
	rot := float32ToFloat16(cmd.AngularVel)

	frame[0], frame[1] = byte(fwd), byte(fwd>>8)
	frame[2], frame[3] = byte(left), byte(left>>8)
	frame[4], frame[5] = byte(rot), byte(rot>>8)
	frame[6] = packFlags(last, cmd.Kick, cmd.Chip, cmd.Dribble, id)
	frame[7] = crc8(frame[:7])

	return frame
}

// packFlags builds the flags byte: [last:1][kick:1][chip:1][dribble:1][robot_id:4].
// robot_id occupies the low 4 bits; ids ≥ 16 truncate.
func packFlags(last, kick, chip, dribble bool, robotID uint8) byte {
	var b byte
	if last {
		b |= 1 << 7
	}
	if kick {
		b |= 1 << 6
	}
	if chip {
		b |= 1 << 5
	}
	if dribble {
		b |= 1 << 4
	}
	b |= robotID & 0x0f
	return b
}
