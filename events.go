// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"sync"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

// SignersRotatedEvent is emitted when the gateway advances to a new epoch.
type SignersRotatedEvent struct {
	Epoch       uint64
	SignersHash ids.ID
	Signers     WeightedSignerSet
}

// MessageApprovedEvent is emitted for each newly approved message.
type MessageApprovedEvent struct {
	CommandID ids.ID
	Message   Message
}

// MessageExecutedEvent is emitted when an approved message is consumed.
type MessageExecutedEvent struct {
	CommandID   ids.ID
	SourceChain string
	MessageID   string
}

// Emitter receives gateway events for external indexers. Emitters are
// invoked after the corresponding state mutation committed, under the
// gateway writer lock, so they observe events in mutation order.
type Emitter interface {
	SignersRotated(SignersRotatedEvent)
	MessageApproved(MessageApprovedEvent)
	MessageExecuted(MessageExecutedEvent)
}

// NoopEmitter discards all events.
type NoopEmitter struct{}

func (NoopEmitter) SignersRotated(SignersRotatedEvent)   {}
func (NoopEmitter) MessageApproved(MessageApprovedEvent) {}
func (NoopEmitter) MessageExecuted(MessageExecutedEvent) {}

// LogEmitter writes events to a structured logger.
type LogEmitter struct {
	Log log.Logger
}

func (e LogEmitter) SignersRotated(ev SignersRotatedEvent) {
	e.Log.Info("signers-rotated",
		log.Uint64("epoch", ev.Epoch),
		log.Stringer("signersHash", ev.SignersHash),
	)
}

func (e LogEmitter) MessageApproved(ev MessageApprovedEvent) {
	e.Log.Info("message-approved",
		log.Stringer("commandID", ev.CommandID),
		log.String("sourceChain", ev.Message.SourceChain),
		log.String("messageID", ev.Message.MessageID),
	)
}

func (e LogEmitter) MessageExecuted(ev MessageExecutedEvent) {
	e.Log.Info("message-executed",
		log.Stringer("commandID", ev.CommandID),
		log.String("sourceChain", ev.SourceChain),
		log.String("messageID", ev.MessageID),
	)
}

// MemoryEmitter buffers events in memory, primarily for tests and embedded
// indexers.
type MemoryEmitter struct {
	mu       sync.Mutex
	rotated  []SignersRotatedEvent
	approved []MessageApprovedEvent
	executed []MessageExecutedEvent
}

func (e *MemoryEmitter) SignersRotated(ev SignersRotatedEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rotated = append(e.rotated, ev)
}

func (e *MemoryEmitter) MessageApproved(ev MessageApprovedEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.approved = append(e.approved, ev)
}

func (e *MemoryEmitter) MessageExecuted(ev MessageExecutedEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.executed = append(e.executed, ev)
}

// Rotated returns the buffered signers-rotated events.
func (e *MemoryEmitter) Rotated() []SignersRotatedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]SignersRotatedEvent, len(e.rotated))
	copy(out, e.rotated)
	return out
}

// Approved returns the buffered message-approved events.
func (e *MemoryEmitter) Approved() []MessageApprovedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]MessageApprovedEvent, len(e.approved))
	copy(out, e.approved)
	return out
}

// Executed returns the buffered message-executed events.
func (e *MemoryEmitter) Executed() []MessageExecutedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]MessageExecutedEvent, len(e.executed))
	copy(out, e.executed)
	return out
}
