// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"fmt"

	"github.com/luxfi/geth/rlp"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/gateway/hashing"
	"github.com/luxfi/gateway/store"
)

// MaxMessagesPerBatch is the protocol bound on messages per approval batch.
const MaxMessagesPerBatch = 10

// Message identifies one cross-chain message and the contract call it
// authorizes. The payload itself travels out of band; only its hash is
// bound here.
type Message struct {
	SourceChain         string
	MessageID           string
	SourceAddress       string
	DestinationContract string
	PayloadHash         ids.ID
}

// CommandID returns the replay-protection key for this message.
func (m *Message) CommandID() ids.ID {
	return hashing.CommandID(m.SourceChain, m.MessageID)
}

// Bytes returns the canonical encoding of the message.
func (m *Message) Bytes() []byte {
	b, _ := rlp.EncodeToBytes(m)
	return b
}

// Hash returns the hash binding the approval to the full message tuple,
// destination contract and payload hash included.
func (m *Message) Hash() ids.ID {
	return hashing.Hash256(m.Bytes())
}

// ParseMessages parses a message batch from its canonical encoding.
func ParseMessages(b []byte) ([]Message, error) {
	var messages []Message
	if err := rlp.DecodeBytes(b, &messages); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructural, err)
	}
	return messages, nil
}

// ApproveMessages records a batch of messages as approved, authenticated by
// a single proof over the tagged hash of the batch. The proof check is
// all-or-nothing; thereafter each message is handled independently, and a
// command id that is already recorded (approved or executed) is left
// untouched without error.
func (g *Gateway) ApproveMessages(messages []Message, proof *Proof) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(messages) == 0 {
		return fmt.Errorf("%w: empty message batch", ErrStructural)
	}
	if len(messages) > MaxMessagesPerBatch {
		return fmt.Errorf("%w: %d messages exceeds maximum %d", ErrStructural, len(messages), MaxMessagesPerBatch)
	}

	batchBytes, err := rlp.EncodeToBytes(messages)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStructural, err)
	}
	dataHash := hashing.TaggedHash(hashing.TagApproveMessages, batchBytes)

	if _, err := g.verifyProof(dataHash, proof); err != nil {
		g.metrics.rejectedProofs.Inc()
		return err
	}

	for i := range messages {
		message := &messages[i]
		commandID := message.CommandID()

		if _, exists, err := g.db.Message(commandID); err != nil {
			return err
		} else if exists {
			// Resubmission of a known command id is a no-op; the stored
			// record is never overwritten.
			continue
		}

		if err := g.db.PutMessage(commandID, store.MessageRecord{
			State:       store.Approved,
			MessageHash: message.Hash(),
		}); err != nil {
			return err
		}

		g.metrics.messagesApproved.Inc()
		g.log.Debug("message approved",
			log.Stringer("commandID", commandID),
			log.String("sourceChain", message.SourceChain),
			log.String("messageID", message.MessageID),
		)
		g.emitter.MessageApproved(MessageApprovedEvent{
			CommandID: commandID,
			Message:   *message,
		})
	}
	return nil
}

// ValidateMessage consumes an approved message. The submitted fields must
// reproduce the stored approval hash exactly; a message approved for one
// destination contract or payload cannot be consumed under another. On
// success the record moves to executed and every later call for the same
// command id fails, giving exactly-once consumption.
func (g *Gateway) ValidateMessage(
	sourceChain string,
	messageID string,
	sourceAddress string,
	destinationContract string,
	payloadHash ids.ID,
) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	message := Message{
		SourceChain:         sourceChain,
		MessageID:           messageID,
		SourceAddress:       sourceAddress,
		DestinationContract: destinationContract,
		PayloadHash:         payloadHash,
	}
	commandID := message.CommandID()

	record, exists, err := g.db.Message(commandID)
	if err != nil {
		return err
	}
	if !exists || record.State != store.Approved {
		return fmt.Errorf("%w: %s", ErrMessageNotFound, commandID)
	}
	if record.MessageHash != message.Hash() {
		return fmt.Errorf("%w: %s approved with different fields", ErrMessageNotFound, commandID)
	}

	// The executed record keeps no hash; the state alone marks consumption.
	if err := g.db.PutMessage(commandID, store.MessageRecord{
		State: store.Executed,
	}); err != nil {
		return err
	}

	g.metrics.messagesExecuted.Inc()
	g.log.Debug("message executed",
		log.Stringer("commandID", commandID),
		log.String("sourceChain", sourceChain),
		log.String("messageID", messageID),
	)
	g.emitter.MessageExecuted(MessageExecutedEvent{
		CommandID:   commandID,
		SourceChain: sourceChain,
		MessageID:   messageID,
	})
	return nil
}
