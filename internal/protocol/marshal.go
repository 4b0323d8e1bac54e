package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownMessageType is returned for messages whose type field is
// missing or not one of the defined types.
var ErrUnknownMessageType = errors.New("unknown message type")

// Marshal serializes a message to JSON
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal deserializes JSON data into a message
func Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// PeekType reads only the type field so the caller can pick the right
// concrete message to unmarshal into.
func PeekType(data []byte) (MessageType, error) {
	var envelope struct {
		Type MessageType `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", fmt.Errorf("malformed message: %w", err)
	}
	switch envelope.Type {
	case TypeJoin, TypeBet, TypeDeal, TypeAction, TypeBuyIn, TypeQuit,
		TypeWelcome, TypeState, TypeError:
		return envelope.Type, nil
	case "":
		return "", fmt.Errorf("%w: missing type field", ErrUnknownMessageType)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMessageType, envelope.Type)
	}
}
