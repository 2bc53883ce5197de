package wire

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Supported codec names.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
	CodecCBOR    = "cbor"
)

// DefaultCodec is used when no codec is configured.
const DefaultCodec = CodecCBOR

// SerializerError represents serialization errors.
type SerializerError struct {
	Operation string
	CodecType string
	Err       error
}

// Error implements the error interface.
func (e *SerializerError) Error() string {
	return fmt.Sprintf("wire: %s failed for codec %s: %v", e.Operation, e.CodecType, e.Err)
}

// Unwrap returns the underlying codec error.
func (e *SerializerError) Unwrap() error {
	return e.Err
}

// Serializer encodes plain structs with one of the supported codecs.
type Serializer struct {
	codecType string
}

// NewSerializer returns a serializer for codecType (json, msgpack or cbor).
// The empty string selects DefaultCodec.
func NewSerializer(codecType string) (*Serializer, error) {
	codecType = strings.ToLower(codecType)
	if codecType == "" {
		codecType = DefaultCodec
	}
	switch codecType {
	case CodecJSON, CodecMsgpack, CodecCBOR:
		return &Serializer{codecType: codecType}, nil
	default:
		return nil, &SerializerError{
			Operation: "create",
			CodecType: codecType,
			Err:       fmt.Errorf("unsupported codec type: %s", codecType),
		}
	}
}

// CodecType returns the codec name.
func (s *Serializer) CodecType() string {
	return s.codecType
}

// Marshal serializes msg.
func (s *Serializer) Marshal(msg any) ([]byte, error) {
	var data []byte
	var err error

	switch s.codecType {
	case CodecJSON:
		data, err = json.Marshal(msg)
	case CodecMsgpack:
		data, err = msgpack.Marshal(msg)
	case CodecCBOR:
		data, err = cbor.Marshal(msg)
	}
	if err != nil {
		return nil, &SerializerError{Operation: "marshal", CodecType: s.codecType, Err: err}
	}
	return data, nil
}

// Unmarshal deserializes data into msg.
func (s *Serializer) Unmarshal(data []byte, msg any) error {
	var err error

	switch s.codecType {
	case CodecJSON:
		err = json.Unmarshal(data, msg)
	case CodecMsgpack:
		err = msgpack.Unmarshal(data, msg)
	case CodecCBOR:
		err = cbor.Unmarshal(data, msg)
	}
	if err != nil {
		return &SerializerError{Operation: "unmarshal", CodecType: s.codecType, Err: err}
	}
	return nil
}
