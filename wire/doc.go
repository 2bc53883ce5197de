// Package wire encodes key generation messages for transport.
//
// A [Codec] turns each protocol message into a flat struct of byte strings
// and serializes it as CBOR, MessagePack or JSON. Decoding validates every
// group element against the codec's group, so a decoded message holds only
// canonical points and scalars. [Codec.Seal] and [Codec.Open] add an
// [Envelope] with the session, type and routing of a payload.
package wire
