package protocol

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

const typeField = "messageType"

var (
	// ErrMissingMessageType is returned for objects without a "messageType" field.
	ErrMissingMessageType = errors.New("missing messageType")
	// ErrUnknownMessageType is returned for a "messageType" no message is registered for.
	ErrUnknownMessageType = errors.New("unknown messageType")
)

// Marshal encodes m as a single JSON object with the discriminator first.
func Marshal(m Message) ([]byte, error) {
	if m == nil {
		return nil, errors.New("marshal nil message")
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart(typeField)
	e.Str(string(m.Type()))
	m.encodeFields(&e)
	e.ObjEnd()

	return e.Bytes(), nil
}

// Unmarshal decodes one JSON object into the message named by its discriminator.
// Fields unknown to the message are ignored.
func Unmarshal(data []byte) (Message, error) {
	t, err := typeOf(data)
	if err != nil {
		return nil, err
	}

	newMessage, ok := registry[t]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMessageType, "%q", t)
	}

	m := newMessage()
	if err := jx.DecodeBytes(data).ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) == typeField {
			return d.Skip()
		}

		return m.decodeField(d, string(key))
	}); err != nil {
		return nil, errors.Wrapf(err, "decode %s", t)
	}

	return m, nil
}

// typeOf scans the object for its discriminator, which may appear at any position.
func typeOf(data []byte) (MessageType, error) {
	var (
		t     MessageType
		found bool
	)

	if err := jx.DecodeBytes(data).ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != typeField {
			return d.Skip()
		}
		found = true

		return decodeString(d, &t, typeField)
	}); err != nil {
		return "", errors.Wrap(err, "decode message")
	}

	if !found {
		return "", ErrMissingMessageType
	}

	return t, nil
}
