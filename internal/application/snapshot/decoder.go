package snapshot

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/younwookim/puppet/internal/domain/entity"
)

// Decode stages
const (
	StageEncoding = "encoding"
	StageText     = "text"
	StageSchema   = "schema"
)

// DecodeError reports a message that could not be turned into a snapshot
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode snapshot (%s): %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode turns one raw message into a snapshot: base64, then UTF-8
// validation, then the JSON schema. A failure at any stage returns a
// *DecodeError and no snapshot.
func Decode(raw []byte) (*entity.Snapshot, error) {
	raw = bytes.TrimSpace(raw)
	text := make([]byte, base64.StdEncoding.DecodedLen(len(raw)))
	n, err := base64.StdEncoding.Decode(text, raw)
	if err != nil {
		return nil, &DecodeError{Stage: StageEncoding, Err: err}
	}
	text = text[:n]

	if !utf8.Valid(text) {
		return nil, &DecodeError{Stage: StageText, Err: fmt.Errorf("payload is not valid UTF-8")}
	}

	return Parse(text)
}

// Parse decodes already-decoded JSON text against the snapshot schema
func Parse(text []byte) (*entity.Snapshot, error) {
	if err := validate(text); err != nil {
		return nil, &DecodeError{Stage: StageSchema, Err: err}
	}

	var snap entity.Snapshot
	if err := json.Unmarshal(text, &snap); err != nil {
		return nil, &DecodeError{Stage: StageSchema, Err: err}
	}

	for i := range snap.Text {
		snap.Text[i].Content = norm.NFC.String(snap.Text[i].Content)
	}
	return &snap, nil
}

// Encode produces the wire form of a snapshot. Nil lists are sent as empty
// lists so the result always passes Decode.
func Encode(snap *entity.Snapshot) ([]byte, error) {
	out := *snap
	out.Sprites = make([]entity.SpriteDesc, len(snap.Sprites))
	copy(out.Sprites, snap.Sprites)
	if out.Text == nil {
		out.Text = []entity.TextDesc{}
	}
	for i := range out.Sprites {
		if out.Sprites[i].Images == nil {
			out.Sprites[i].Images = []string{}
		}
	}

	text, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(text)))
	base64.StdEncoding.Encode(encoded, text)
	return encoded, nil
}
