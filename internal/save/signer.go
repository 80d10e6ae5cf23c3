package save

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"

	"github.com/rcliao/stasis-hunters/internal/model"
)

// Signer computes and checks save signatures. With no key the signature is the
// SHA-256 of the canonical payload; with a key it is HMAC-SHA-256.
type Signer struct {
	key []byte
}

// NewSigner returns a signer. An empty key selects plain SHA-256.
func NewSigner(key []byte) Signer {
	k := make([]byte, len(key))
	copy(k, key)
	return Signer{key: k}
}

// Save canonicalises payload and returns a signed record carrying extra.
func (s Signer) Save(p Payload, extra map[string]any) (*Record, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	canon, err := Canonicalize(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize payload: %w", err)
	}
	return &Record{
		ProtectedPayload: canon,
		Signature:        s.sign(canon),
		Extra:            extra,
	}, nil
}

// LoadAndVerify recomputes the signature over the record's payload and returns
// the payload only when it matches. Every failure wraps model.ErrIntegrity.
func (s Signer) LoadAndVerify(rec *Record) (*Payload, error) {
	if rec == nil || len(bytes.TrimSpace(rec.ProtectedPayload)) == 0 || isNull(rec.ProtectedPayload) {
		return nil, fmt.Errorf("missing protected payload: %w", model.ErrIntegrity)
	}
	if rec.Signature == "" {
		return nil, fmt.Errorf("missing signature: %w", model.ErrIntegrity)
	}
	canon, err := Canonicalize(rec.ProtectedPayload)
	if err != nil {
		return nil, fmt.Errorf("malformed payload: %v: %w", err, model.ErrIntegrity)
	}
	want := s.sign(canon)
	if !hmac.Equal([]byte(want), []byte(rec.Signature)) {
		return nil, fmt.Errorf("signature mismatch: %w", model.ErrIntegrity)
	}

	var p Payload
	if err := json.Unmarshal(canon, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %v: %w", err, model.ErrIntegrity)
	}
	return &p, nil
}

func (s Signer) sign(canon []byte) string {
	var h hash.Hash
	if len(s.key) > 0 {
		h = hmac.New(sha256.New, s.key)
	} else {
		h = sha256.New()
	}
	h.Write(canon)
	return hex.EncodeToString(h.Sum(nil))
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}

// Canonicalize re-encodes a JSON document with sorted object keys, no insignificant
// whitespace, and numbers kept verbatim, so equal documents hash equally.
func Canonicalize(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after document")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
