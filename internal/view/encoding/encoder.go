package encoding

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/hkdf"
)

// StructTag is the struct tag consulted when packing props.
// Fields tagged `hx:"-"` are hydrated on the server and never leave it.
const StructTag = "hx"

var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// Encoder handles encoding and decoding of component props.
// It supports two modes:
//   - Signed (default): Base64 + HMAC signature - visible but tamper-proof
//   - Encrypted: AES-256-GCM - fully opaque
type Encoder struct {
	signKey []byte
	gcm     cipher.AEAD
}

// NewEncoder creates a new encoder with the given key. The signing and
// encryption keys are derived from it with HKDF-SHA256, so any key length
// works and the two modes never share key material.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: empty key")
	}
	signKey, encKey, err := deriveKeys(key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		signKey: signKey,
		gcm:     gcm,
	}, nil
}

func deriveKeys(key []byte) (signKey, encKey []byte, err error) {
	r := hkdf.New(sha256.New, key, nil, []byte("geoadmin|props"))
	signKey = make([]byte, 32)
	encKey = make([]byte, 32)
	if _, err := io.ReadFull(r, signKey); err != nil {
		return nil, nil, err
	}
	if _, err := io.ReadFull(r, encKey); err != nil {
		return nil, nil, err
	}
	return signKey, encKey, nil
}

// Encode serializes a value and returns an encoded string.
// If sensitive is true, the data is encrypted; otherwise it's signed.
func (e *Encoder) Encode(v any, sensitive bool) (string, error) {
	packed, err := pack(v)
	if err != nil {
		return "", err
	}

	if sensitive {
		return e.encrypt(packed)
	}
	return e.sign(packed), nil
}

// Decode deserializes an encoded string into v, which must be a pointer.
// If sensitive is true, the data is decrypted; otherwise signature is verified.
func (e *Encoder) Decode(encoded string, sensitive bool, v any) error {
	var packed []byte
	var err error

	if sensitive {
		packed, err = e.decrypt(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return err
	}

	return unpack(packed, v)
}

func pack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(StructTag)
	enc.SetOmitEmpty(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("pack %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

func unpack(packed []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(packed))
	dec.SetCustomStructTag(StructTag)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

// sign creates a signed (but visible) encoding: base64.signature
func (e *Encoder) sign(data []byte) string {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	return b64 + "." + base64.RawURLEncoding.EncodeToString(e.mac(data))
}

func (e *Encoder) mac(data []byte) []byte {
	m := hmac.New(sha256.New, e.signKey)
	m.Write(data)
	return m.Sum(nil)[:16] // 128 bits
}

// verify verifies and decodes a signed string
func (e *Encoder) verify(encoded string) ([]byte, error) {
	payload, sigText, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	sig, err := base64.RawURLEncoding.DecodeString(sigText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if !hmac.Equal(sig, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}

	return data, nil
}

// encrypt creates an encrypted encoding using AES-256-GCM
func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := e.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// decrypt decodes and decrypts an encrypted string
func (e *Encoder) decrypt(encoded string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if len(ciphertext) < e.gcm.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptFailed)
	}

	nonce := ciphertext[:e.gcm.NonceSize()]
	ciphertext = ciphertext[e.gcm.NonceSize():]

	plain, err := e.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
