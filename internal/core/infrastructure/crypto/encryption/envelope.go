package encryption

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"

	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/signature"
	cryptointf "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
)

// 信封标志位
const (
	// FlagSigned 信封尾部附带签名者地址与签名
	FlagSigned byte = 0x01
	// FlagDisplayOnly 消息仅供显示
	FlagDisplayOnly byte = 0x80

	knownFlags = FlagSigned | FlagDisplayOnly
)

// Envelope 加密前的明文信封
//
//	flags(1) || varint(len) || message || [address(21) || signature(65)]
type Envelope struct {
	Message     []byte
	DisplayOnly bool
	Signed      bool
	// AddressBin 版本字节 || hash160，仅签名信封有效
	AddressBin [address.BinaryLength]byte
	Signature  []byte
}

// EncodeEnvelope 序列化信封
func EncodeEnvelope(env *Envelope) ([]byte, error) {
	var flags byte
	if env.Signed {
		if len(env.Signature) != signature.SignatureLength {
			return nil, fmt.Errorf("%w: expected %d bytes, got %d",
				cryptointf.ErrBadSignatureLength, signature.SignatureLength, len(env.Signature))
		}
		flags |= FlagSigned
	}
	if env.DisplayOnly {
		flags |= FlagDisplayOnly
	}

	var buf bytes.Buffer
	buf.Grow(1 + wire.VarIntSerializeSize(uint64(len(env.Message))) + len(env.Message) +
		address.BinaryLength + signature.SignatureLength)
	buf.WriteByte(flags)
	if err := wire.WriteVarBytes(&buf, 0, env.Message); err != nil {
		return nil, fmt.Errorf("写入消息失败: %w", err)
	}
	if env.Signed {
		buf.Write(env.AddressBin[:])
		buf.Write(env.Signature)
	}
	return buf.Bytes(), nil
}

// DecodeEnvelope 解析信封
//
// 未知标志位、长度截断、非规范 varint 与多余尾部字节都返回 ErrMalformedMessage。
func DecodeEnvelope(data []byte) (*Envelope, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: envelope too short", cryptointf.ErrMalformedMessage)
	}
	flags := data[0]
	if flags&^knownFlags != 0 {
		return nil, fmt.Errorf("%w: unknown flags 0x%02x", cryptointf.ErrMalformedMessage, flags)
	}

	r := bytes.NewReader(data[1:])
	n, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptointf.ErrMalformedMessage, err)
	}
	if n > uint64(r.Len()) {
		return nil, fmt.Errorf("%w: message length %d exceeds %d remaining bytes",
			cryptointf.ErrMalformedMessage, n, r.Len())
	}

	env := &Envelope{
		Message:     make([]byte, n),
		DisplayOnly: flags&FlagDisplayOnly != 0,
		Signed:      flags&FlagSigned != 0,
	}
	r.Read(env.Message)

	trailer := 0
	if env.Signed {
		trailer = address.BinaryLength + signature.SignatureLength
	}
	if r.Len() != trailer {
		return nil, fmt.Errorf("%w: expected %d trailing bytes, got %d",
			cryptointf.ErrMalformedMessage, trailer, r.Len())
	}
	if env.Signed {
		r.Read(env.AddressBin[:])
		env.Signature = make([]byte, signature.SignatureLength)
		r.Read(env.Signature)
	}
	return env, nil
}
