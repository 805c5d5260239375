package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
)

// blobCodec 签名与密文在命令行上的文本编码
type blobCodec string

const (
	codecHex    blobCodec = "hex"
	codecBase64 blobCodec = "base64"
	codecBase58 blobCodec = "base58"
)

func parseCodec(name string) (blobCodec, error) {
	switch c := blobCodec(strings.ToLower(strings.TrimSpace(name))); c {
	case codecHex, codecBase64, codecBase58:
		return c, nil
	default:
		return "", &usageError{fmt.Errorf("unsupported encoding %q (hex|base64|base58)", name)}
	}
}

func (c blobCodec) encode(data []byte) string {
	switch c {
	case codecBase64:
		return base64.StdEncoding.EncodeToString(data)
	case codecBase58:
		return base58.Encode(data)
	default:
		return hex.EncodeToString(data)
	}
}

func (c blobCodec) decode(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	var (
		data []byte
		err  error
	)
	switch c {
	case codecBase64:
		data, err = base64.StdEncoding.DecodeString(text)
	case codecBase58:
		data, err = base58.Decode(text)
	default:
		data, err = hex.DecodeString(text)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", crypto.ErrDecode, c, err)
	}
	return data, nil
}
