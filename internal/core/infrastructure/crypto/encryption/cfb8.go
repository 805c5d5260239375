package encryption

import "crypto/cipher"

// cfb8 8 位反馈的 CFB 模式
//
// 每处理一个字节加密一次移位寄存器，取输出首字节异或，
// 再把密文字节移入寄存器。
type cfb8 struct {
	block   cipher.Block
	sr      []byte
	out     []byte
	decrypt bool
}

// NewCFB8Encrypter 创建 CFB8 加密流，iv 长度必须等于分组长度
func NewCFB8Encrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

// NewCFB8Decrypter 创建 CFB8 解密流，iv 长度必须等于分组长度
func NewCFB8Decrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) cipher.Stream {
	if len(iv) != block.BlockSize() {
		panic("encryption: IV length must equal block size")
	}
	sr := make([]byte, len(iv))
	copy(sr, iv)
	return &cfb8{
		block:   block,
		sr:      sr,
		out:     make([]byte, block.BlockSize()),
		decrypt: decrypt,
	}
}

func (x *cfb8) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("encryption: output smaller than input")
	}
	last := len(x.sr) - 1
	for i, in := range src {
		x.block.Encrypt(x.out, x.sr)
		c := in ^ x.out[0]
		copy(x.sr, x.sr[1:])
		if x.decrypt {
			x.sr[last] = in
		} else {
			x.sr[last] = c
		}
		dst[i] = c
	}
}
