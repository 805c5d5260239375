// Package entropy 提供系统随机数来源
package entropy

import (
	"crypto/rand"
	"fmt"
	"io"

	cryptointf "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
)

var _ cryptointf.EntropySource = (*ReaderSource)(nil)

// ReaderSource 从 io.Reader 读取随机字节
type ReaderSource struct {
	r io.Reader
}

// NewSystemSource 使用操作系统 CSPRNG
func NewSystemSource() *ReaderSource {
	return &ReaderSource{r: rand.Reader}
}

// NewReaderSource 使用指定的读取器，便于测试注入确定性来源
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// RandomBytes 读取 n 个字节，读取不足时返回错误
func (s *ReaderSource) RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, fmt.Errorf("读取随机字节失败: %w", err)
	}
	return buf, nil
}
