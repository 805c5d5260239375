package signature

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	btcec_ecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/weisyn/securemsg/internal/core/infrastructure/metrics"
	cryptointf "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
)

// SignDigest 对 32 字节摘要做确定性 ECDSA 签名
//
// 返回未压缩公钥（65字节）与 DER 编码的低 S 签名，供交易输入签名使用。
func (ss *SignatureService) SignDigest(priv *btcec.PrivateKey, digest []byte) ([]byte, []byte, error) {
	if len(digest) != HashLength {
		err := fmt.Errorf("%w: digest expected %d bytes, got %d", cryptointf.ErrDecode, HashLength, len(digest))
		metrics.ObserveOperation(metrics.OpSignDigest, err)
		return nil, nil, err
	}

	sig := btcec_ecdsa.Sign(priv, digest)
	if !sig.Verify(digest, priv.PubKey()) {
		ss.logger.Error("摘要签名自检失败")
		metrics.ObserveOperation(metrics.OpSignDigest, cryptointf.ErrSigningFailed)
		return nil, nil, cryptointf.ErrSigningFailed
	}

	metrics.ObserveOperation(metrics.OpSignDigest, nil)
	return priv.PubKey().SerializeUncompressed(), sig.Serialize(), nil
}
