package signature

import (
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/hash"
)

// Candidate 某个恢复标记下恢复出的地址
type Candidate struct {
	RecID   byte
	Address string
	Err     error
}

// RecoverCandidates 对四个 recid 分别恢复地址
//
// 用于诊断：对一个有效签名，只有一个候选能通过 Verify。
// 签名长度或标记非法时返回错误；压缩属性取自原标记。
func (ss *SignatureService) RecoverCandidates(version byte, sig, message []byte) ([]Candidate, error) {
	compressed, _, err := parseMarker(sig)
	if err != nil {
		return nil, err
	}

	digest := hash.MessageDigest(message)
	candidates := make([]Candidate, 0, 4)
	for recid := byte(0); recid < 4; recid++ {
		c := Candidate{RecID: recid}
		pub, err := ss.RecoverPublicKey(digest[:], recid, sig[1:33], sig[33:65])
		if err != nil {
			c.Err = err
		} else {
			c.Address = address.FromPubKey(pub, version, compressed)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}
