package wallet

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/address"
	infralog "github.com/weisyn/securemsg/internal/core/infrastructure/log"
	cryptointf "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/log"
)

var _ cryptointf.KeyProvider = (*HDKeyring)(nil)

// HDKeyring 由 BIP32 种子按路径派生密钥
//
// 未加载种子或 Wipe 之后所有方法返回 ErrKeyUnavailable。
// 已派生的私钥按规范路径缓存，只在锁内读取与清零，对外返回副本。
type HDKeyring struct {
	mu      sync.RWMutex
	master  *hdkeychain.ExtendedKey
	derived map[string]*btcec.PrivateKey
	logger  log.Logger
}

// NewHDKeyring 创建未加载种子的密钥环
func NewHDKeyring(logger log.Logger) *HDKeyring {
	if logger == nil {
		logger = infralog.NewNopLogger()
	}
	return &HDKeyring{
		derived: make(map[string]*btcec.PrivateKey),
		logger:  logger,
	}
}

// LoadMnemonic 由助记词与口令加载种子，替换已有种子
func (k *HDKeyring) LoadMnemonic(mnemonic, passphrase string) error {
	seed, err := MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return err
	}
	defer clear(seed)
	return k.LoadSeed(seed)
}

// LoadSeed 由原始种子加载主密钥，替换已有种子
func (k *HDKeyring) LoadSeed(seed []byte) error {
	// 主密钥的网络参数只影响扩展密钥序列化，不影响派生结果
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return fmt.Errorf("create master key: %w", err)
	}

	k.mu.Lock()
	k.wipeLocked()
	k.master = master
	k.mu.Unlock()

	k.logger.Debug("HD 种子已加载")
	return nil
}

// Loaded 是否已加载种子
func (k *HDKeyring) Loaded() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.master != nil
}

// Wipe 清零缓存与主密钥并卸载种子
func (k *HDKeyring) Wipe() {
	k.mu.Lock()
	k.wipeLocked()
	k.mu.Unlock()
}

func (k *HDKeyring) wipeLocked() {
	for path, priv := range k.derived {
		priv.Zero()
		delete(k.derived, path)
	}
	if k.master != nil {
		k.master.Zero()
		k.master = nil
	}
}

// PrivateKey 返回路径对应私钥的独立副本
//
// 副本不受之后的 Wipe 或 LoadSeed 影响。
func (k *HDKeyring) PrivateKey(path string) (*btcec.PrivateKey, error) {
	var out *btcec.PrivateKey
	err := k.withKey(path, func(priv *btcec.PrivateKey) {
		raw := priv.Serialize()
		out, _ = btcec.PrivKeyFromBytes(raw)
		clear(raw)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PublicKey 返回路径对应的公钥
func (k *HDKeyring) PublicKey(path string) (*btcec.PublicKey, error) {
	var out *btcec.PublicKey
	err := k.withKey(path, func(priv *btcec.PrivateKey) {
		out = priv.PubKey()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Address 返回路径对应的压缩公钥地址
func (k *HDKeyring) Address(net *chaincfg.Params, path string) (string, error) {
	pub, err := k.PublicKey(path)
	if err != nil {
		return "", err
	}
	return address.FromPubKey(pub, address.Version(net), true), nil
}

// withKey 在持锁期间把路径对应的缓存私钥交给 fn
//
// 缓存私钥只在锁内被读取或清零，fn 不得保留该指针。
func (k *HDKeyring) withKey(path string, fn func(priv *btcec.PrivateKey)) error {
	dp, err := ParseDerivationPath(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cryptointf.ErrKeyUnavailable, err)
	}
	canonical := dp.String()

	k.mu.RLock()
	if k.master == nil {
		k.mu.RUnlock()
		return fmt.Errorf("%w: no seed loaded", cryptointf.ErrKeyUnavailable)
	}
	if priv, ok := k.derived[canonical]; ok {
		fn(priv)
		k.mu.RUnlock()
		return nil
	}
	k.mu.RUnlock()

	k.mu.Lock()
	defer k.mu.Unlock()
	// 加写锁期间种子可能已被清除
	if k.master == nil {
		return fmt.Errorf("%w: no seed loaded", cryptointf.ErrKeyUnavailable)
	}
	priv, ok := k.derived[canonical]
	if !ok {
		priv, err = k.deriveLocked(dp)
		if err != nil {
			return err
		}
		k.derived[canonical] = priv
	}
	fn(priv)
	return nil
}

// deriveLocked 沿路径派生私钥，中间扩展密钥用完即清零
func (k *HDKeyring) deriveLocked(dp DerivationPath) (*btcec.PrivateKey, error) {
	key := k.master
	for _, index := range dp {
		child, err := key.Derive(index)
		if key != k.master {
			key.Zero()
		}
		if err != nil {
			return nil, fmt.Errorf("%w: derive %s: %v", cryptointf.ErrKeyUnavailable, dp, err)
		}
		key = child
	}
	priv, err := key.ECPrivKey()
	if key != k.master {
		key.Zero()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptointf.ErrKeyUnavailable, err)
	}
	return priv, nil
}
