package crypto

import "errors"

// ErrorKind 错误分类
//
// 调用方只需要区分四类失败：输入解码失败、密码学校验失败、
// 密钥不可用、内部不一致。具体原因由哨兵错误表达。
type ErrorKind int

const (
	// KindUnknown 非本包定义的错误
	KindUnknown ErrorKind = iota
	// KindDecode 输入格式错误（长度、标记、base58、信封结构）
	KindDecode
	// KindCrypto 签名无效、地址不匹配、MAC 校验失败
	KindCrypto
	// KindKeyUnavailable 密钥提供者未加载种子或无法给出密钥
	KindKeyUnavailable
	// KindInternal 签名后自检失败，属于不可恢复的内部错误
	KindInternal
)

// String 返回分类名称
func (k ErrorKind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindCrypto:
		return "crypto"
	case KindKeyUnavailable:
		return "key_unavailable"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error 带分类的哨兵错误
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

var (
	// ErrDecode base58 或密钥编码无法解析
	ErrDecode = &Error{Kind: KindDecode, Msg: "decode error"}
	// ErrChecksumMismatch base58check 校验和不匹配
	ErrChecksumMismatch = &Error{Kind: KindDecode, Msg: "checksum mismatch"}
	// ErrBadSignatureLength 签名长度不是 65 字节
	ErrBadSignatureLength = &Error{Kind: KindDecode, Msg: "bad signature length"}
	// ErrBadRecoveryMarker 恢复标记不在 [27,34]
	ErrBadRecoveryMarker = &Error{Kind: KindDecode, Msg: "bad recovery marker"}
	// ErrMalformedMessage 安全消息或明文信封结构错误
	ErrMalformedMessage = &Error{Kind: KindDecode, Msg: "malformed message"}

	// ErrInvalidSignature 签名无法恢复出公钥或 ECDSA 验证失败
	ErrInvalidSignature = &Error{Kind: KindCrypto, Msg: "invalid signature"}
	// ErrAddressMismatch 恢复出的地址与期望地址不同
	ErrAddressMismatch = &Error{Kind: KindCrypto, Msg: "address mismatch"}
	// ErrAuthenticationFailed 安全消息 MAC 校验失败
	ErrAuthenticationFailed = &Error{Kind: KindCrypto, Msg: "authentication failed"}

	// ErrKeyUnavailable 未加载种子或路径无法派生
	ErrKeyUnavailable = &Error{Kind: KindKeyUnavailable, Msg: "key unavailable"}

	// ErrSigningFailed 四个恢复标记都无法通过自检
	ErrSigningFailed = &Error{Kind: KindInternal, Msg: "signing failed: no recovery id verifies"}
)

// errRejected 对外统一的失败信息
var errRejected = errors.New("request rejected")

// KindOf 返回错误链中第一个分类错误的类别
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Opaque 把任意失败折叠成同一条信息
//
// 供嵌入方在面向不可信对端时使用，MAC、签名与解码失败对外不可区分。
// 折叠后 KindOf 返回 KindUnknown。命令行通过 --opaque-errors 启用。
func Opaque(err error) error {
	if err == nil {
		return nil
	}
	return errRejected
}
