// Package secp256k1 提供 secp256k1 椭圆曲线运算封装
//
// 🎯 **设计目的**：
// 公钥恢复与 ECDH 需要直接做点运算。所有点运算集中在本包，
// 底层使用 decred 的 secp256k1 实现（btcec/v2 同样基于它），
// 其余代码只通过 Arithmetic 接口访问曲线。
//
// 🔒 **安全原则**：
// - 不自行实现域运算，全部委托给经过审计的库
// - 无穷远点不会以公钥形式泄露给调用方
package secp256k1

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	// ErrPointAtInfinity 运算结果为无穷远点
	ErrPointAtInfinity = errors.New("point at infinity")
	// ErrNotOnCurve 给定 x 坐标不在曲线上
	ErrNotOnCurve = errors.New("x coordinate not on curve")
	// ErrFieldOverflow x 坐标不小于域素数 p
	ErrFieldOverflow = errors.New("x coordinate exceeds field prime")
)

// Point 雅可比坐标下的曲线点，可能为无穷远点
type Point struct {
	p secp.JacobianPoint
}

// PointFromPublicKey 将公钥转换为曲线点
func PointFromPublicKey(pub *btcec.PublicKey) *Point {
	var pt Point
	pub.AsJacobian(&pt.p)
	return &pt
}

// IsInfinity 是否为无穷远点
func (pt *Point) IsInfinity() bool {
	return (pt.p.X.IsZero() && pt.p.Y.IsZero()) || pt.p.Z.IsZero()
}

// PublicKey 转换为仿射坐标公钥，无穷远点返回 ErrPointAtInfinity
func (pt *Point) PublicKey() (*btcec.PublicKey, error) {
	if pt.IsInfinity() {
		return nil, ErrPointAtInfinity
	}
	affine := pt.p
	affine.ToAffine()
	return secp.NewPublicKey(&affine.X, &affine.Y), nil
}

// Arithmetic secp256k1 点运算边界
type Arithmetic interface {
	// ScalarBaseMult 计算 k·G
	ScalarBaseMult(k *secp.ModNScalar) *Point
	// ScalarMult 计算 k·P
	ScalarMult(k *secp.ModNScalar, p *Point) *Point
	// Add 计算 P + Q
	Add(p, q *Point) *Point
	// InverseModN 计算 k⁻¹ mod n，k 不能为零
	InverseModN(k *secp.ModNScalar) *secp.ModNScalar
	// LiftX 由 x 坐标与 y 的奇偶性恢复曲线点
	LiftX(x *big.Int, odd bool) (*Point, error)
	// Order 返回群阶 n
	Order() *big.Int
	// FieldPrime 返回域素数 p
	FieldPrime() *big.Int
}

// Curve 基于 decred secp256k1 的 Arithmetic 实现
type Curve struct{}

var _ Arithmetic = (*Curve)(nil)

// NewCurve 创建新的 secp256k1 曲线实例
func NewCurve() *Curve {
	return &Curve{}
}

// ScalarBaseMult 计算 k·G
func (c *Curve) ScalarBaseMult(k *secp.ModNScalar) *Point {
	var result Point
	secp.ScalarBaseMultNonConst(k, &result.p)
	return &result
}

// ScalarMult 计算 k·P
func (c *Curve) ScalarMult(k *secp.ModNScalar, p *Point) *Point {
	var result Point
	if p.IsInfinity() {
		return &result
	}
	secp.ScalarMultNonConst(k, &p.p, &result.p)
	return &result
}

// Add 计算 P + Q
func (c *Curve) Add(p, q *Point) *Point {
	var result Point
	secp.AddNonConst(&p.p, &q.p, &result.p)
	return &result
}

// InverseModN 计算 k⁻¹ mod n
func (c *Curve) InverseModN(k *secp.ModNScalar) *secp.ModNScalar {
	var inv secp.ModNScalar
	inv.Set(k).InverseNonConst()
	return &inv
}

// LiftX 由 x 坐标恢复曲线点
//
// x 必须小于 p，不做取模回绕。
func (c *Curve) LiftX(x *big.Int, odd bool) (*Point, error) {
	if x.Sign() < 0 || x.Cmp(c.FieldPrime()) >= 0 {
		return nil, ErrFieldOverflow
	}

	var buf [32]byte
	x.FillBytes(buf[:])

	var pt Point
	pt.p.X.SetBytes(&buf)
	if !secp.DecompressY(&pt.p.X, odd, &pt.p.Y) {
		return nil, fmt.Errorf("%w: %x", ErrNotOnCurve, buf)
	}
	pt.p.Z.SetInt(1)
	return &pt, nil
}

// Order 返回群阶 n
func (c *Curve) Order() *big.Int {
	return new(big.Int).Set(btcec.S256().N)
}

// FieldPrime 返回域素数 p
func (c *Curve) FieldPrime() *big.Int {
	return new(big.Int).Set(btcec.S256().P)
}

// ScalarFromBytes 将 32 字节大端整数解析为标量
//
// 值为零或不小于 n 时 ok 为 false。
func ScalarFromBytes(b []byte) (s secp.ModNScalar, ok bool) {
	if len(b) != 32 {
		return s, false
	}
	overflow := s.SetByteSlice(b)
	return s, !overflow && !s.IsZero()
}
