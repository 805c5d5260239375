package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/weisyn/securemsg/client/core/output"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
)

func newAddressCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "显示派生路径对应的地址与公钥",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := c.keyRef(cmd.Context())
			if err != nil {
				return err
			}
			addr, err := ref.Provider.Address(ref.Network, ref.Path)
			if err != nil {
				return err
			}
			pub, err := ref.Provider.PublicKey(ref.Path)
			if err != nil {
				return err
			}

			return c.out.Print(output.Record{
				{Key: "path", Value: ref.Path},
				{Key: "address", Value: addr},
				{Key: "pubkey", Value: hex.EncodeToString(pub.SerializeCompressed())},
			})
		},
	}
}

func newSignCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sign <message|->",
		Short: "签名消息",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(cmd, args[0])
			if err != nil {
				return err
			}
			ref, err := c.keyRef(cmd.Context())
			if err != nil {
				return err
			}
			addr, sig, err := c.svc.Signature.SignWithKey(ref, message)
			if err != nil {
				return err
			}

			return c.out.Print(output.Record{
				{Key: "address", Value: addr},
				{Key: "signature", Value: c.codec.encode(sig)},
			})
		},
	}
}

func newSignDigestCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sign-digest <digest-hex>",
		Short: "对 32 字节摘要做 ECDSA 签名（DER）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := codecHex.decode(args[0])
			if err != nil {
				return err
			}
			ref, err := c.keyRef(cmd.Context())
			if err != nil {
				return err
			}
			priv, err := ref.Provider.PrivateKey(ref.Path)
			if err != nil {
				return err
			}
			pub, sig, err := c.svc.Signature.SignDigest(priv, digest)
			if err != nil {
				return err
			}
			return c.out.Print(output.Record{
				{Key: "pubkey", Value: hex.EncodeToString(pub)},
				{Key: "signature", Value: c.codec.encode(sig)},
			})
		},
	}
}

func newVerifyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <address> <signature> <message|->",
		Short: "验证消息签名",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := c.codec.decode(args[1])
			if err != nil {
				return err
			}
			message, err := readMessage(cmd, args[2])
			if err != nil {
				return err
			}
			pub, err := c.svc.Signature.Verify(args[0], sig, message)
			if err != nil {
				return err
			}

			return c.out.Print(output.Record{
				{Key: "signature", Value: "valid"},
				{Key: "pubkey", Value: hex.EncodeToString(pub.SerializeCompressed())},
			})
		},
	}
}

func newEncryptCmd(c *cli) *cobra.Command {
	var (
		sign        bool
		displayOnly bool
	)
	cmd := &cobra.Command{
		Use:   "encrypt <recipient-pubkey-hex> <message|->",
		Short: "为接收方公钥加密消息",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := codecHex.decode(args[0])
			if err != nil {
				return err
			}
			message, err := readMessage(cmd, args[1])
			if err != nil {
				return err
			}

			var signer *crypto.KeyRef
			if sign {
				ref, err := c.keyRef(cmd.Context())
				if err != nil {
					return err
				}
				signer = &ref
			}

			blob, err := c.svc.SecureMessage.Encrypt(recipient, message, displayOnly, signer)
			if err != nil {
				return err
			}
			return c.out.Print(output.Record{
				{Key: "ciphertext", Value: c.codec.encode(blob)},
				{Key: "signed", Value: signer != nil},
			})
		},
	}
	cmd.Flags().BoolVar(&sign, "sign", false, "用本地密钥签名消息")
	cmd.Flags().BoolVar(&displayOnly, "display-only", false, "标记为仅显示")
	return cmd
}

func newDecryptCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <blob>",
		Short: "解密发给本地密钥的消息",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := c.codec.decode(args[0])
			if err != nil {
				return err
			}
			ref, err := c.keyRef(cmd.Context())
			if err != nil {
				return err
			}
			msg, err := c.svc.SecureMessage.Decrypt(ref, blob)
			if err != nil {
				return err
			}

			record := output.Record{
				{Key: "message", Value: string(msg.Message)},
				{Key: "display_only", Value: msg.DisplayOnly},
			}
			if msg.Address != "" {
				record = append(record, output.Field{Key: "signer", Value: msg.Address})
			}
			return c.out.Print(record)
		},
	}
}
