package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benjivesterby/go-dsa/dsa"
	"github.com/benjivesterby/go-dsa/internal/keyfile"
)

func (a *app) keygenCmd() *cobra.Command {
	var (
		size   int
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair ({prefix}-{size}bits.public and .private)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("size") {
				size = a.cfg.KeyBits
			}
			var gen dsa.KeyGenerator = a.engine()
			pub, priv, err := gen.GenerateKeyPair(cmd.Context(), size)
			if err != nil {
				return err
			}

			ts := keyfile.Timestamp(a.now())
			pubName := keyfile.KeyFileName(prefix, size, keyfile.KindPublic, ts)
			privName := keyfile.KeyFileName(prefix, size, keyfile.KindPrivate, ts)
			if err := keyfile.WritePublicKey(pubName, pub); err != nil {
				return err
			}
			a.printResult(cmd, pubName)
			if err := keyfile.WritePrivateKey(privName, priv); err != nil {
				return err
			}
			a.printResult(cmd, privName)
			a.log.Debug("key files written",
				zap.String("public", pubName), zap.String("private", privName))
			return nil
		},
	}
	cmd.Flags().IntVarP(&size, "size", "s", 1024, "bit length of p: 1024|2048|3072 (overrides key_bits)")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "key file name prefix (default DSA-{size}bits_{timestamp})")
	return cmd
}
