package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benjivesterby/go-dsa/dsa"
	"github.com/benjivesterby/go-dsa/internal/digest"
	"github.com/benjivesterby/go-dsa/internal/keyfile"
)

func (a *app) signCmd() *cobra.Command {
	var input, pubPath, privPath, output string
	cmd := &cobra.Command{
		Use:     "sign",
		Aliases: []string{"enc"},
		Short:   "Sign a file with a key pair",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" || pubPath == "" || privPath == "" {
				return errors.New("--input, --public-key and --private-key are required")
			}
			pub, err := a.loadPublicKey(pubPath)
			if err != nil {
				return err
			}
			priv, err := keyfile.ReadPrivateKey(privPath)
			if err != nil {
				return err
			}
			if err := priv.Validate(pub); err != nil {
				return err
			}

			h, err := digest.File(input, a.cfg.Hash)
			if err != nil {
				return err
			}
			var signer dsa.SignatureCreator = a.engine()
			signer.ImportPublicKey(pub)
			signer.ImportPrivateKey(priv)
			sig, err := signer.CreateSignature(h)
			if err != nil {
				return err
			}

			if output == "" {
				output = keyfile.SignatureFileName(input, keyfile.Timestamp(a.now()))
			}
			if err := keyfile.WriteSignature(output, sig); err != nil {
				return err
			}
			a.log.Debug("file signed", zap.String("input", input), zap.String("hash", a.cfg.Hash))
			a.printResult(cmd, output)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&input, "input", "i", "", "file to sign")
	fl.StringVarP(&pubPath, "public-key", "p", "", "public key file")
	fl.StringVarP(&privPath, "private-key", "s", "", "private key file")
	fl.StringVarP(&output, "output", "o", "", "signature file (default {input}_DigitalSignature_{timestamp}.sgn)")
	return cmd
}

// Read a public key and check its domain parameters.
func (a *app) loadPublicKey(path string) (*dsa.PublicKey, error) {
	pub, err := keyfile.ReadPublicKey(path)
	if err != nil {
		return nil, err
	}
	if err := pub.Validate(a.cfg.Witnesses); err != nil {
		return nil, err
	}
	return pub, nil
}
