package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benjivesterby/go-dsa/dsa"
	"github.com/benjivesterby/go-dsa/internal/digest"
	"github.com/benjivesterby/go-dsa/internal/keyfile"
)

const (
	msgValid   = "The signature is valid for the given data."
	msgInvalid = "The signature is NOT valid for the given data."
)

func (a *app) verifyCmd() *cobra.Command {
	var input, pubPath, sigPath string
	cmd := &cobra.Command{
		Use:     "verify",
		Aliases: []string{"ver"},
		Short:   "Verify the signature of a file",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" || pubPath == "" || sigPath == "" {
				return errors.New("--input, --public-key and --signature are required")
			}
			pub, err := a.loadPublicKey(pubPath)
			if err != nil {
				return err
			}
			sig, err := keyfile.ReadSignature(sigPath)
			if err != nil {
				return err
			}
			h, err := digest.File(input, a.cfg.Hash)
			if err != nil {
				return err
			}

			var verifier dsa.SignatureValidator = a.engine()
			verifier.ImportPublicKey(pub)
			ok := verifier.VerifySignature(h, sig)
			a.log.Debug("signature checked", zap.String("input", input), zap.Bool("valid", ok))
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), msgValid)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), msgInvalid)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&input, "input", "i", "", "signed file")
	fl.StringVarP(&pubPath, "public-key", "p", "", "public key file")
	fl.StringVarP(&sigPath, "signature", "s", "", "signature file")
	return cmd
}
