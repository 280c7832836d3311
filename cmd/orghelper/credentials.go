// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/orghelper/cmd/orghelper/cli"
	"github.com/bureau-foundation/orghelper/lib/config"
	"github.com/bureau-foundation/orghelper/lib/sealed"
	"github.com/bureau-foundation/orghelper/lib/secret"
)

func (a *app) credentialsCommand() *cli.Command {
	return &cli.Command{
		Name:    "credentials",
		Summary: "Generate age identities and seal credential files",
		Description: `Manage age-sealed credential files.

A sealed credential file is an age-encrypted YAML document with the
keys auth_method, access_token, app_id, installation_id and
private_key. Point credential.sealed_file at it and
credential.identity_file at the identity that opens it.`,
		Subcommands: []*cli.Command{
			a.keygenCommand(),
			a.sealCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Create an identity and seal an App credential to it",
				Command:     "orghelper credentials keygen --identity-file ~/.config/orghelper/identity > recipient.txt && orghelper credentials seal --recipient $(cat recipient.txt) --from-file app.yaml --output app.age",
			},
		},
	}
}

type keygenParams struct {
	IdentityFile string `flag:"identity-file" desc:"write the identity to this file (mode 0600) instead of stderr"`
}

func (a *app) keygenCommand() *cli.Command {
	var params keygenParams
	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an age identity",
		Description: `Generate an age X25519 identity.

The recipient (public key) goes to stdout. The identity (private key)
goes to stderr, or to --identity-file.`,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("keygen", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			identity, err := sealed.GenerateIdentity()
			if err != nil {
				return cli.Internal("%v", err)
			}
			defer identity.Close()

			if params.IdentityFile != "" {
				if err := writeIdentity(params.IdentityFile, identity.Secret); err != nil {
					return cli.Internal("writing identity: %v", err)
				}
			} else {
				fmt.Fprintf(a.stderr, "# Identity (keep this secret; use it as credential.identity_file):\n")
				fmt.Fprintf(a.stderr, "%s\n", identity.Secret.String())
			}
			fmt.Fprintf(a.stdout, "%s\n", identity.Recipient)
			return nil
		},
	}
}

// writeIdentity creates path exclusively with mode 0600.
func writeIdentity(path string, identity *secret.Buffer) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := file.Write(identity.Bytes()); err != nil {
		file.Close()
		return err
	}
	if _, err := file.Write([]byte("\n")); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

type sealParams struct {
	Recipients []string `flag:"recipient" desc:"age recipient (age1...); repeatable (required)"`
	FromFile   string   `flag:"from-file" desc:"plaintext credential document, - for stdin" default:"-"`
	Output     string   `flag:"output" desc:"write the sealed file here instead of stdout"`
}

func (a *app) sealCommand() *cli.Command {
	var params sealParams
	return &cli.Command{
		Name:    "seal",
		Summary: "Encrypt a credential document to age recipients",
		Usage:   "orghelper credentials seal --recipient <age1...> [--from-file <path>] [--output <path>]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("seal", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if len(params.Recipients) == 0 {
				return cli.Validation("--recipient is required")
			}

			plaintext, err := secret.ReadFile(params.FromFile)
			if err != nil {
				return cli.Validation("--from-file: %v", err)
			}
			defer plaintext.Close()

			if err := config.CheckSealedDocument(plaintext.Bytes()); err != nil {
				return cli.Validation("--from-file: %v", err)
			}

			ciphertext, err := sealed.Seal(plaintext.Bytes(), params.Recipients)
			if err != nil {
				return cli.Validation("%v", err)
			}

			if params.Output == "" {
				_, err = a.stdout.Write(ciphertext)
			} else {
				err = os.WriteFile(params.Output, ciphertext, 0o600)
			}
			if err != nil {
				return cli.Internal("writing sealed file: %v", err)
			}
			return nil
		},
	}
}
