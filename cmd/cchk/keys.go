package main

import (
	"github.com/urfave/cli"

	"github.com/parastake/compound-checker/keyring"
)

type accountKey struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

var keysCommand = cli.Command{
	Name:  "keys",
	Usage: "Show the development accounts usable as scenario keys.",
	Subcommands: []cli.Command{
		{
			Name:   "list",
			Usage:  "List the development accounts.",
			Action: listKeys,
		},
		{
			Name:  "show",
			Usage: "Show the address of an account name or 0x-prefixed private key.",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:     keyFlag,
					Usage:    "Account name or 0x-prefixed private key",
					Required: true,
				},
			},
			Action: showKey,
		},
	},
}

func listKeys(_ *cli.Context) error {
	kc, err := keyring.CreateDevKeyring()
	if err != nil {
		return err
	}

	keys := make([]*accountKey, 0)
	for _, name := range keyring.DevAccountNames() {
		addr, err := kc.Address(name)
		if err != nil {
			return err
		}
		keys = append(keys, &accountKey{Name: name, Address: addr.Hex()})
	}
	printRespJSON(keys)

	return nil
}

func showKey(ctx *cli.Context) error {
	kc, err := keyring.CreateDevKeyring()
	if err != nil {
		return err
	}

	info, err := kc.ResolveKey(ctx.String(keyFlag))
	if err != nil {
		return err
	}
	printRespJSON(&accountKey{Name: info.Name, Address: info.Address.Hex()})

	return nil
}
