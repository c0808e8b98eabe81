package main

import (
	"io"

	"go.dedis.ch/hedera/cli"
	"go.dedis.ch/hedera/cli/urfave"
	"go.dedis.ch/hedera/client"

	// Registration of the JSON formats of the messages.
	_ "go.dedis.ch/hedera/contract/json"
	_ "go.dedis.ch/hedera/system/json"
	_ "go.dedis.ch/hedera/token/json"
	_ "go.dedis.ch/hedera/topic/json"
	_ "go.dedis.ch/hedera/transaction/json"
)

// clientFactory returns the client of the configuration file.
type clientFactory func(path string) (*client.Client, error)

func openClient(path string) (*client.Client, error) {
	cfg, err := client.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	return client.New(cfg)
}

var configFlag = cli.StringFlag{
	Name:    "config",
	Usage:   "path to the configuration of the client",
	EnvVars: []string{"HEDERA_CONFIG"},
}

func newApp(out io.Writer, factory clientFactory) cli.Application {
	a := actions{out: out, newClient: factory}

	builder := urfave.NewBuilder("hedera", nil)
	builder.(*urfave.Builder).SetUsage("client of the Hedera network")
	builder.(*urfave.Builder).SetWriter(out)

	cmd := builder.SetCommand("checksum")
	cmd.SetDescription("print or validate the checksum of an address")
	cmd.SetFlags(
		cli.StringFlag{
			Name:  "network",
			Usage: "name or identifier of the ledger",
			Value: "mainnet",
		},
		cli.StringFlag{
			Name:     "address",
			Usage:    "address of the entity as shard.realm.num[-checksum]",
			Required: true,
		},
		cli.BoolFlag{
			Name:  "validate",
			Usage: "validate the checksum of the address instead of printing it",
		},
	)
	cmd.SetAction(a.checksum)

	cmd = builder.SetCommand("keygen")
	cmd.SetDescription("load or generate the private key of an operator and print its public key")
	cmd.SetFlags(
		cli.StringFlag{
			Name:     "out",
			Usage:    "path to the key file",
			Required: true,
		},
		cli.StringFlag{
			Name:  "type",
			Usage: "type of the key, ed25519 or secp256k1",
			Value: client.KeyTypeEd25519,
		},
	)
	cmd.SetAction(a.keygen)

	cmd = builder.SetCommand("encode")
	cmd.SetDescription("print the body of a transaction written in JSON in hexadecimal")
	cmd.SetFlags(cli.StringFlag{
		Name:     "file",
		Usage:    "path to the JSON transaction",
		Required: true,
	})
	cmd.SetAction(a.encode)

	cmd = builder.SetCommand("decode")
	cmd.SetDescription("print the body of a transaction in JSON")
	cmd.SetFlags(cli.StringFlag{
		Name:     "hex",
		Usage:    "body of the transaction in hexadecimal",
		Required: true,
	})
	cmd.SetAction(a.decode)

	cmd = builder.SetCommand("submit")
	cmd.SetDescription("sign and submit a transaction written in JSON")
	cmd.SetFlags(configFlag, cli.StringFlag{
		Name:     "file",
		Usage:    "path to the JSON transaction",
		Required: true,
	})
	cmd.SetAction(a.submit)

	cmd = builder.SetCommand("receipt")
	cmd.SetDescription("print the receipt of a transaction")
	cmd.SetFlags(configFlag, cli.StringFlag{
		Name:     "tx",
		Usage:    "identifier of the transaction",
		Required: true,
	})
	cmd.SetAction(a.receipt)

	cmd = builder.SetCommand("nft-info")
	cmd.SetDescription("print the information of a non-fungible token")
	cmd.SetFlags(configFlag,
		cli.StringFlag{
			Name:  "nft",
			Usage: "identifier of the token as shard.realm.num/serial",
		},
		cli.StringFlag{
			Name:  "file",
			Usage: "path to the JSON file of the query, instead of --nft",
		},
	)
	cmd.SetAction(a.nftInfo)

	cmd = builder.SetCommand("subscribe")
	cmd.SetDescription("print the messages of a topic")
	cmd.SetFlags(configFlag,
		cli.StringFlag{
			Name:     "topic",
			Usage:    "identifier of the topic",
			Required: true,
		},
		cli.DurationFlag{
			Name:  "since",
			Usage: "age of the first message, or all the messages when zero",
		},
		cli.IntFlag{
			Name:  "limit",
			Usage: "maximum number of messages, or unlimited when zero",
		},
	)
	cmd.SetAction(a.subscribe)

	cmd = builder.SetCommand("journal")
	cmd.SetDescription("print the responses recorded in the journal")
	cmd.SetFlags(configFlag, cli.StringFlag{
		Name:  "prefix",
		Usage: "prefix of the transaction identifiers",
	})
	cmd.SetAction(a.journal)

	cmd = builder.SetCommand("metrics")
	cmd.SetDescription("serve the Prometheus metrics of the client")
	cmd.SetFlags(
		cli.StringFlag{
			Name:  "addr",
			Usage: "address of the HTTP server",
			Value: "127.0.0.1:9090",
		},
		cli.StringFlag{
			Name:  "path",
			Usage: "path of the metrics",
			Value: "/metrics",
		},
	)
	cmd.SetAction(a.metrics)

	return builder.Build()
}
