// Package main implements the command line tool of the Hedera client.
//
// Unix example:
//
//	# Print an account with the checksum of the test network.
//	hedera checksum --network testnet --address 0.0.1001
//
//	# Submit a transaction written in JSON and print the response.
//	hedera submit --config client.yaml --file tx.json
//
//	# Print the receipt of the transaction.
//	hedera receipt --config client.yaml --tx 0.0.1001@1656352251.277559886
package main

import (
	"fmt"
	"os"
)

func main() {
	err := run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return newApp(os.Stdout, openClient).Run(args)
}
