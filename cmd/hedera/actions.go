package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.dedis.ch/hedera"
	"go.dedis.ch/hedera/cli"
	"go.dedis.ch/hedera/client"
	"go.dedis.ch/hedera/crypto/ed25519"
	"go.dedis.ch/hedera/crypto/loader"
	"go.dedis.ch/hedera/crypto/secp256k1"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/query"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/serde/json"
	"go.dedis.ch/hedera/token"
	"go.dedis.ch/hedera/topic"
	"go.dedis.ch/hedera/transaction"
	"golang.org/x/xerrors"
)

// serve runs the HTTP server until it fails or the process is interrupted. It
// can be replaced in the tests.
var serve = serveUntilSignal

type actions struct {
	out       io.Writer
	newClient clientFactory
}

func (a actions) checksum(flags cli.Flags) error {
	id, err := ledger.ParseID(flags.String("network"))
	if err != nil {
		return xerrors.Errorf("invalid network: %v", err)
	}

	account, err := entity.ParseAccountID(flags.String("address"))
	if err != nil {
		return xerrors.Errorf("invalid address: %v", err)
	}

	if !flags.Bool("validate") {
		fmt.Fprintln(a.out, account.ToStringWithChecksum(id))
		return nil
	}

	if account.Checksum == "" {
		return xerrors.Errorf("missing checksum in '%s'", flags.String("address"))
	}

	err = account.ValidateChecksum(id)
	if err != nil {
		return xerrors.Errorf("invalid address: %w", err)
	}

	fmt.Fprintf(a.out, "%v is valid on %v\n", account, id)

	return nil
}

func (a actions) keygen(flags cli.Flags) error {
	var generator loader.Generator

	switch flags.String("type") {
	case client.KeyTypeEd25519:
		generator = ed25519.Generator{}
	case client.KeyTypeSecp256k1:
		generator = secp256k1.Generator{}
	default:
		return xerrors.Errorf("unknown key type '%s'", flags.String("type"))
	}

	data, err := loader.NewFileLoader(flags.String("out")).LoadOrCreate(generator)
	if err != nil {
		return xerrors.Errorf("couldn't load key: %v", err)
	}

	var pubkey interface {
		fmt.Stringer
		DER() []byte
	}

	switch generator.(type) {
	case ed25519.Generator:
		signer, err := ed25519.NewSignerFromBytes(data)
		if err != nil {
			return xerrors.Errorf("invalid key: %v", err)
		}

		pubkey = signer.GetPublicKey()
	default:
		signer, err := secp256k1.NewSignerFromBytes(data)
		if err != nil {
			return xerrors.Errorf("invalid key: %v", err)
		}

		pubkey = signer.GetPublicKey()
	}

	fmt.Fprintf(a.out, "%v\nder:%x\n", pubkey, pubkey.DER())

	return nil
}

func (a actions) encode(flags cli.Flags) error {
	tx, err := readTransaction(flags.String("file"))
	if err != nil {
		return err
	}

	body, err := tx.BodyBytes()
	if err != nil {
		return xerrors.Errorf("couldn't encode body: %v", err)
	}

	fmt.Fprintln(a.out, hex.EncodeToString(body))

	return nil
}

func (a actions) decode(flags cli.Flags) error {
	data, err := hex.DecodeString(flags.String("hex"))
	if err != nil {
		return xerrors.Errorf("malformed body: %v", err)
	}

	tx, err := transaction.FromBytes(data)
	if err != nil {
		return xerrors.Errorf("couldn't decode transaction: %v", err)
	}

	return a.print(tx)
}

func (a actions) submit(flags cli.Flags) error {
	tx, err := readTransaction(flags.String("file"))
	if err != nil {
		return err
	}

	c, err := a.newClient(flags.String("config"))
	if err != nil {
		return xerrors.Errorf("couldn't create client: %v", err)
	}

	defer c.Close()

	resp, err := c.Execute(context.Background(), tx)
	if err != nil {
		return xerrors.Errorf("couldn't submit transaction: %v", err)
	}

	return a.print(resp)
}

func (a actions) receipt(flags cli.Flags) error {
	txID, err := transaction.ParseID(flags.String("tx"))
	if err != nil {
		return xerrors.Errorf("invalid transaction id: %v", err)
	}

	c, err := a.newClient(flags.String("config"))
	if err != nil {
		return xerrors.Errorf("couldn't create client: %v", err)
	}

	defer c.Close()

	q := query.New(transaction.NewReceiptQuery().SetTransactionID(txID))

	resp, err := c.Query(context.Background(), q)
	if err != nil {
		return xerrors.Errorf("couldn't get receipt: %v", err)
	}

	receipt, err := transaction.ReceiptFromResponse(resp)
	if err != nil {
		return xerrors.Errorf("couldn't read receipt: %v", err)
	}

	return a.print(receipt)
}

func (a actions) nftInfo(flags cli.Flags) error {
	nq, err := readNftInfoQuery(flags.String("nft"), flags.String("file"))
	if err != nil {
		return err
	}

	c, err := a.newClient(flags.String("config"))
	if err != nil {
		return xerrors.Errorf("couldn't create client: %v", err)
	}

	defer c.Close()

	resp, err := c.Query(context.Background(), query.New(nq))
	if err != nil {
		return xerrors.Errorf("couldn't get nft info: %v", err)
	}

	info, err := token.NftInfoFromResponse(resp)
	if err != nil {
		return xerrors.Errorf("couldn't read nft info: %v", err)
	}

	return a.print(info)
}

func (a actions) subscribe(flags cli.Flags) error {
	topicID, err := entity.ParseTopicID(flags.String("topic"))
	if err != nil {
		return xerrors.Errorf("invalid topic id: %v", err)
	}

	c, err := a.newClient(flags.String("config"))
	if err != nil {
		return xerrors.Errorf("couldn't create client: %v", err)
	}

	defer c.Close()

	q := topic.NewMessageQuery().SetTopicID(topicID)

	since := flags.Duration("since")
	if since > 0 {
		q.SetStartTime(time.Now().Add(-since))
	}

	if flags.Int("limit") > 0 {
		q.SetLimit(uint64(flags.Int("limit")))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = c.Subscribe(ctx, q, func(msg topic.Message) error {
		return a.print(msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return xerrors.Errorf("subscription failed: %v", err)
	}

	return nil
}

func (a actions) journal(flags cli.Flags) error {
	c, err := a.newClient(flags.String("config"))
	if err != nil {
		return xerrors.Errorf("couldn't create client: %v", err)
	}

	defer c.Close()

	j := c.GetJournal()
	if j == nil {
		return xerrors.New("no journal in the configuration")
	}

	err = j.Scan(flags.String("prefix"), func(key string, value []byte) error {
		_, err := fmt.Fprintf(a.out, "%s %s\n", key, value)
		return err
	})
	if err != nil {
		return xerrors.Errorf("couldn't read journal: %v", err)
	}

	return nil
}

func (a actions) metrics(flags cli.Flags) error {
	for _, c := range hedera.PromCollectors {
		err := prometheus.DefaultRegisterer.Register(c)
		if err != nil {
			fmt.Fprintf(a.out, "ERROR: failed to register: %v\n", err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle(flags.String("path"), promhttp.Handler())

	srv := &http.Server{
		Addr:              flags.String("addr"),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(a.out, "serving prometheus metrics on %s%s\n", srv.Addr, flags.String("path"))

	err := serve(srv)
	if err != nil {
		return xerrors.Errorf("metrics server failed: %v", err)
	}

	return nil
}

func (a actions) print(msg serde.Message) error {
	data, err := msg.Serialize(json.NewContext())
	if err != nil {
		return xerrors.Errorf("couldn't encode: %v", err)
	}

	fmt.Fprintln(a.out, string(data))

	return nil
}

func readTransaction(path string) (*transaction.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("couldn't read transaction: %v", err)
	}

	tx, err := transaction.TransactionOf(json.NewContext(), data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode transaction: %v", err)
	}

	return tx, nil
}

// readNftInfoQuery returns the query of the file when there is one, or the
// query of the identifier otherwise.
func readNftInfoQuery(nft, path string) (*token.NftInfoQuery, error) {
	if path == "" {
		if nft == "" {
			return nil, xerrors.New("missing nft id or query file")
		}

		nftID, err := entity.ParseNftID(nft)
		if err != nil {
			return nil, xerrors.Errorf("invalid nft id: %v", err)
		}

		return token.NewNftInfoQuery().SetNftID(nftID), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("couldn't read query: %v", err)
	}

	msg, err := token.NewNftInfoQueryFactory().Deserialize(json.NewContext(), data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode query: %v", err)
	}

	nq, ok := msg.(*token.NftInfoQuery)
	if !ok || nq.GetNftID() == nil {
		return nil, xerrors.New("query without nft id")
	}

	return nq, nil
}

func serveUntilSignal(srv *http.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)

	go func() {
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	hedera.Logger.Info().Msg("stopping metrics server")

	return srv.Shutdown(context.Background())
}
