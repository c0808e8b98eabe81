// Package client implements a client of a Hedera network. It holds the
// connections to the nodes and to the mirror node, signs the transactions
// with the keys of the operator and records the responses of the nodes in an
// optional journal.
//
// Documentation Last Review: 17.10.2026
package client

import (
	"bytes"
	"context"
	"io"
	"sort"
	"time"

	otgrpc "github.com/opentracing-contrib/go-grpc"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"go.dedis.ch/hedera"
	"go.dedis.ch/hedera/client/journal"
	"go.dedis.ch/hedera/crypto/ed25519"
	"go.dedis.ch/hedera/crypto/loader"
	"go.dedis.ch/hedera/crypto/secp256k1"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/internal/tracing"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/query"
	"go.dedis.ch/hedera/serde/json"
	"go.dedis.ch/hedera/topic"
	"go.dedis.ch/hedera/transaction"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	// Encoding of the responses written in the journal.
	_ "go.dedis.ch/hedera/transaction/json"
)

const tracerService = "hedera-client"

// getTracer is the function used to get the tracer of the connections. It can
// be replaced in the tests.
var getTracer = tracing.GetTracer

// Journal is the storage of the responses to the transactions, indexed by
// transaction identifier.
type Journal interface {
	Write(key string, value []byte) error
	Read(key string) ([]byte, error)
	Scan(prefix string, fn func(string, []byte) error) error
	Close() error
}

type node struct {
	id   entity.AccountID
	conn grpc.ClientConnInterface
}

// Client is a client of a Hedera network.
type Client struct {
	ledgerID  ledger.ID
	nodes     []node
	mirror    grpc.ClientConnInterface
	closers   []io.Closer
	tracer    opentracing.Tracer
	operator  *entity.AccountID
	signers   []transaction.Signer
	journal   Journal
	timeout   time.Duration
	checksums bool
	logger    zerolog.Logger
}

type clientTemplate struct {
	signers   []transaction.Signer
	journal   Journal
	nodeConns map[string]grpc.ClientConnInterface
	mirror    grpc.ClientConnInterface
}

// Option is the type of the options to create a client.
type Option func(*clientTemplate)

// WithSigner adds a signer to the ones of the operator.
func WithSigner(signer transaction.Signer) Option {
	return func(tmpl *clientTemplate) {
		tmpl.signers = append(tmpl.signers, signer)
	}
}

// WithJournal sets the journal instead of opening the one of the
// configuration.
func WithJournal(j Journal) Option {
	return func(tmpl *clientTemplate) {
		tmpl.journal = j
	}
}

// WithNodeConn sets the connection of the node instead of dialing its
// address.
func WithNodeConn(account string, conn grpc.ClientConnInterface) Option {
	return func(tmpl *clientTemplate) {
		tmpl.nodeConns[account] = conn
	}
}

// WithMirrorConn sets the connection of the mirror node instead of dialing
// its address.
func WithMirrorConn(conn grpc.ClientConnInterface) Option {
	return func(tmpl *clientTemplate) {
		tmpl.mirror = conn
	}
}

// New creates a client from the configuration. The connections are created
// lazily by gRPC, so no remote call happens here.
func New(cfg Config, opts ...Option) (*Client, error) {
	tmpl := clientTemplate{
		nodeConns: make(map[string]grpc.ClientConnInterface),
	}

	for _, opt := range opts {
		opt(&tmpl)
	}

	ledgerID, err := ledger.ParseID(cfg.Network)
	if err != nil {
		return nil, xerrors.Errorf("invalid network: %v", err)
	}

	c := &Client{
		ledgerID:  ledgerID,
		signers:   tmpl.signers,
		journal:   tmpl.journal,
		timeout:   cfg.Timeout,
		checksums: cfg.ValidateChecksums,
		logger:    hedera.Logger.With().Str("network", ledgerID.String()).Logger(),
	}

	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	if cfg.Operator != "" {
		operator, err := entity.ParseAccountID(cfg.Operator)
		if err != nil {
			return nil, xerrors.Errorf("invalid operator: %v", err)
		}

		c.operator = &operator
	}

	if cfg.OperatorKey != "" {
		signer, err := loadSigner(cfg.OperatorKey, cfg.OperatorKeyType)
		if err != nil {
			return nil, xerrors.Errorf("couldn't load operator key: %v", err)
		}

		c.signers = append([]transaction.Signer{signer}, c.signers...)
	}

	tracer, err := getTracer(tracerService)
	if err != nil {
		return nil, xerrors.Errorf("failed to get tracer: %v", err)
	}

	c.tracer = tracer

	dialOpts := dialOptions(tracer, cfg.MaxMessageSize)

	for account, addr := range cfg.Nodes {
		id, err := entity.ParseAccountID(account)
		if err != nil {
			c.Close()
			return nil, xerrors.Errorf("invalid node account '%s': %v", account, err)
		}

		conn, ok := tmpl.nodeConns[account]
		if ok {
			c.nodes = append(c.nodes, node{id: id, conn: conn})
			continue
		}

		cc, err := grpc.NewClient(addr, dialOpts...)
		if err != nil {
			c.Close()
			return nil, xerrors.Errorf("couldn't dial node %v: %v", id, err)
		}

		c.nodes = append(c.nodes, node{id: id, conn: cc})
		c.closers = append(c.closers, cc)
	}

	sort.Slice(c.nodes, func(i, j int) bool {
		return c.nodes[i].id.String() < c.nodes[j].id.String()
	})

	c.mirror = tmpl.mirror
	if c.mirror == nil && cfg.Mirror != "" {
		cc, err := grpc.NewClient(cfg.Mirror, dialOpts...)
		if err != nil {
			c.Close()
			return nil, xerrors.Errorf("couldn't dial mirror: %v", err)
		}

		c.mirror = cc
		c.closers = append(c.closers, cc)
	}

	if c.journal == nil && cfg.Journal != "" {
		j, err := journal.Open(cfg.Journal)
		if err != nil {
			c.Close()
			return nil, xerrors.Errorf("couldn't open journal: %v", err)
		}

		c.journal = j
	}

	return c, nil
}

func dialOptions(tracer opentracing.Tracer, maxSize int) []grpc.DialOption {
	callOpts := []grpc.CallOption{grpc.ForceCodec(hapi.Codec{})}
	if maxSize > 0 {
		callOpts = append(callOpts, grpc.MaxCallRecvMsgSize(maxSize), grpc.MaxCallSendMsgSize(maxSize))
	}

	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			otgrpc.OpenTracingClientInterceptor(tracer),
			metricsUnaryInterceptor,
		),
		grpc.WithChainStreamInterceptor(
			otgrpc.OpenTracingStreamClientInterceptor(tracer),
			metricsStreamInterceptor,
		),
		grpc.WithDefaultCallOptions(callOpts...),
	}
}

func loadSigner(path, keyType string) (transaction.Signer, error) {
	data, err := loader.NewFileLoader(path).Load()
	if err != nil {
		return nil, xerrors.Errorf("couldn't read key: %v", err)
	}

	switch keyType {
	case KeyTypeSecp256k1:
		return secp256k1.NewSignerFromBytes(data)
	case KeyTypeEd25519, "":
		return ed25519.NewSignerFromBytes(data)
	default:
		return nil, xerrors.Errorf("unknown key type '%s'", keyType)
	}
}

// GetLedgerID returns the ledger of the network.
func (c *Client) GetLedgerID() ledger.ID {
	return c.ledgerID
}

// GetOperator returns the account of the operator, or nil.
func (c *Client) GetOperator() *entity.AccountID {
	return c.operator
}

// GetNodes returns the accounts of the nodes in ascending order.
func (c *Client) GetNodes() []entity.AccountID {
	ids := make([]entity.AccountID, len(c.nodes))
	for i, n := range c.nodes {
		ids[i] = n.id
	}

	return ids
}

// GetJournal returns the journal of the client, or nil.
func (c *Client) GetJournal() Journal {
	return c.journal
}

func (c *Client) nodeOf(id *entity.AccountID) (node, error) {
	if len(c.nodes) == 0 {
		return node{}, xerrors.New("no node available")
	}

	if id == nil {
		return c.nodes[0], nil
	}

	for _, n := range c.nodes {
		if sameAccount(n.id, *id) {
			return n, nil
		}
	}

	return node{}, xerrors.Errorf("unknown node %v", id)
}

// sameAccount compares the accounts without their checksums.
func sameAccount(a, b entity.AccountID) bool {
	return a.Shard == b.Shard && a.Realm == b.Realm && a.Num == b.Num &&
		bytes.Equal(a.Alias, b.Alias)
}

// Execute fills the missing transaction identifier and node of the
// transaction, signs it and submits it to the node. The response is written
// in the journal when there is one.
func (c *Client) Execute(ctx context.Context, tx *transaction.Transaction) (transaction.Response, error) {
	n, err := c.nodeOf(tx.GetNodeAccountID())
	if err != nil {
		return transaction.Response{}, xerrors.Errorf("couldn't select node: %v", err)
	}

	tx.SetNodeAccountID(n.id)

	if tx.GetTransactionID() == nil {
		if c.operator == nil {
			return transaction.Response{}, xerrors.New("missing transaction id and operator")
		}

		tx.SetTransactionID(transaction.NewID(*c.operator))
	}

	if c.checksums {
		err = tx.ValidateChecksums(c.ledgerID)
		if err != nil {
			return transaction.Response{}, xerrors.Errorf("invalid checksum: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, logger, finish := c.startSpan(ctx, "execute")
	defer finish()

	resp, err := tx.Execute(ctx, n.conn, c.signers...)
	if err != nil {
		return transaction.Response{}, xerrors.Errorf("couldn't execute: %w", err)
	}

	logger.Info().
		Stringer("transaction", resp.TransactionID).
		Stringer("node", resp.NodeAccountID).
		Stringer("status", resp.Status).
		Msg("transaction submitted")

	c.record(logger, resp)

	return resp, nil
}

// record writes the response in the journal. A failure is only logged as the
// transaction is already submitted.
func (c *Client) record(logger zerolog.Logger, resp transaction.Response) {
	if c.journal == nil {
		return
	}

	data, err := resp.Serialize(json.NewContext())
	if err != nil {
		logger.Warn().Err(err).Msg("couldn't encode response")
		return
	}

	err = c.journal.Write(resp.TransactionID.String(), data)
	if err != nil {
		logger.Warn().Err(err).Msg("couldn't write journal")
	}
}

// Query sends the query to the first node and returns the response when the
// node accepted it.
func (c *Client) Query(ctx context.Context, q *query.Query) (*hapi.Response, error) {
	n, err := c.nodeOf(nil)
	if err != nil {
		return nil, xerrors.Errorf("couldn't select node: %v", err)
	}

	if c.checksums {
		err = q.ValidateChecksums(c.ledgerID)
		if err != nil {
			return nil, xerrors.Errorf("invalid checksum: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, _, finish := c.startSpan(ctx, "query")
	defer finish()

	resp, err := q.Execute(ctx, n.conn)
	if err != nil {
		return nil, xerrors.Errorf("couldn't query: %w", err)
	}

	err = query.CheckPrecheck(resp)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Subscribe streams the messages of the topic from the mirror node until the
// end of the stream or the cancellation of the context. The timeout of the
// client does not apply.
func (c *Client) Subscribe(ctx context.Context, q *topic.MessageQuery, fn topic.Handler) error {
	if c.mirror == nil {
		return xerrors.New("no mirror node")
	}

	if c.checksums {
		err := q.ValidateChecksums(c.ledgerID)
		if err != nil {
			return xerrors.Errorf("invalid checksum: %w", err)
		}
	}

	ctx, _, finish := c.startSpan(ctx, "subscribe")
	defer finish()

	return q.Subscribe(ctx, c.mirror, fn)
}

// ReadJournal returns the response of the transaction recorded in the
// journal, or nil when there is none.
func (c *Client) ReadJournal(id transaction.ID) (*transaction.Response, error) {
	if c.journal == nil {
		return nil, xerrors.New("no journal")
	}

	data, err := c.journal.Read(id.String())
	if err != nil {
		return nil, xerrors.Errorf("couldn't read journal: %v", err)
	}

	if data == nil {
		return nil, nil
	}

	msg, err := transaction.NewResponseFactory().Deserialize(json.NewContext(), data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode response: %v", err)
	}

	resp := msg.(transaction.Response)

	return &resp, nil
}

func (c *Client) startSpan(ctx context.Context, op string) (context.Context, zerolog.Logger, func()) {
	correlation := xid.New()

	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, c.tracer, op)
	span.SetTag(tracing.CorrelationTag, correlation.String())
	span.SetTag(tracing.NetworkTag, c.ledgerID.String())

	logger := c.logger.With().Stringer(tracing.CorrelationTag, correlation).Logger()

	return ctx, logger, span.Finish
}

// Close closes the connections and the journal.
func (c *Client) Close() error {
	var errs []error

	for _, closer := range c.closers {
		err := closer.Close()
		if err != nil {
			errs = append(errs, err)
		}
	}

	c.closers = nil

	if c.journal != nil {
		err := c.journal.Close()
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return xerrors.Errorf("couldn't close client: %v", errs)
	}

	return nil
}
