// internal/attest/attest.go
//
// Turns a finished game.Result into a blob payload and hands it to a Sink.
//
// Encoding, in order:
//  1. JSON of the Result ({word_hash, guess_hashes, success, timestamp}).
//  2. Standard base64 of that JSON text; the base64 bytes are the blob data.
//  3. A 10-byte namespace tag that groups WordTia blobs on chain.
//
// There is no retry, batching or queueing: one Submit is one Sink call.
package attest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordtia/internal/game"
)

// NamespaceSize is the length of a v0 namespace ID.
const NamespaceSize = 10

// DefaultNamespace is the tag WordTia blobs are published under.
const DefaultNamespace = "WORDTIATIA"

// DefaultExplorer is the Celenium transaction page on the mocha-4 testnet.
const DefaultExplorer = "https://mocha-4.celenium.io/tx/%s"

// ErrNamespaceLength is returned for tags that are not exactly NamespaceSize bytes.
var ErrNamespaceLength = errors.New("attest: namespace must be 10 bytes")

// Namespace is the fixed-size category tag of a blob.
type Namespace [NamespaceSize]byte

// NewNamespace validates tag and converts it.
func NewNamespace(tag string) (Namespace, error) {
	var ns Namespace
	if len(tag) != NamespaceSize {
		return ns, fmt.Errorf("%w: got %d", ErrNamespaceLength, len(tag))
	}
	copy(ns[:], tag)
	return ns, nil
}

func (n Namespace) String() string { return string(n[:]) }

// Payload is a transport-ready blob.
type Payload struct {
	Namespace Namespace
	Data      []byte
}

// TxConfig carries transaction options through to the node.
// Zero values leave the choice to the node.
type TxConfig struct {
	GasPrice          float64
	Gas               uint64
	KeyName           string
	SignerAddress     string
	FeeGranterAddress string
}

// Receipt identifies where a blob landed.
type Receipt struct {
	Height int64
	TxHash string
}

// Sink is anything that can durably publish a payload.
type Sink interface {
	Attest(ctx context.Context, p Payload, cfg TxConfig) (Receipt, error)
}

// Encode serializes r into a payload under ns.
func Encode(r game.Result, ns Namespace) (Payload, error) {
	js, err := json.Marshal(r)
	if err != nil {
		return Payload{}, fmt.Errorf("attest: marshal result: %w", err)
	}
	data := make([]byte, base64.StdEncoding.EncodedLen(len(js)))
	base64.StdEncoding.Encode(data, js)
	return Payload{Namespace: ns, Data: data}, nil
}

// Decode reverses the data half of Encode.
func Decode(p Payload) (game.Result, error) {
	var r game.Result
	js, err := base64.StdEncoding.DecodeString(string(p.Data))
	if err != nil {
		return r, fmt.Errorf("attest: decode base64: %w", err)
	}
	if err := json.Unmarshal(js, &r); err != nil {
		return r, fmt.Errorf("attest: unmarshal result: %w", err)
	}
	return r, nil
}

// Submitter binds a sink to a namespace and transaction options.
type Submitter struct {
	Sink      Sink
	Namespace Namespace
	TxConfig  TxConfig
}

// Submit encodes r and publishes it. A serialization failure aborts before
// the sink is called.
func (s *Submitter) Submit(ctx context.Context, r game.Result) (Receipt, error) {
	p, err := Encode(r, s.Namespace)
	if err != nil {
		return Receipt{}, err
	}
	log.Debug().
		Str("namespace", s.Namespace.String()).
		Int("bytes", len(p.Data)).
		Msg("submitting blob")

	rc, err := s.Sink.Attest(ctx, p, s.TxConfig)
	if err != nil {
		return Receipt{}, fmt.Errorf("attest: submit: %w", err)
	}
	log.Info().Int64("height", rc.Height).Str("txhash", rc.TxHash).Msg("blob included")
	return rc, nil
}

// ExplorerLink fills the transaction hash into an explorer URL template.
// Only the first %s is substituted; other percent escapes are left alone.
// Templates without a %s get the hash appended.
func ExplorerLink(template, txHash string) string {
	if template == "" {
		template = DefaultExplorer
	}
	if strings.Contains(template, "%s") {
		return strings.Replace(template, "%s", txHash, 1)
	}
	return strings.TrimRight(template, "/") + "/" + txHash
}
