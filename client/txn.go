package client

import (
	"github.com/stratadb/strata-go/common"
)

// Txn is a handle to a server-side transaction. It is created by
// Client.Begin and settled exactly once by Commit or Abort. Operations
// issued through the client while a transaction is open execute inside it;
// transaction scoping is a server concern, the handle only carries the id.
type Txn struct {
	id     uint64
	client *Client
}

// Begin starts a transaction and returns its handle.
func (c *Client) Begin() (*Txn, error) {
	frame, err := c.invoke(common.OpBeginTxn, nil, common.OpTxnId)
	if err != nil {
		return nil, &TransactionError{Op: "begin", Err: err}
	}

	id, err := common.DecodeTxnId(frame.Payload)
	if err != nil {
		return nil, &TransactionError{Op: "begin", Err: &ProtocolError{Op: common.OpBeginTxn.String(), Err: err}}
	}

	return &Txn{id: id, client: c}, nil
}

// Resume rebuilds a transaction handle from a known id, e.g. one persisted
// by another process. No server round-trip happens; an invalid id surfaces
// on Commit or Abort.
func (c *Client) Resume(id uint64) *Txn {
	return &Txn{id: id, client: c}
}

// ID returns the server-assigned transaction id.
func (t *Txn) ID() uint64 {
	return t.id
}

// Commit commits the transaction.
func (t *Txn) Commit() error {
	_, err := t.client.invoke(common.OpCommitTxn, common.EncodeTxnId(t.id), common.OpOK)
	if err != nil {
		return &TransactionError{TxnID: t.id, Op: "commit", Err: err}
	}
	return nil
}

// Abort rolls the transaction back.
func (t *Txn) Abort() error {
	_, err := t.client.invoke(common.OpAbortTxn, common.EncodeTxnId(t.id), common.OpOK)
	if err != nil {
		return &TransactionError{TxnID: t.id, Op: "abort", Err: err}
	}
	return nil
}
