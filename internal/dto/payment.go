package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Token transfer directions.
const (
	TransferIncoming = "INCOMING"
	TransferOutgoing = "OUTGOING"
)

// RecordTokenTransferRequest defines the payload for recording a confirmed
// on-chain stablecoin transfer as a ledger entry. Confirmation happens
// outside this service; by the time this request arrives the transfer is
// final and the amount is known.
type RecordTokenTransferRequest struct {
	Direction string `json:"direction" binding:"required,oneof=INCOMING OUTGOING"`
	// TxHash is the chain transaction hash, used as the entry's external
	// payment correlation token. Unique per organization.
	TxHash string `json:"txHash" binding:"required"`
	// TokenAccountID is the ledger account holding the on-chain stablecoin
	// balance.
	TokenAccountID string `json:"tokenAccountID" binding:"required"`
	// CounterAccountID is the other side of the movement, typically accounts
	// receivable for incoming and accounts payable for outgoing transfers.
	CounterAccountID string          `json:"counterAccountID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required,nonnegdecimal"`
	// TokenAmount is the raw on-chain amount when it differs from the booked
	// fiat-denominated amount.
	TokenAmount *decimal.Decimal `json:"tokenAmount"`
	JournalID   string           `json:"journalID" binding:"required"`
	Date        time.Time        `json:"date" binding:"required"`
	Description string           `json:"description"`
}
