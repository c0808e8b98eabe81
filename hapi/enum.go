package hapi

import "fmt"

// ResponseCode is the status returned by the network for a transaction or a
// query. Only a subset of the codes is named, the others are passed through
// with their numeric value.
type ResponseCode int32

// Named response codes.
const (
	ResponseCode_OK                           ResponseCode = 0
	ResponseCode_INVALID_TRANSACTION          ResponseCode = 1
	ResponseCode_PAYER_ACCOUNT_NOT_FOUND      ResponseCode = 2
	ResponseCode_INVALID_NODE_ACCOUNT         ResponseCode = 3
	ResponseCode_TRANSACTION_EXPIRED          ResponseCode = 4
	ResponseCode_INVALID_TRANSACTION_START    ResponseCode = 5
	ResponseCode_INVALID_TRANSACTION_DURATION ResponseCode = 6
	ResponseCode_INVALID_SIGNATURE            ResponseCode = 7
	ResponseCode_MEMO_TOO_LONG                ResponseCode = 8
	ResponseCode_INSUFFICIENT_TX_FEE          ResponseCode = 9
	ResponseCode_INSUFFICIENT_PAYER_BALANCE   ResponseCode = 10
	ResponseCode_DUPLICATE_TRANSACTION        ResponseCode = 11
	ResponseCode_BUSY                         ResponseCode = 12
	ResponseCode_NOT_SUPPORTED                ResponseCode = 13
	ResponseCode_INVALID_FILE_ID              ResponseCode = 14
	ResponseCode_INVALID_ACCOUNT_ID           ResponseCode = 15
	ResponseCode_INVALID_CONTRACT_ID          ResponseCode = 16
	ResponseCode_INVALID_TRANSACTION_ID       ResponseCode = 17
	ResponseCode_RECEIPT_NOT_FOUND            ResponseCode = 18
	ResponseCode_RECORD_NOT_FOUND             ResponseCode = 19
	ResponseCode_INVALID_SOLIDITY_ID          ResponseCode = 20
	ResponseCode_UNKNOWN                      ResponseCode = 21
	ResponseCode_SUCCESS                      ResponseCode = 22
	ResponseCode_FAIL_INVALID                 ResponseCode = 23
	ResponseCode_FAIL_FEE                     ResponseCode = 24
	ResponseCode_FAIL_BALANCE                 ResponseCode = 25
)

var responseCodeNames = map[ResponseCode]string{
	ResponseCode_OK:                           "OK",
	ResponseCode_INVALID_TRANSACTION:          "INVALID_TRANSACTION",
	ResponseCode_PAYER_ACCOUNT_NOT_FOUND:      "PAYER_ACCOUNT_NOT_FOUND",
	ResponseCode_INVALID_NODE_ACCOUNT:         "INVALID_NODE_ACCOUNT",
	ResponseCode_TRANSACTION_EXPIRED:          "TRANSACTION_EXPIRED",
	ResponseCode_INVALID_TRANSACTION_START:    "INVALID_TRANSACTION_START",
	ResponseCode_INVALID_TRANSACTION_DURATION: "INVALID_TRANSACTION_DURATION",
	ResponseCode_INVALID_SIGNATURE:            "INVALID_SIGNATURE",
	ResponseCode_MEMO_TOO_LONG:                "MEMO_TOO_LONG",
	ResponseCode_INSUFFICIENT_TX_FEE:          "INSUFFICIENT_TX_FEE",
	ResponseCode_INSUFFICIENT_PAYER_BALANCE:   "INSUFFICIENT_PAYER_BALANCE",
	ResponseCode_DUPLICATE_TRANSACTION:        "DUPLICATE_TRANSACTION",
	ResponseCode_BUSY:                         "BUSY",
	ResponseCode_NOT_SUPPORTED:                "NOT_SUPPORTED",
	ResponseCode_INVALID_FILE_ID:              "INVALID_FILE_ID",
	ResponseCode_INVALID_ACCOUNT_ID:           "INVALID_ACCOUNT_ID",
	ResponseCode_INVALID_CONTRACT_ID:          "INVALID_CONTRACT_ID",
	ResponseCode_INVALID_TRANSACTION_ID:       "INVALID_TRANSACTION_ID",
	ResponseCode_RECEIPT_NOT_FOUND:            "RECEIPT_NOT_FOUND",
	ResponseCode_RECORD_NOT_FOUND:             "RECORD_NOT_FOUND",
	ResponseCode_INVALID_SOLIDITY_ID:          "INVALID_SOLIDITY_ID",
	ResponseCode_UNKNOWN:                      "UNKNOWN",
	ResponseCode_SUCCESS:                      "SUCCESS",
	ResponseCode_FAIL_INVALID:                 "FAIL_INVALID",
	ResponseCode_FAIL_FEE:                     "FAIL_FEE",
	ResponseCode_FAIL_BALANCE:                 "FAIL_BALANCE",
}

// String implements fmt.Stringer. It returns the name of the code, or its
// numeric value when it is not named.
func (c ResponseCode) String() string {
	name, ok := responseCodeNames[c]
	if ok {
		return name
	}

	return fmt.Sprintf("ResponseCode(%d)", int32(c))
}

// ResponseType tells what a query asks the node to answer.
type ResponseType int32

const (
	// ResponseType_ANSWER_ONLY asks for the answer without state proof.
	ResponseType_ANSWER_ONLY ResponseType = 0
	// ResponseType_ANSWER_STATE_PROOF asks for the answer and a state proof.
	ResponseType_ANSWER_STATE_PROOF ResponseType = 1
	// ResponseType_COST_ANSWER asks for the cost of the answer only.
	ResponseType_COST_ANSWER ResponseType = 2
	// ResponseType_COST_ANSWER_STATE_PROOF asks for the cost of the answer
	// with a state proof.
	ResponseType_COST_ANSWER_STATE_PROOF ResponseType = 3
)
