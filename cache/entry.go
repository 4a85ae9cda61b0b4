package cache

import (
	"bytes"
	"encoding/json"
)

// Kind tags the shape of a cached payload. The tag is decided at write time
// from the endpoint the payload was fetched from, so readers never have to
// guess between an empty transaction list and an empty paginated container.
type Kind int

const (
	// KindUnknown marks entries stored without a tag. Readers fall back to
	// shape inference for them.
	KindUnknown Kind = iota

	// KindEmployeeList is a flat list of employee records. It never holds
	// transaction data and the patcher never inspects it.
	KindEmployeeList

	// KindTransactionList is a flat list of transaction records.
	KindTransactionList

	// KindPaginatedTransactions is a container whose "data" field holds
	// transaction records alongside pagination metadata.
	KindPaginatedTransactions
)

func (k Kind) String() string {
	switch k {
	case KindEmployeeList:
		return "employee-list"
	case KindTransactionList:
		return "transaction-list"
	case KindPaginatedTransactions:
		return "paginated-transactions"
	default:
		return "unknown"
	}
}

// Entry is one cached payload plus its write-time shape tag.
type Entry struct {
	Kind    Kind
	Payload []byte
}

// DetectKind infers the shape of an untagged payload: a JSON array is a
// transaction list, a JSON object carrying a "data" field is a paginated
// container, anything else (including invalid JSON) is unknown.
func DetectKind(payload []byte) Kind {
	trimmed := bytes.TrimLeft(payload, " \t\r\n")
	if len(trimmed) == 0 {
		return KindUnknown
	}
	switch trimmed[0] {
	case '[':
		if json.Valid(payload) {
			return KindTransactionList
		}
	case '{':
		var probe struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(payload, &probe); err == nil && probe.Data != nil {
			return KindPaginatedTransactions
		}
	}
	return KindUnknown
}
