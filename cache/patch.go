package cache

import (
	"context"
	"encoding/json"
)

// Field names of a transaction record.
const (
	transactionIDField = "id"
	approvalField      = "approved"
	containerDataField = "data"
)

// UpdateTransactionApproval rewrites the approval flag of one transaction
// inside every cache entry that holds it, so flat-list and paginated views
// of the same data stay consistent without a full wipe. It returns the
// number of entries patched.
//
// Per entry: reserved employee keys are skipped; transaction lists and
// paginated containers get the matching element's flag overwritten with all
// other elements and container fields preserved byte-for-byte; entries of
// unrecognized shape are left untouched. A malformed entry is isolated -
// its decode failure never aborts patching of the remaining entries.
func (c *Client) UpdateTransactionApproval(ctx context.Context, transactionID string, approved bool) (int, error) {
	if c.store == nil {
		return 0, nil
	}

	patched := 0
	c.store.Range(ctx, func(key string, e Entry) bool {
		if c.reservedKey(key) || e.Kind == KindEmployeeList {
			return true
		}

		next, changed, err := patchEntry(e, transactionID, approved)
		if err != nil || !changed {
			// Malformed or unaffected entries stay as they are.
			return true
		}

		if err := c.store.Set(ctx, key, next, c.policy.EffectiveTTL(0)); err == nil {
			patched++
		}
		return true
	})

	return patched, nil
}

// patchEntry dispatches on the entry's kind, falling back to shape
// inference for untagged entries.
func patchEntry(e Entry, transactionID string, approved bool) (Entry, bool, error) {
	kind := e.Kind
	if kind == KindUnknown {
		kind = DetectKind(e.Payload)
	}

	switch kind {
	case KindTransactionList:
		next, changed, err := patchTransactionList(e.Payload, transactionID, approved)
		if err != nil || !changed {
			return e, false, err
		}
		return Entry{Kind: e.Kind, Payload: next}, true, nil

	case KindPaginatedTransactions:
		next, changed, err := patchPaginatedContainer(e.Payload, transactionID, approved)
		if err != nil || !changed {
			return e, false, err
		}
		return Entry{Kind: e.Kind, Payload: next}, true, nil

	default:
		return e, false, nil
	}
}

// patchTransactionList overwrites the approval flag on every element whose
// id matches. Non-matching elements are carried through verbatim as raw
// JSON, so only the rewritten element is re-encoded.
func patchTransactionList(payload []byte, transactionID string, approved bool) ([]byte, bool, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(payload, &elems); err != nil {
		return nil, false, err
	}

	changed := false
	for i, raw := range elems {
		var probe struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil || probe.ID != transactionID {
			continue
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		flag, err := json.Marshal(approved)
		if err != nil {
			return nil, false, err
		}
		fields[approvalField] = flag

		next, err := json.Marshal(fields)
		if err != nil {
			return nil, false, err
		}
		elems[i] = next
		changed = true
	}

	if !changed {
		return payload, false, nil
	}

	out, err := json.Marshal(elems)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// patchPaginatedContainer applies the list patch to the container's data
// field. Every other container field keeps its original bytes.
func patchPaginatedContainer(payload []byte, transactionID string, approved bool) ([]byte, bool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, false, err
	}

	data, ok := fields[containerDataField]
	if !ok {
		return payload, false, nil
	}

	next, changed, err := patchTransactionList(data, transactionID, approved)
	if err != nil || !changed {
		return payload, false, err
	}

	fields[containerDataField] = next
	out, err := json.Marshal(fields)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
