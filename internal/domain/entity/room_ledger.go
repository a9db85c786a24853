package entity

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// LedgerColumn is one comma-separated room column (names, prices or
// counts). The booking backend sends it either as a CSV string or as a
// JSON array; both decode to the raw, untrimmed tokens.
type LedgerColumn []string

// SplitLedgerColumn splits a CSV column into raw tokens
func SplitLedgerColumn(csv string) LedgerColumn {
	if csv == "" {
		return nil
	}
	return LedgerColumn(strings.Split(csv, ","))
}

// CSV joins the column back into its stored form
func (c LedgerColumn) CSV() string {
	return strings.Join(c, ",")
}

func (c *LedgerColumn) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*c = nil
	case string:
		*c = SplitLedgerColumn(v)
	case float64:
		*c = LedgerColumn{formatToken(v)}
	case []interface{}:
		col := make(LedgerColumn, 0, len(v))
		for _, item := range v {
			switch tok := item.(type) {
			case nil:
				col = append(col, "")
			case string:
				col = append(col, tok)
			default:
				col = append(col, formatToken(tok))
			}
		}
		*c = col
	default:
		*c = nil
	}
	return nil
}

func formatToken(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func (c LedgerColumn) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return c.CSV(), nil
}

func (c *LedgerColumn) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = nil
	case string:
		*c = SplitLedgerColumn(v)
	case []byte:
		*c = SplitLedgerColumn(string(v))
	}
	return nil
}

// RoomLedger holds the five parallel room columns of a multi-room booking.
// The i-th token of every column describes room i.
type RoomLedger struct {
	Names    LedgerColumn `json:"roomNames,omitempty"`
	Prices   LedgerColumn `json:"roomPrices,omitempty"`
	Adults   LedgerColumn `json:"roomAdults,omitempty"`
	Children LedgerColumn `json:"roomChildren,omitempty"`
	Babies   LedgerColumn `json:"roomBabies,omitempty"`
}

// Merge returns o when it carries any column and l otherwise. Columns
// from the two ledgers are never mixed.
func (l RoomLedger) Merge(o RoomLedger) RoomLedger {
	if o.Names != nil || o.Prices != nil || o.Adults != nil || o.Children != nil || o.Babies != nil {
		return o
	}
	return l
}
