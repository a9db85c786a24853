package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ReservationKind discriminates hotel, destination and pack reservations
type ReservationKind int

const (
	ReservationKindHotel       ReservationKind = 0
	ReservationKindDestination ReservationKind = 1
	ReservationKindPack        ReservationKind = 2
)

func (k ReservationKind) String() string {
	switch k {
	case ReservationKindHotel:
		return "HOTEL"
	case ReservationKindDestination:
		return "DESTINATION"
	case ReservationKindPack:
		return "PACK"
	}
	return fmt.Sprintf("ReservationKind(%d)", int(k))
}

// ShortCode is the invoice document prefix for the kind
func (k ReservationKind) ShortCode() string {
	switch k {
	case ReservationKindHotel:
		return "FAC"
	case ReservationKindDestination:
		return "DEST"
	case ReservationKindPack:
		return "PACK"
	}
	return "DOC"
}

// Title is the printed heading of the kind's invoice
func (k ReservationKind) Title() string {
	switch k {
	case ReservationKindHotel:
		return "Hotel Invoice"
	case ReservationKindDestination:
		return "Destination Invoice"
	case ReservationKindPack:
		return "Pack Invoice"
	}
	return "Invoice"
}

// Segment is the URL path segment used by the admin reservation API
func (k ReservationKind) Segment() string {
	switch k {
	case ReservationKindHotel:
		return "hotels"
	case ReservationKindDestination:
		return "destinations"
	case ReservationKindPack:
		return "packs"
	}
	return ""
}

// ParseReservationKind accepts a kind name (HOTEL) or an API segment (hotels)
func ParseReservationKind(s string) (ReservationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hotel", "hotels":
		return ReservationKindHotel, nil
	case "destination", "destinations":
		return ReservationKindDestination, nil
	case "pack", "packs":
		return ReservationKindPack, nil
	}
	return 0, fmt.Errorf("unknown reservation kind %q", s)
}

func (k ReservationKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ReservationKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = ReservationKind(i)
		return nil
	}
	kind, err := ParseReservationKind(str)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func (k ReservationKind) Value() (driver.Value, error) {
	return k.String(), nil
}

func (k *ReservationKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*k = ReservationKind(v)
	case string:
		kind, err := ParseReservationKind(v)
		if err != nil {
			return err
		}
		*k = kind
	case []byte:
		kind, err := ParseReservationKind(string(v))
		if err != nil {
			return err
		}
		*k = kind
	}
	return nil
}
