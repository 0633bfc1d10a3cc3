package models

import (
	"bytes"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"nhtransport/ledger"
)

// Amount is a rupee figure. Forms post numbers, numeric strings or blanks;
// all of them decode, with anything unreadable becoming zero.
type Amount float64

func (a Amount) Float() float64 { return float64(a) }

func (a *Amount) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(ledger.ToAmount(v))
	return nil
}

// UnmarshalBSONValue accepts documents written by older clients that stored
// amounts as strings.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		*a = Amount(ledger.ToAmount(rv.Double()))
	case bsontype.Int32:
		*a = Amount(rv.Int32())
	case bsontype.Int64:
		*a = Amount(rv.Int64())
	case bsontype.String:
		*a = Amount(ledger.ToAmount(rv.StringValue()))
	case bsontype.Decimal128:
		*a = Amount(ledger.ToAmount(rv.Decimal128().String()))
	default:
		*a = 0
	}
	return nil
}

// MarshalBSONValue is the counterpart of UnmarshalBSONValue; amounts are
// always written as doubles.
func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(float64(a))
}
