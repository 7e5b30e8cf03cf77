package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quantity is a physical material quantity. Accumulation must reconcile
// exactly, so it wraps a decimal value rather than a float and is persisted
// as Decimal128.
type Quantity struct {
	decimal.Decimal
}

// NewQuantity wraps a decimal value as a Quantity.
func NewQuantity(d decimal.Decimal) Quantity {
	return Quantity{Decimal: d}
}

// QuantityFromString parses a decimal string into a Quantity.
func QuantityFromString(value string) (Quantity, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Quantity{}, fmt.Errorf("parse quantity %q: %w", value, err)
	}
	return Quantity{Decimal: d}, nil
}

// MarshalBSONValue encodes the quantity as Decimal128.
func (q Quantity) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := primitive.ParseDecimal128(q.Decimal.String())
	if err != nil {
		return 0, nil, fmt.Errorf("encode quantity %q: %w", q.Decimal.String(), err)
	}
	return bson.MarshalValue(d128)
}

// UnmarshalBSONValue decodes a quantity, tolerating documents written before
// the Decimal128 migration (double and integer encodings).
func (q *Quantity) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Decimal128:
		d128, ok := raw.Decimal128OK()
		if !ok {
			return fmt.Errorf("quantity: malformed decimal128 value")
		}
		d, err := decimal.NewFromString(d128.String())
		if err != nil {
			return fmt.Errorf("quantity: decode decimal128: %w", err)
		}
		q.Decimal = d
		return nil
	case bsontype.Double:
		q.Decimal = decimal.NewFromFloat(raw.Double())
		return nil
	case bsontype.Int32:
		q.Decimal = decimal.NewFromInt32(raw.Int32())
		return nil
	case bsontype.Int64:
		q.Decimal = decimal.NewFromInt(raw.Int64())
		return nil
	case bsontype.Null:
		q.Decimal = decimal.Decimal{}
		return nil
	default:
		return fmt.Errorf("quantity: unsupported bson type %s", t)
	}
}
