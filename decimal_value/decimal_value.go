package decimal_value

import (
	"github.com/shopspring/decimal"
)

var Null = DecimalOpt{IsNull: true}

// DecimalOpt is a decimal which may also be null. The replay engine uses it
// for values which only exist on some rows, like realized gains, where zero
// and "not applicable" must stay distinct.
type DecimalOpt struct {
	Decimal decimal.Decimal
	IsNull  bool
}

func New(value decimal.Decimal) DecimalOpt {
	return DecimalOpt{Decimal: value}
}

func (d DecimalOpt) IsNegative() bool {
	if d.IsNull {
		return false
	}
	return d.Decimal.IsNegative()
}

func (d DecimalOpt) String() string {
	if d.IsNull {
		return "null"
	}
	return d.Decimal.String()
}
