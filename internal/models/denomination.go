package models

// Denomination is one VND banknote tracked by the cash counter.
type Denomination struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// VNDDenominations is ordered from the largest note down, the order the
// counter displays them in.
var VNDDenominations = []Denomination{
	{Value: 500000, Label: "500.000 ₫", Color: "bg-cyan-700"},
	{Value: 200000, Label: "200.000 ₫", Color: "bg-orange-600"},
	{Value: 100000, Label: "100.000 ₫", Color: "bg-green-700"},
	{Value: 50000, Label: "50.000 ₫", Color: "bg-rose-600"},
	{Value: 20000, Label: "20.000 ₫", Color: "bg-blue-700"},
	{Value: 10000, Label: "10.000 ₫", Color: "bg-yellow-600"},
}

// CashCount maps a denomination face value to how many notes were counted.
type CashCount map[int64]int64

func NewCashCount() CashCount {
	c := make(CashCount, len(VNDDenominations))
	for _, d := range VNDDenominations {
		c[d.Value] = 0
	}
	return c
}

func (c CashCount) Total() int64 {
	var total int64
	for _, d := range VNDDenominations {
		total += d.Value * c[d.Value]
	}
	return total
}

func FindDenomination(value int64) (Denomination, bool) {
	for _, d := range VNDDenominations {
		if d.Value == value {
			return d, true
		}
	}
	return Denomination{}, false
}
