package handler

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errAmountType = errors.New("amount must be a number or a numeric string")

// amountText keeps a JSON amount as its exact decimal text, whether it was
// sent as a number or as a string.
type amountText string

func (a *amountText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountText(s)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return errAmountType
	}
	*a = amountText(n.String())
	return nil
}
