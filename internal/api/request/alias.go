package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/pricing"
)

// aliasFields holds a decoded JSON object keyed by folded field name, so that
// "clientId", "client_id" and "ClientID" all land on "clientid".
type aliasFields map[string]json.RawMessage

func foldKey(k string) string {
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, "_", "")
	return strings.ReplaceAll(k, "-", "")
}

func decodeAliases(data []byte) (aliasFields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	fields := make(aliasFields, len(raw))
	for k, v := range raw {
		fields[foldKey(k)] = v
	}
	return fields, nil
}

// lookup returns the first alias present with a non-null value.
func (f aliasFields) lookup(aliases ...string) (string, json.RawMessage, bool) {
	for _, a := range aliases {
		v, ok := f[a]
		if ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return a, v, true
		}
	}
	return "", nil, false
}

func (f aliasFields) has(aliases ...string) bool {
	_, _, ok := f.lookup(aliases...)
	return ok
}

// str reads a string field. Numbers are accepted and kept as written.
func (f aliasFields) str(aliases ...string) (string, error) {
	name, v, ok := f.lookup(aliases...)
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("field %q: expected a string", name)
}

// num reads a number field. Strings are parsed with either decimal
// convention ("1.234,5" or "1,234.5").
func (f aliasFields) num(aliases ...string) (float64, error) {
	name, v, ok := f.lookup(aliases...)
	if !ok {
		return 0, nil
	}
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return 0, nil
		}
		if n, ok := pricing.ParseLocaleNumber(s); ok {
			return n, nil
		}
	}
	return 0, fmt.Errorf("field %q: expected a number", name)
}

func (f aliasFields) optStr(aliases ...string) (*string, error) {
	if !f.has(aliases...) {
		return nil, nil
	}
	s, err := f.str(aliases...)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (f aliasFields) optNum(aliases ...string) (*float64, error) {
	if !f.has(aliases...) {
		return nil, nil
	}
	n, err := f.num(aliases...)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// movementTypes maps accepted spellings to the canonical movement type.
var movementTypes = map[string]string{
	"buy": "buy", "compra": "buy", "c": "buy",
	"sell": "sell", "venta": "sell", "v": "sell",
}

// CanonicalMovementType maps buy/sell and their Spanish forms to "buy" or
// "sell". Unknown values are returned lower-cased for validation to reject.
func CanonicalMovementType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if c, ok := movementTypes[t]; ok {
		return c
	}
	return t
}

// Accepted aliases per field, in folded form.
var (
	aliasClientID     = []string{"clientid", "clienteid", "cliente", "client"}
	aliasPortfolioID  = []string{"portfolioid", "carteraid", "fondoid", "fundid", "cartera", "portfolio"}
	aliasSecurityID   = []string{"securityid", "especieid"}
	aliasSecurityName = []string{"securityname", "security", "especie", "tipoespecie", "nombreespecie", "name", "nombre"}
	aliasType         = []string{"type", "tipo", "movementtype", "tipomovimiento"}
	aliasDate         = []string{"date", "fecha"}
	aliasQuantity     = []string{"quantity", "cantidad", "nominal", "nominales"}
	aliasUnitPrice    = []string{"unitprice", "precio", "preciounitario", "price"}
	aliasNote         = []string{"note", "nota", "notes", "comentario"}
)
