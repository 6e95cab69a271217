package request

// CreateMovementRequest is the canonical shape of a new movement. The security
// is given either by SecurityID or by SecurityName; a name is resolved or
// created by exact case-insensitive match.
type CreateMovementRequest struct {
	ClientID     string   `json:"clientId"`
	PortfolioID  string   `json:"portfolioId"`
	SecurityID   string   `json:"securityId,omitempty"`
	SecurityName string   `json:"securityName,omitempty"`
	Type         string   `json:"type"`
	Date         string   `json:"date"`
	Quantity     float64  `json:"quantity"`
	UnitPrice    *float64 `json:"unitPrice,omitempty"`
	Note         string   `json:"note,omitempty"`
}

// UnmarshalJSON accepts camelCase, snake_case and Spanish field names
// (cliente_id, cartera_id, especie, tipo, cantidad, precio, fecha, nota) and
// compra/venta for the movement type.
func (r *CreateMovementRequest) UnmarshalJSON(data []byte) error {
	f, err := decodeAliases(data)
	if err != nil {
		return err
	}

	var out CreateMovementRequest
	if out.ClientID, err = f.str(aliasClientID...); err != nil {
		return err
	}
	if out.PortfolioID, err = f.str(aliasPortfolioID...); err != nil {
		return err
	}
	if out.SecurityID, err = f.str(aliasSecurityID...); err != nil {
		return err
	}
	if out.SecurityName, err = f.str(aliasSecurityName...); err != nil {
		return err
	}
	if out.Type, err = f.str(aliasType...); err != nil {
		return err
	}
	out.Type = CanonicalMovementType(out.Type)
	if out.Date, err = f.str(aliasDate...); err != nil {
		return err
	}
	if out.Quantity, err = f.num(aliasQuantity...); err != nil {
		return err
	}
	if out.UnitPrice, err = f.optNum(aliasUnitPrice...); err != nil {
		return err
	}
	if out.Note, err = f.str(aliasNote...); err != nil {
		return err
	}

	*r = out
	return nil
}

// UpdateMovementRequest edits a movement. Absent fields are left unchanged.
// The (client, portfolio, security) triple cannot be edited.
type UpdateMovementRequest struct {
	Type      *string  `json:"type,omitempty"`
	Date      *string  `json:"date,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
	Note      *string  `json:"note,omitempty"`
}

// UnmarshalJSON accepts the same aliases as CreateMovementRequest.
func (r *UpdateMovementRequest) UnmarshalJSON(data []byte) error {
	f, err := decodeAliases(data)
	if err != nil {
		return err
	}

	var out UpdateMovementRequest
	if out.Type, err = f.optStr(aliasType...); err != nil {
		return err
	}
	if out.Type != nil {
		t := CanonicalMovementType(*out.Type)
		out.Type = &t
	}
	if out.Date, err = f.optStr(aliasDate...); err != nil {
		return err
	}
	if out.Quantity, err = f.optNum(aliasQuantity...); err != nil {
		return err
	}
	if out.UnitPrice, err = f.optNum(aliasUnitPrice...); err != nil {
		return err
	}
	if out.Note, err = f.optStr(aliasNote...); err != nil {
		return err
	}

	*r = out
	return nil
}

// ValidateSellRequest asks whether a sell of Quantity is allowed. Date is
// optional; without it the balance over every movement is used.
type ValidateSellRequest struct {
	ClientID     string  `json:"clientId"`
	PortfolioID  string  `json:"portfolioId"`
	SecurityID   string  `json:"securityId,omitempty"`
	SecurityName string  `json:"securityName,omitempty"`
	Quantity     float64 `json:"quantity"`
	Date         string  `json:"date,omitempty"`
}

// UnmarshalJSON accepts the same aliases as CreateMovementRequest.
func (r *ValidateSellRequest) UnmarshalJSON(data []byte) error {
	f, err := decodeAliases(data)
	if err != nil {
		return err
	}

	var out ValidateSellRequest
	if out.ClientID, err = f.str(aliasClientID...); err != nil {
		return err
	}
	if out.PortfolioID, err = f.str(aliasPortfolioID...); err != nil {
		return err
	}
	if out.SecurityID, err = f.str(aliasSecurityID...); err != nil {
		return err
	}
	if out.SecurityName, err = f.str(aliasSecurityName...); err != nil {
		return err
	}
	if out.Quantity, err = f.num(aliasQuantity...); err != nil {
		return err
	}
	if out.Date, err = f.str(aliasDate...); err != nil {
		return err
	}

	*r = out
	return nil
}
