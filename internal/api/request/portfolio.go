package request

var aliasTargetPeriod = []string{"targetperiod", "periodo", "periodoobjetivo", "plazo", "horizonte"}

// CreatePortfolioRequest represents the request body for creating a portfolio
type CreatePortfolioRequest struct {
	ClientID     string `json:"clientId"`
	Name         string `json:"name"`
	TargetPeriod string `json:"targetPeriod"`
}

func (r *CreatePortfolioRequest) UnmarshalJSON(data []byte) error {
	f, err := decodeAliases(data)
	if err != nil {
		return err
	}

	var out CreatePortfolioRequest
	if out.ClientID, err = f.str(aliasClientID...); err != nil {
		return err
	}
	if out.Name, err = f.str(aliasName...); err != nil {
		return err
	}
	if out.TargetPeriod, err = f.str(aliasTargetPeriod...); err != nil {
		return err
	}

	*r = out
	return nil
}

type UpdatePortfolioRequest struct {
	Name         *string `json:"name,omitempty"`
	TargetPeriod *string `json:"targetPeriod,omitempty"`
}

func (r *UpdatePortfolioRequest) UnmarshalJSON(data []byte) error {
	f, err := decodeAliases(data)
	if err != nil {
		return err
	}

	var out UpdatePortfolioRequest
	if out.Name, err = f.optStr(aliasName...); err != nil {
		return err
	}
	if out.TargetPeriod, err = f.optStr(aliasTargetPeriod...); err != nil {
		return err
	}

	*r = out
	return nil
}
