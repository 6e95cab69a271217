package request

var (
	aliasName        = []string{"name", "nombre"}
	aliasServiceType = []string{"servicetype", "service", "tiposervicio", "servicio"}
	aliasEmail       = []string{"email", "mail", "correo"}
	aliasPhone       = []string{"phone", "telefono", "tel"}
	aliasRiskProfile = []string{"riskprofile", "risk", "perfilriesgo", "perfil", "perfilinversor"}
	aliasFeePercent  = []string{"feepercent", "fee", "feepct", "honorarios", "comision"}
	aliasComments    = []string{"comments", "comentarios", "observaciones", "notes"}
)

// CreateClientRequest represents the request body for creating a client.
type CreateClientRequest struct {
	Name        string  `json:"name"`
	ServiceType string  `json:"serviceType"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	RiskProfile string  `json:"riskProfile"`
	FeePercent  float64 `json:"feePercent"`
	Comments    string  `json:"comments"`
}

func (r *CreateClientRequest) UnmarshalJSON(data []byte) error {
	f, err := decodeAliases(data)
	if err != nil {
		return err
	}

	var out CreateClientRequest
	for _, field := range []struct {
		dst     *string
		aliases []string
	}{
		{&out.Name, aliasName},
		{&out.ServiceType, aliasServiceType},
		{&out.Email, aliasEmail},
		{&out.Phone, aliasPhone},
		{&out.RiskProfile, aliasRiskProfile},
		{&out.Comments, aliasComments},
	} {
		if *field.dst, err = f.str(field.aliases...); err != nil {
			return err
		}
	}
	if out.FeePercent, err = f.num(aliasFeePercent...); err != nil {
		return err
	}

	*r = out
	return nil
}

// UpdateClientRequest edits a client. Absent fields are left unchanged.
type UpdateClientRequest struct {
	Name        *string  `json:"name,omitempty"`
	ServiceType *string  `json:"serviceType,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	RiskProfile *string  `json:"riskProfile,omitempty"`
	FeePercent  *float64 `json:"feePercent,omitempty"`
	Comments    *string  `json:"comments,omitempty"`
}

func (r *UpdateClientRequest) UnmarshalJSON(data []byte) error {
	f, err := decodeAliases(data)
	if err != nil {
		return err
	}

	var out UpdateClientRequest
	for _, field := range []struct {
		dst     **string
		aliases []string
	}{
		{&out.Name, aliasName},
		{&out.ServiceType, aliasServiceType},
		{&out.Email, aliasEmail},
		{&out.Phone, aliasPhone},
		{&out.RiskProfile, aliasRiskProfile},
		{&out.Comments, aliasComments},
	} {
		if *field.dst, err = f.optStr(field.aliases...); err != nil {
			return err
		}
	}
	if out.FeePercent, err = f.optNum(aliasFeePercent...); err != nil {
		return err
	}

	*r = out
	return nil
}
