package request

// ResolveSecurityRequest asks for the security with this name, creating it if
// no security matches case- and accent-insensitively.
type ResolveSecurityRequest struct {
	Name string `json:"name"`
}

func (r *ResolveSecurityRequest) UnmarshalJSON(data []byte) error {
	f, err := decodeAliases(data)
	if err != nil {
		return err
	}
	name, err := f.str(aliasSecurityName...)
	if err != nil {
		return err
	}
	r.Name = name
	return nil
}
