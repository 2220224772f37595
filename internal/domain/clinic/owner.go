package clinic

const OwnersPath = "api/owners"

type Owner struct {
	ID        *int64 `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Telephone string `json:"telephone,omitempty"`
}

func (o Owner) GetID() *int64 { return o.ID }

func (o Owner) Validate() error {
	return checkLengths(
		maxLen{"firstName", o.FirstName, 30},
		maxLen{"lastName", o.LastName, 30},
		maxLen{"address", o.Address, 255},
		maxLen{"city", o.City, 80},
		maxLen{"telephone", o.Telephone, 20},
	)
}
