package clinic

import "petclinic-web/internal/entity"

const VisitsPath = "api/visits"

type Visit struct {
	ID          *int64       `json:"id"`
	VisitDate   *entity.Date `json:"visitDate,omitempty"`
	Description string       `json:"description,omitempty"`
	Pet         *Pet         `json:"pet,omitempty"`
}

func (v Visit) GetID() *int64 { return v.ID }

func (v Visit) Validate() error {
	return checkLengths(maxLen{"description", v.Description, 255})
}
