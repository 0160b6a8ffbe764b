package dtos

/*
CreateUnitRequest / UpdateUnitRequest share a shape: units are fully
replaced on update, the occupancy fields are never client-writable.
*/
type CreateUnitRequest struct {
	UnitNumber  string  `json:"unit_number" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type UpdateUnitRequest struct {
	UnitNumber  string  `json:"unit_number" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}
