package catalog

// Ingredient is a catalog entry recipes refer to. The same name may exist
// with different measurement units.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" yaml:"name" gorm:"size:200;not null;index;uniqueIndex:idx_ingredient_name_unit" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" yaml:"measurement_unit" gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" validate:"required,max=200"`
}

func (Ingredient) TableName() string { return "ingredients" }

type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" yaml:"name" gorm:"size:200;not null;uniqueIndex" validate:"required,max=200"`
	Color string `json:"color" yaml:"color" gorm:"size:7;not null;uniqueIndex" validate:"required,hexcolor,len=7"`
	Slug  string `json:"slug" yaml:"slug" gorm:"size:200;not null;uniqueIndex" validate:"required,max=200,slug"`
}

func (Tag) TableName() string { return "tags" }
