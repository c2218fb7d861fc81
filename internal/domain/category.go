package domain

// Category labels the fixed set of facility categories used by items,
// reports, and contract coverage.
type Category string

const (
	CategoryBuildingInfra Category = "building_infra"
	CategoryLivingSpace   Category = "living_space"
	CategoryCareMedical   Category = "care_medical"
	CategoryKitchenDining Category = "kitchen_dining"
	CategoryITSafety      Category = "it_safety"
	CategoryOther         Category = "other"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryBuildingInfra,
		CategoryLivingSpace,
		CategoryCareMedical,
		CategoryKitchenDining,
		CategoryITSafety,
		CategoryOther,
	}
}

// Valid reports whether the category belongs to the enumerated set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
