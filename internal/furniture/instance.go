package furniture

import (
	"github.com/shopspring/decimal"

	"room-planner/internal/geom"
	"room-planner/internal/room"
)

// ID identifies a furniture instance for its whole lifetime. Positions in the
// registry shift on removal; ids do not.
type ID string

// DefaultColor is the color an instance starts with and returns to when its
// custom color is switched off.
const DefaultColor = room.White

// CatalogRef is the product data copied into an instance when it is placed.
// It is never modified after insertion.
type CatalogRef struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	MeshRef     string
	Description string
}

// Customization pre-seeds a new instance, e.g. from a product page hand-off.
// Nil fields keep the defaults.
type Customization struct {
	Color *room.Color
	Scale *float32
}

// Instance is one piece of furniture placed in the room.
type Instance struct {
	ID             ID
	Catalog        CatalogRef
	Position       geom.Vec3
	Rotation       geom.Vec3 // radians
	Scale          float32
	Color          room.Color
	UseCustomColor bool
}

// TransformPatch is a partial transform update; nil fields are left unchanged.
type TransformPatch struct {
	Position *geom.Vec3
	Rotation *geom.Vec3
	Scale    *float32
}

// AppearancePatch is a partial appearance update; nil fields are left unchanged.
type AppearancePatch struct {
	Color          *room.Color
	UseCustomColor *bool
}
